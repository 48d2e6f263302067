package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModality(t *testing.T) {
	tests := []struct {
		in   string
		want Modality
	}{
		{"", ModalityDocument},
		{"PDF", ModalityDocument},
		{" document ", ModalityDocument},
		{"conference", ModalityConference},
		{"Conferência", ModalityConference},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModality(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseModality("fax")
		assert.Error(t, err)
	})
}

func TestIsNotAvailable(t *testing.T) {
	for _, v := range []string{"", "  ", "nan", "NaN", "N/A", "-"} {
		assert.True(t, IsNotAvailable(v), v)
	}
	assert.False(t, IsNotAvailable("10001-1"))
}

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, DefaultCategory, CanonicalCategory("nan"))
	assert.Equal(t, "Ferragens", CanonicalCategory(" Ferragens "))
}

func TestMapExtToFormat(t *testing.T) {
	assert.Equal(t, PDF, MapExtToFormat(".PDF"))
	assert.Equal(t, XLSX, MapExtToFormat("xlsx"))
	assert.Equal(t, "", MapExtToFormat(".doc"))
	assert.True(t, IsTabularExt(".csv"))
	assert.False(t, IsTabularExt(".pdf"))
}
