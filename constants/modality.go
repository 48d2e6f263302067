package constants

import (
	"fmt"
	"strings"
)

// Modality selects the order input schema for a run.
type Modality string

const (
	// ModalityDocument extracts order lines from a PDF purchase order.
	ModalityDocument Modality = "document"
	// ModalityConference reads order lines from a conference spreadsheet export.
	ModalityConference Modality = "conference"
)

var allModalities = []Modality{ModalityDocument, ModalityConference}

// AllModalities returns the accepted modality values as strings.
func AllModalities() []string {
	out := make([]string, len(allModalities))
	for i, m := range allModalities {
		out[i] = string(m)
	}
	return out
}

// ParseModality maps user input to a Modality. Empty input selects the document modality.
func ParseModality(input string) (Modality, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch normalized {
	case "", "document", "pdf":
		return ModalityDocument, nil
	case "conference", "spreadsheet", "conferencia", "conferência":
		return ModalityConference, nil
	}
	return "", fmt.Errorf("unknown modality %q (want one of %s)", input, strings.Join(AllModalities(), ", "))
}
