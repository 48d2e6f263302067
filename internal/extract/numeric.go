package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/aps-analyzer/internal/common"
)

var reLocaleNumber = regexp.MustCompile(`^\d+[\d.]*,\d+$`)

// ParseNumber converts a "thousands.thousands,decimal" string (e.g. "1.234,56")
// into a decimal by dropping every '.' and turning ',' into '.'.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !reLocaleNumber.MatchString(s) {
		return decimal.Zero, common.NewParseError("malformed number", fmt.Errorf("%q is not in 1.234,56 format", raw))
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.NewParseError("malformed number", fmt.Errorf("%q: %w", raw, err))
	}
	return d, nil
}

// ParseFlexible reads spreadsheet cells, which come either raw ("1234.56",
// "-3") or locale formatted ("1.234,56"). A comma always marks the locale form.
func ParseFlexible(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	var (
		d   decimal.Decimal
		err error
	)
	if strings.Contains(s, ",") {
		d, err = ParseNumber(s)
	} else {
		d, err = decimal.NewFromString(s)
		if err != nil {
			err = common.NewParseError("malformed number", fmt.Errorf("%q: %w", raw, err))
		}
	}
	if err != nil {
		return decimal.Zero, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
