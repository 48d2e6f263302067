package constants

import "strings"

// Source formats accepted for catalog and order inputs.
const (
	PDF  = "PDF"
	XLSX = "XLSX"
	CSV  = "CSV"
)

// AllowedExtensions maps lowercased extensions (sans '.') to their format.
var AllowedExtensions = map[string]string{
	"pdf":  PDF,
	"xlsx": XLSX,
	"xlsm": XLSX,
	"csv":  CSV,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat returns the source format for an extension, or "" when unsupported.
func MapExtToFormat(ext string) string {
	return AllowedExtensions[NormalizeExt(ext)]
}

// IsTabularExt reports whether ext names a spreadsheet-like source.
func IsTabularExt(ext string) bool {
	switch MapExtToFormat(ext) {
	case XLSX, CSV:
		return true
	}
	return false
}
