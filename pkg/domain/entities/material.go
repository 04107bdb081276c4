package entities

import (
	"strconv"
	"strings"
)

// MaterialCode identifies a raw-material (fabric) type, the DSM code on the sheets
type MaterialCode string

// ColorKey identifies a color variant of a material
type ColorKey string

// NormalizeMaterialCode trims the code and drops the ".0" suffix spreadsheets add to numeric codes
func NormalizeMaterialCode(raw string) MaterialCode {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) && strings.ContainsAny(s, ".eE") {
		return MaterialCode(strconv.FormatInt(int64(f), 10))
	}
	return MaterialCode(s)
}

// NormalizeColorKey trims the color and collapses inner whitespace runs to a single space
func NormalizeColorKey(raw string) ColorKey {
	return ColorKey(strings.Join(strings.Fields(raw), " "))
}
