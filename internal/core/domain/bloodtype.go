package domain

import "strings"

// bloodTypes is the closed set of valid blood type codes, keyed by the
// canonical spelling.
var bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ParseBloodType canonicalises a blood type string (case-insensitive,
// surrounding whitespace ignored). ok is false for anything outside the
// eight valid codes, including blank input.
func ParseBloodType(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	for _, bt := range bloodTypes {
		if strings.EqualFold(bt, trimmed) {
			return bt, true
		}
	}
	return "", false
}

// IsValidBloodType reports whether s names one of the eight blood types.
func IsValidBloodType(s string) bool {
	_, ok := ParseBloodType(s)
	return ok
}
