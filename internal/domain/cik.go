package domain

import (
	"fmt"
	"regexp"
)

// DefaultCIK identifies Assurant, Inc., used when no CIK is requested.
const DefaultCIK = "0001267238"

var cikRe = regexp.MustCompile(`^[0-9]{10}$`)

// ResolveCIK picks the requested CIK, or fallback when raw is empty, and
// validates the result.
func ResolveCIK(raw, fallback string) (string, error) {
	cik := raw
	if cik == "" {
		cik = fallback
	}
	if err := ValidateCIK(cik); err != nil {
		return "", err
	}
	return cik, nil
}

// ValidateCIK reports whether cik is exactly ten decimal digits.
func ValidateCIK(cik string) error {
	if !cikRe.MatchString(cik) {
		return fmt.Errorf("%w: %q", ErrInvalidCIK, cik)
	}
	return nil
}
