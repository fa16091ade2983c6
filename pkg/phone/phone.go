// Package phone normalizes submitted phone numbers into canonical
// international digit strings. Two regions are supported: Saudi Arabia
// (966 + mobile prefix 5 + 8 digits) and Egypt (20 + mobile prefix 1 + 9
// digits). Local shorthand inputs without the country code are accepted
// for both regions.
package phone

import (
	"fmt"
	"strings"
)

const (
	CountryCodeSaudi = "966"
	CountryCodeEgypt = "20"
)

// FormatError describes why a phone number could not be normalized.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid phone number %q: %s", e.Input, e.Reason)
}

// Normalize strips formatting characters and resolves the input to a
// canonical digits-only international number. It returns a *FormatError
// when the input matches neither supported region.
func Normalize(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "+")
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	cleaned = replacer.Replace(cleaned)

	if cleaned == "" {
		return "", &FormatError{Input: raw, Reason: "empty value"}
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", &FormatError{Input: raw, Reason: "contains non-digit characters"}
		}
	}

	switch {
	// Saudi canonical: 966 5XXXXXXXX
	case strings.HasPrefix(cleaned, CountryCodeSaudi):
		rest := cleaned[len(CountryCodeSaudi):]
		if len(rest) == 9 && rest[0] == '5' {
			return cleaned, nil
		}
		return "", &FormatError{Input: raw, Reason: "expected 9 digits starting with 5 after country code 966"}

	// Saudi local: 05XXXXXXXX
	case strings.HasPrefix(cleaned, "05") && len(cleaned) == 10:
		return CountryCodeSaudi + cleaned[1:], nil

	// Saudi bare: 5XXXXXXXX
	case strings.HasPrefix(cleaned, "5") && len(cleaned) == 9:
		return CountryCodeSaudi + cleaned, nil

	// Egyptian canonical: 20 1XXXXXXXXX
	case strings.HasPrefix(cleaned, CountryCodeEgypt):
		rest := cleaned[len(CountryCodeEgypt):]
		if len(rest) == 10 && rest[0] == '1' {
			return cleaned, nil
		}
		return "", &FormatError{Input: raw, Reason: "expected 10 digits starting with 1 after country code 20"}

	// Egyptian local: 01XXXXXXXXX
	case strings.HasPrefix(cleaned, "01") && len(cleaned) == 11:
		return CountryCodeEgypt + cleaned[1:], nil

	// Egyptian bare: 1XXXXXXXXX
	case strings.HasPrefix(cleaned, "1") && len(cleaned) == 10:
		return CountryCodeEgypt + cleaned, nil
	}

	return "", &FormatError{Input: raw, Reason: "unrecognized country or mobile prefix"}
}
