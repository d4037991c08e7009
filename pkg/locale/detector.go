package locale

import "strings"

// InferCountryFromPhone matches the phone's country-code prefix against the
// known countries. Returns nil when no prefix matches.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
