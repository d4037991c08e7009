package sanitizer

import (
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"campushub/pkg/locale"
)

// Regions to try when parsing a number without a country prefix, taken
// from the locales the institution serves. The home region, derived from
// the institutional timezone, goes first so ambiguous local numbers
// resolve there.
var supportedRegions = func() []string {
	home := locale.DetectRegion(locale.DefaultTimezone)
	regions := []string{home}
	rest := make([]string, 0, len(locale.Countries))
	for code := range locale.Countries {
		if code != home {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	return append(regions, rest...)
}()

func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	if country := locale.InferCountryFromPhone(phone); country != nil {
		if normalized := normalizeForRegion(phone, country.Code); normalized != "" {
			return normalized
		}
	}

	for _, region := range supportedRegions {
		if normalized := normalizeForRegion(phone, region); normalized != "" {
			return normalized
		}
	}
	return ""
}

func normalizeForRegion(phone, region string) string {
	parsedNumber, err := phonenumbers.Parse(phone, region)
	if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
		return phonenumbers.Format(parsedNumber, phonenumbers.E164)
	}
	return ""
}
