package locale

import (
	"strings"
)

const (
	DefaultTimezone = "America/Sao_Paulo"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "BR")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+55", "55"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/Sao_Paulo")
}

var (
	Countries = map[string]Country{
		"BR": {
			Code:            "BR",
			Name:            "Brazil",
			PhonePrefixes:   []string{"+55", "55"},
			DefaultTimezone: "America/Sao_Paulo",
		},
		"PT": {
			Code:            "PT",
			Name:            "Portugal",
			PhonePrefixes:   []string{"+351", "351"},
			DefaultTimezone: "Europe/Lisbon",
		},
	}

	TimeZoneTags = map[string][]string{
		"BR": {"America/Sao_Paulo", "America/Bahia", "America/Fortaleza", "America/Manaus", "Brazil/East"},
		"PT": {"Europe/Lisbon", "Portugal"},
	}
)

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return "BR"
}
