package locale

import "testing"

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		name string
		tz   string
		want string
	}{
		{name: "sao paulo", tz: "America/Sao_Paulo", want: "BR"},
		{name: "case insensitive", tz: "america/sao_paulo", want: "BR"},
		{name: "legacy alias", tz: "Brazil/East", want: "BR"},
		{name: "lisbon", tz: "Europe/Lisbon", want: "PT"},
		{name: "unknown falls back", tz: "Asia/Tokyo", want: "BR"},
		{name: "empty falls back", tz: "", want: "BR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRegion(tt.tz); got != tt.want {
				t.Errorf("DetectRegion(%q) = %q, want %q", tt.tz, got, tt.want)
			}
		})
	}
}

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "brazilian mobile", phone: "+5511912345678", want: "BR"},
		{name: "without plus", phone: "5511912345678", want: "BR"},
		{name: "portuguese number", phone: "+351912345678", want: "PT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			country := InferCountryFromPhone(tt.phone)
			if country == nil || country.Code != tt.want {
				t.Errorf("InferCountryFromPhone(%q) = %+v, want %s", tt.phone, country, tt.want)
			}
		})
	}

	if got := InferCountryFromPhone("+972501234567"); got != nil {
		t.Fatalf("InferCountryFromPhone() = %+v, want nil for unknown prefix", got)
	}
	if got := InferCountryFromPhone(""); got != nil {
		t.Fatalf("InferCountryFromPhone(\"\") = %+v, want nil", got)
	}
}
