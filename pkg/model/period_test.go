package model

import "testing"

func TestPeriodForTime_Boundaries(t *testing.T) {
	tests := []struct {
		time string
		want Period
		ok   bool
	}{
		{"06:00", PeriodMorning, true},
		{"11:30", PeriodMorning, true},
		{"12:00", PeriodAfternoon, true},
		{"17:30", PeriodAfternoon, true},
		{"18:00", PeriodEvening, true},
		{"22:00", PeriodEvening, true},
		{"05:30", "", false},
		{"22:30", "", false},
	}

	for _, tt := range tests {
		got, ok := PeriodForTime(tt.time)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PeriodForTime(%q) = (%q, %v), want (%q, %v)", tt.time, got, ok, tt.want, tt.ok)
		}
	}
}

func TestContains_InclusiveBounds(t *testing.T) {
	for _, tt := range []struct {
		period Period
		time   string
	}{
		{PeriodMorning, "12:00"},
		{PeriodAfternoon, "12:00"},
		{PeriodAfternoon, "18:00"},
		{PeriodEvening, "18:00"},
	} {
		if !tt.period.Contains(tt.time) {
			t.Errorf("%s should accept boundary time %s", tt.period, tt.time)
		}
	}
}
