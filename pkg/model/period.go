package model

// Period is one of the three fixed daily time bands used to bucket
// reservations. Values are stored as-is in the document store.
type Period string

const (
	PeriodMorning   Period = "matutino"
	PeriodAfternoon Period = "vespertino"
	PeriodEvening   Period = "noturno"

	// PeriodAll is a query-only value meaning "no period filter". It is
	// never stored on a document.
	PeriodAll Period = "todos"
)

// Window is a half-open time band expressed as zero-padded HH:MM strings.
// HH:MM strings compare correctly with plain string comparison.
type Window struct {
	Min string
	Max string
}

var periodWindows = map[Period]Window{
	PeriodMorning:   {Min: "06:00", Max: "12:00"},
	PeriodAfternoon: {Min: "12:00", Max: "18:00"},
	PeriodEvening:   {Min: "18:00", Max: "22:00"},
}

func Periods() []Period {
	return []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}
}

func (p Period) Valid() bool {
	_, ok := periodWindows[p]
	return ok
}

func (p Period) Window() (Window, bool) {
	w, ok := periodWindows[p]
	return w, ok
}

// Contains reports whether the HH:MM time falls inside the period's window.
// Bounds are inclusive, matching the submission form behavior.
func (p Period) Contains(hhmm string) bool {
	w, ok := periodWindows[p]
	if !ok {
		return false
	}
	return hhmm >= w.Min && hhmm <= w.Max
}

// PeriodForTime derives the period from an HH:MM time. The boundary times
// 12:00 and 18:00 resolve to the later band; Contains is inclusive on both
// ends, so validation accepts a boundary time in either band.
func PeriodForTime(hhmm string) (Period, bool) {
	switch {
	case hhmm >= "06:00" && hhmm < "12:00":
		return PeriodMorning, true
	case hhmm >= "12:00" && hhmm < "18:00":
		return PeriodAfternoon, true
	case hhmm >= "18:00" && hhmm <= "22:00":
		return PeriodEvening, true
	}
	return "", false
}
