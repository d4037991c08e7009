package model

// Sector tags the originating request domain of a calendar event. The tag
// doubles as the id prefix in the merged calendar feed.
type Sector string

const (
	SectorAudiovisual Sector = "av"
	SectorMarketing   Sector = "mk"
	SectorCerimonial  Sector = "ce"
)

// CalendarEvent is the projection shared by all three sectors for unified
// display. Derived, never persisted.
type CalendarEvent struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Sector   Sector `json:"sector"`
	Status   string `json:"status,omitempty"`
}
