package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/s777ia/ShoreSquad/internal/geo"
)

// CleanupEvent is a scheduled beach cleanup.
type CleanupEvent struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        string         `json:"date"` // YYYY-MM-DD
	Beach       string         `json:"location"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	Attendees   int            `json:"attendees"`
	Spots       int            `json:"spots"`
	CollectedKg float64        `json:"collectedKg"`
	Description string         `json:"description"`
}

// Crew is a group of regulars who clean a home beach together.
type Crew struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Members     int    `json:"members"`
	HomeBeach   string `json:"homeBeach"`
	NextCleanup string `json:"nextCleanup,omitempty"`
	Description string `json:"description"`
}

// SeedEvents returns the demo events shown on first start, with dates laid
// out relative to now so the filters always have something to match.
func SeedEvents(now time.Time) []CleanupEvent {
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }
	return []CleanupEvent{
		{
			ID:          uuid.NewString(),
			Title:       "Sunrise Sweep at East Coast",
			Date:        day(0),
			Beach:       "East Coast Park, Area C",
			Coordinate:  geo.Coordinate{Lat: 1.3039, Lng: 103.9130},
			Attendees:   18,
			Spots:       30,
			CollectedKg: 42.5,
			Description: "Early morning cleanup before the crowds arrive. Gloves and bags provided.",
		},
		{
			ID:          uuid.NewString(),
			Title:       "Pasir Ris Mangrove Patrol",
			Date:        day(daysUntilSaturday(now)),
			Beach:       "Pasir Ris Beach",
			Coordinate:  geo.Coordinate{Lat: 1.3811, Lng: 103.9550},
			Attendees:   9,
			Spots:       20,
			Description: "Focus on the mangrove boardwalk stretch. Bring covered shoes.",
		},
		{
			ID:          uuid.NewString(),
			Title:       "Changi Beach Big Haul",
			Date:        day(10),
			Beach:       "Changi Beach Park",
			Coordinate:  geo.Coordinate{Lat: 1.3900, Lng: 103.9910},
			Attendees:   24,
			Spots:       50,
			Description: "Monthly deep clean with the park rangers. Lunch on us afterwards.",
		},
	}
}

// SeedCrews returns the demo crews shown on first start.
func SeedCrews(now time.Time) []Crew {
	return []Crew{
		{
			ID:          uuid.NewString(),
			Name:        "East Coast Eagles",
			Members:     32,
			HomeBeach:   "East Coast Park",
			NextCleanup: now.AddDate(0, 0, daysUntilSaturday(now)).Format("2006-01-02"),
			Description: "Weekend regulars covering Areas B through D.",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Pasir Ris Pioneers",
			Members:     17,
			HomeBeach:   "Pasir Ris Beach",
			Description: "Mangrove specialists. Training provided for new members.",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Sembawang Shoreliners",
			Members:     11,
			HomeBeach:   "Sembawang Beach",
			Description: "Small but steady crew on the north shore.",
		},
	}
}

// daysUntilSaturday returns the offset to the next Saturday, at least 1 so
// the seeded weekend event never collides with "today".
func daysUntilSaturday(now time.Time) int {
	d := int(time.Saturday-now.Weekday()+7) % 7
	if d == 0 {
		d = 7
	}
	return d
}
