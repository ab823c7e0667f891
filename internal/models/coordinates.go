package models

import "time"

// Coordinate represents a geographical point defined by its latitude and longitude.
type Coordinate struct {
	Latitude  float64 // Latitude of the geographical point, in [-90, 90].
	Longitude float64 // Longitude of the geographical point, in [-180, 180].
}

// FixSource identifies which user interaction established a location fix.
type FixSource string

const (
	// FixSourceGPS marks a fix obtained from the platform's one-shot position query.
	FixSourceGPS FixSource = "gps"
	// FixSourceMap marks a fix picked by clicking the map.
	FixSourceMap FixSource = "map"
	// FixSourceSearch marks a fix selected from a geocode search result.
	FixSourceSearch FixSource = "search"
)

// LocationFix is a resolved coordinate with provenance and timestamp.
// A fix is immutable after creation; a new fix replaces the old one.
type LocationFix struct {
	Coordinate Coordinate // Coordinate is the resolved geographical point.
	Source     FixSource  // Source records how the fix was established.
	Accuracy   float64    // Accuracy is the reported accuracy in meters, 0 when unknown.
	CapturedAt time.Time  // CapturedAt is when the fix was established.
}
