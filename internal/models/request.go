package models

// RequestStatus is the lifecycle state of a photo request.
type RequestStatus string

const (
	// StatusOpen means the request is waiting for someone to take a photo.
	StatusOpen RequestStatus = "open"
	// StatusInProgress means someone has picked up the request.
	StatusInProgress RequestStatus = "in-progress"
	// StatusCompleted means a photo has been submitted for the request.
	StatusCompleted RequestStatus = "completed"
)

// Request represents a photo request posted for a place.
// The source list is owned by the request directory; the ranking pipeline
// only annotates working copies, never the originals.
type Request struct {
	ID          int           // ID is the unique identifier for the request.
	Location    *Coordinate   // Location is where the photo should be taken; nil when unknown.
	Status      RequestStatus // Status is the lifecycle state of the request.
	PlaceName   string        // PlaceName is a human-readable label for the location, empty until resolved.
	Description string        // Description is the requester's instructions.
	Distance    *float64      // Distance from the user fix in whole meters; derived, nil until a fix exists.
}

// GeocodeResult is a single match returned by a geocode search.
type GeocodeResult struct {
	DisplayName string     // DisplayName is the provider's label for the place.
	Coordinate  Coordinate // Coordinate is the location of the match.
}
