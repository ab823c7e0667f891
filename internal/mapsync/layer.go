package mapsync

import (
	"fmt"

	"github.com/koya1616/koko-pic/internal/models"
)

// Framing constants for the request map.
const (
	// DefaultZoom is the zoom applied when nothing is known about the view.
	DefaultZoom = 12.0
	// userZoomFloor keeps the first ease towards the user from staying zoomed out.
	userZoomFloor = 13.0
	// fitPadding is the pixel padding applied when bounding all request markers.
	fitPadding = 48
	// fitMaxZoom caps how far a bounds fit may zoom in.
	fitMaxZoom = 14.0
)

// Marker colors. Request markers are colored by status; the user marker color
// is distinct from every status color.
var statusColors = map[models.RequestStatus]string{
	models.StatusOpen:       "#4f46e5",
	models.StatusInProgress: "#f59e0b",
	models.StatusCompleted:  "#22c55e",
}

const userMarkerColor = "#0f172a"

// MarkerKind distinguishes request markers from the user fix marker.
type MarkerKind string

const (
	// MarkerRequest is a marker placed for a photo request.
	MarkerRequest MarkerKind = "request"
	// MarkerUser is the marker placed on the user's location fix.
	MarkerUser MarkerKind = "user"
)

// Marker describes one marker the map widget should display.
type Marker struct {
	Key        string            // Key identifies the marker for popup tracking.
	Kind       MarkerKind        // Kind distinguishes request and user markers.
	RequestID  int               // RequestID is set for request markers.
	Coordinate models.Coordinate // Coordinate is where the marker is placed.
	Color      string            // Color is the marker color hex string.
	Label      string            // Label is the popup text for the marker.
}

// FramingMode tells the map widget how to move its camera.
type FramingMode string

const (
	// FramingNone leaves the camera where the user put it.
	FramingNone FramingMode = "none"
	// FramingEase eases the camera to a center and zoom.
	FramingEase FramingMode = "ease"
	// FramingFitBounds fits the camera to a bounding box.
	FramingFitBounds FramingMode = "fit-bounds"
	// FramingReset jumps to the default center and zoom.
	FramingReset FramingMode = "reset"
)

// Bounds is a south-west / north-east bounding box.
type Bounds struct {
	SouthWest models.Coordinate
	NorthEast models.Coordinate
}

// Framing is the camera movement the map widget should apply.
type Framing struct {
	Mode    FramingMode
	Center  models.Coordinate // used by ease and reset
	Zoom    float64           // used by ease and reset
	Bounds  Bounds            // used by fit-bounds
	Padding int               // used by fit-bounds
	MaxZoom float64           // used by fit-bounds
}

// ViewPlan is what the map widget should render: the full marker set and the
// camera movement. The layer owns what to show, not the rendering.
type ViewPlan struct {
	Markers []Marker
	Framing Framing
}

// Layer reconciles ranked requests, the user fix and lookup results into a
// view plan for one map instance. Create one layer per map mount and discard
// it on unmount; the "already centered on user" flag lives here, not in any
// process-wide state, so a remount centers again while later fixes within one
// mount never fight the user's own pan and zoom.
type Layer struct {
	defaultCenter  models.Coordinate
	centeredOnUser bool
	openPopup      string
}

// NewLayer creates a map sync layer with the given fallback center.
func NewLayer(defaultCenter models.Coordinate) *Layer {
	return &Layer{defaultCenter: defaultCenter}
}

// Reconcile computes the marker set and camera framing for the current state.
// currentZoom is the map widget's present zoom level, used to apply the zoom
// floor when easing towards the user.
func (l *Layer) Reconcile(requests []models.Request, fix *models.LocationFix, currentZoom float64) ViewPlan {
	markers := make([]Marker, 0, len(requests)+1)
	for _, request := range requests {
		if request.Location == nil {
			continue
		}
		color, ok := statusColors[request.Status]
		if !ok {
			color = statusColors[models.StatusOpen]
		}
		markers = append(markers, Marker{
			Key:        fmt.Sprintf("request-%d", request.ID),
			Kind:       MarkerRequest,
			RequestID:  request.ID,
			Coordinate: *request.Location,
			Color:      color,
			Label:      request.PlaceName,
		})
	}

	if fix != nil {
		markers = append(markers, Marker{
			Key:        "user",
			Kind:       MarkerUser,
			Coordinate: fix.Coordinate,
			Color:      userMarkerColor,
		})
	}

	return ViewPlan{Markers: markers, Framing: l.frame(markers, fix, currentZoom)}
}

// OpenPopup records that the popup for key is open, closing any previously
// open popup. It returns the key of the popup that had to close, if any.
func (l *Layer) OpenPopup(key string) (closed string) {
	closed = l.openPopup
	l.openPopup = key
	return closed
}

// ClosePopup closes the currently open popup, if any.
func (l *Layer) ClosePopup() {
	l.openPopup = ""
}

// OpenPopupKey returns the key of the currently open popup, or empty.
func (l *Layer) OpenPopupKey() string {
	return l.openPopup
}

func (l *Layer) frame(markers []Marker, fix *models.LocationFix, currentZoom float64) Framing {
	if fix != nil {
		if l.centeredOnUser {
			return Framing{Mode: FramingNone}
		}
		l.centeredOnUser = true
		zoom := currentZoom
		if zoom < userZoomFloor {
			zoom = userZoomFloor
		}
		return Framing{Mode: FramingEase, Center: fix.Coordinate, Zoom: zoom}
	}

	requestMarkers := make([]Marker, 0, len(markers))
	for _, marker := range markers {
		if marker.Kind == MarkerRequest {
			requestMarkers = append(requestMarkers, marker)
		}
	}
	if len(requestMarkers) > 0 {
		bounds := Bounds{
			SouthWest: requestMarkers[0].Coordinate,
			NorthEast: requestMarkers[0].Coordinate,
		}
		for _, marker := range requestMarkers[1:] {
			coord := marker.Coordinate
			if coord.Latitude < bounds.SouthWest.Latitude {
				bounds.SouthWest.Latitude = coord.Latitude
			}
			if coord.Longitude < bounds.SouthWest.Longitude {
				bounds.SouthWest.Longitude = coord.Longitude
			}
			if coord.Latitude > bounds.NorthEast.Latitude {
				bounds.NorthEast.Latitude = coord.Latitude
			}
			if coord.Longitude > bounds.NorthEast.Longitude {
				bounds.NorthEast.Longitude = coord.Longitude
			}
		}
		return Framing{Mode: FramingFitBounds, Bounds: bounds, Padding: fitPadding, MaxZoom: fitMaxZoom}
	}

	return Framing{Mode: FramingReset, Center: l.defaultCenter, Zoom: DefaultZoom}
}
