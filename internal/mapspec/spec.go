// Package mapspec turns filtered customer records into a renderable map
// description: center, zoom hint, styled markers with popup content. It builds
// value objects only; drawing is the view layer's problem.
package mapspec

// Color is a marker color understood by the view layer.
type Color string

const (
	ColorGreen     Color = "green"
	ColorLightBlue Color = "lightblue"
	ColorRed       Color = "red"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FallbackCenter is used when there are no records to average and no focus.
var FallbackCenter = Coordinate{Lat: 36.7783, Lon: -119.4179}

// Zoom hints.
const (
	ZoomFallback = 5
	ZoomRoster   = 6
	ZoomFocus    = 16
)

// Marker is one styled map pin.
type Marker struct {
	CustomerID string     `json:"customer_id"`
	Position   Coordinate `json:"position"`
	Color      Color      `json:"color"`
	Popup      []string   `json:"popup"`
	AvatarRef  string     `json:"avatar_ref,omitempty"`
}

// Cluster groups markers for clustered rendering. Grouping is display-only:
// it never changes which markers exist or how they look.
type Cluster struct {
	Center  Coordinate `json:"center"`
	Markers []int      `json:"markers"` // indexes into MapSpec.Markers
}

// BBox is the bounding box of the placed markers.
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// MapSpec is the full description handed to the view layer.
type MapSpec struct {
	Center   Coordinate `json:"center"`
	Zoom     int        `json:"zoom"`
	Markers  []Marker   `json:"markers"`
	Clusters []Cluster  `json:"clusters,omitempty"`
	Bounds   *BBox      `json:"bounds,omitempty"`

	// Skipped lists customers left off the map for lack of coordinates;
	// Unscored lists customers hidden from the probability overlay because
	// they carry no prediction.
	Skipped  []string `json:"skipped,omitempty"`
	Unscored []string `json:"unscored,omitempty"`
}
