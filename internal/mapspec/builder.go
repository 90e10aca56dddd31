package mapspec

import (
	"math"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/model"
)

// Options controls one Build call.
type Options struct {
	// ShowProbability switches markers to the churn-prediction overlay.
	ShowProbability bool

	// Focus recenters the map (a successful ID search) instead of averaging
	// marker positions.
	Focus *Coordinate

	// Cluster adds display grouping. The marker list is identical either way.
	Cluster bool

	// Avatars maps customer ID to avatar reference; missing entries are fine.
	Avatars map[string]string
}

// Build converts records plus display options into a MapSpec. Records without
// coordinates are skipped with a warning, never a fatal error.
func Build(records []model.Customer, opts Options) MapSpec {
	spec := MapSpec{}

	bounds := geom.NewBounds(geom.XY)
	var sumLat, sumLon float64

	for i := range records {
		c := &records[i]
		if !c.HasLocation() {
			zap.L().Warn("customer has no coordinates, skipping marker",
				zap.String("customer_id", c.ID),
			)
			spec.Skipped = append(spec.Skipped, c.ID)
			continue
		}

		color, popup, include := Style(c, opts.ShowProbability)
		if !include {
			if opts.ShowProbability && c.Status != model.StatusChurned {
				spec.Unscored = append(spec.Unscored, c.ID)
			}
			continue
		}

		pos := Coordinate{Lat: *c.Latitude, Lon: *c.Longitude}
		spec.Markers = append(spec.Markers, Marker{
			CustomerID: c.ID,
			Position:   pos,
			Color:      color,
			Popup:      popup,
			AvatarRef:  opts.Avatars[c.ID],
		})
		bounds.Extend(geom.NewPointFlat(geom.XY, []float64{pos.Lon, pos.Lat}))
		sumLat += pos.Lat
		sumLon += pos.Lon
	}

	switch {
	case opts.Focus != nil:
		spec.Center = *opts.Focus
		spec.Zoom = ZoomFocus
	case len(spec.Markers) == 0:
		spec.Center = FallbackCenter
		spec.Zoom = ZoomFallback
	default:
		n := float64(len(spec.Markers))
		spec.Center = Coordinate{Lat: sumLat / n, Lon: sumLon / n}
		spec.Zoom = zoomForSpan(spanOf(bounds))
	}

	if len(spec.Markers) > 0 {
		spec.Bounds = &BBox{
			MinLat: bounds.Min(1),
			MinLon: bounds.Min(0),
			MaxLat: bounds.Max(1),
			MaxLon: bounds.Max(0),
		}
		if opts.Cluster {
			spec.Clusters = clusterMarkers(spec.Markers, *spec.Bounds)
		}
	}

	return spec
}

func spanOf(b *geom.Bounds) float64 {
	return math.Max(b.Max(0)-b.Min(0), b.Max(1)-b.Min(1))
}

// zoomForSpan picks a zoom hint from the marker extent in degrees. Wide
// rosters zoom out; a single point keeps the roster default.
func zoomForSpan(span float64) int {
	switch {
	case span > 40:
		return 3
	case span > 20:
		return 4
	case span > 10:
		return 5
	case span > 2:
		return ZoomRoster
	case span > 0.5:
		return 8
	case span > 0:
		return 10
	default:
		return ZoomRoster
	}
}
