package mapspec

// clusterGridCells divides the marker extent into this many cells per axis.
const clusterGridCells = 8

// clusterMarkers groups markers into grid cells over their bounding box.
// Pure display grouping: the marker list is never altered, clusters only hold
// indexes into it.
func clusterMarkers(markers []Marker, bbox BBox) []Cluster {
	latSpan := bbox.MaxLat - bbox.MinLat
	lonSpan := bbox.MaxLon - bbox.MinLon
	if latSpan == 0 {
		latSpan = 1e-9
	}
	if lonSpan == 0 {
		lonSpan = 1e-9
	}

	type cellKey struct{ row, col int }
	cells := map[cellKey][]int{}
	order := []cellKey{}

	for i, m := range markers {
		row := int(float64(clusterGridCells) * (m.Position.Lat - bbox.MinLat) / latSpan)
		col := int(float64(clusterGridCells) * (m.Position.Lon - bbox.MinLon) / lonSpan)
		if row == clusterGridCells {
			row--
		}
		if col == clusterGridCells {
			col--
		}
		key := cellKey{row, col}
		if _, seen := cells[key]; !seen {
			order = append(order, key)
		}
		cells[key] = append(cells[key], i)
	}

	clusters := make([]Cluster, 0, len(order))
	for _, key := range order {
		idxs := cells[key]
		var sumLat, sumLon float64
		for _, i := range idxs {
			sumLat += markers[i].Position.Lat
			sumLon += markers[i].Position.Lon
		}
		n := float64(len(idxs))
		clusters = append(clusters, Cluster{
			Center:  Coordinate{Lat: sumLat / n, Lon: sumLon / n},
			Markers: idxs,
		})
	}
	return clusters
}
