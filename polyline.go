package strava

import (
	"fmt"

	gopolyline "github.com/twpayne/go-polyline"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

// Polyline is an encoded coordinate sequence as returned in map fields.
type Polyline string

// Coordinates decodes the polyline into its ordered latitude/longitude pairs.
// An empty polyline decodes to nil.
func (p Polyline) Coordinates() ([]Coordinate, error) {
	if p == "" {
		return nil, nil
	}
	coords, _, err := gopolyline.DecodeCoords([]byte(p))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	out := make([]Coordinate, len(coords))
	for i, pair := range coords {
		out[i] = Coordinate{Latitude: pair[0], Longitude: pair[1]}
	}
	return out, nil
}

// Map carries the encoded geometry attached to activities, segments and
// routes. Summary polylines are present on list representations; the full
// polyline only on detail representations.
type Map struct {
	ID              string
	ResourceState   int
	SummaryPolyline Polyline
	FullPolyline    Polyline
}

func newMap(m jsonmap.Map) (*Map, error) {
	d := jsonmap.New(m)
	mp := &Map{
		ID: d.String("id"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	mp.ResourceState = d.OptInt("resource_state")
	mp.SummaryPolyline = Polyline(d.OptString("summary_polyline"))
	mp.FullPolyline = Polyline(d.OptString("polyline"))
	return mp, nil
}
