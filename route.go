package strava

import (
	"context"
	"net/http"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	routePath  = "/api/v3/routes/:id"
	routesPath = "/api/v3/athletes/:id/routes"
)

// Route is an athlete-authored course.
type Route struct {
	ID            int64
	ResourceState int
	Name          string
	Description   string
	Distance      float64
	ElevationGain float64
	Type          int
	SubType       int
	Private       bool
	Starred       bool
	Map           *Map
}

func newRoute(m jsonmap.Map) (*Route, error) {
	d := jsonmap.New(m)
	r := &Route{
		ID:   d.Int64("id"),
		Name: d.String("name"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	r.ResourceState = d.OptInt("resource_state")
	r.Description = d.OptString("description")
	r.Distance = d.OptFloat("distance")
	r.ElevationGain = d.OptFloat("elevation_gain")
	r.Type = d.OptInt("type")
	r.SubType = d.OptInt("sub_type")
	r.Private = d.OptBool("private")
	r.Starred = d.OptBool("starred")
	if mm := d.OptObject("map"); mm != nil {
		if decoded, err := newMap(mm); err == nil {
			r.Map = decoded
		}
	}
	return r, nil
}

// RouteByID fetches a single route.
func (c *Client) RouteByID(ctx context.Context, id int64) (*Route, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(routePath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newRoute(m)
}

// Routes fetches the routes created by the given athlete.
func (c *Client) Routes(ctx context.Context, athleteID int64, page Page) ([]*Route, error) {
	ms, err := c.objects(ctx, http.MethodGet, replaceID(routesPath, athleteID), true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	out := make([]*Route, 0, len(ms))
	for _, m := range ms {
		if r, err := newRoute(m); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}
