package strava

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

func routeMap() jsonmap.Map {
	return jsonmap.Map{
		"id":             float64(743064),
		"resource_state": float64(3),
		"name":           "Marin Loop",
		"description":    "Headlands and back",
		"distance":       48542.1,
		"elevation_gain": 912.6,
		"type":           float64(1),
		"sub_type":       float64(1),
		"private":        false,
		"starred":        true,
		"map": map[string]any{
			"id":               "r743064",
			"summary_polyline": "_p~iF~ps|U",
		},
	}
}

func TestNewRouteFullRecord(t *testing.T) {
	r, err := newRoute(routeMap())
	require.NoError(t, err)
	require.Equal(t, int64(743064), r.ID)
	require.Equal(t, "Marin Loop", r.Name)
	require.Equal(t, 48542.1, r.Distance)
	require.True(t, r.Starred)
	require.NotNil(t, r.Map)
	require.Equal(t, Polyline("_p~iF~ps|U"), r.Map.SummaryPolyline)
}

func TestNewRouteRequiredFieldsVoidRecord(t *testing.T) {
	for _, key := range []string{"id", "name"} {
		m := routeMap()
		delete(m, key)

		r, err := newRoute(m)
		require.Error(t, err, "missing %s", key)
		require.Nil(t, r, "missing %s", key)
	}
}

func TestNewRouteOptionalFieldsDegradeToZero(t *testing.T) {
	r, err := newRoute(jsonmap.Map{"id": float64(1), "name": "bare"})
	require.NoError(t, err)
	require.Empty(t, r.Description)
	require.Zero(t, r.ElevationGain)
	require.Nil(t, r.Map)
}
