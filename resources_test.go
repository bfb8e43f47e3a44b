package strava_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	strava "github.com/tommetge/stravakit"
)

func TestAthleteByIDHitsSubstitutedPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/athletes/227615", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 227615, "resource_state": 2, "firstname": "John"}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	athlete, err := client.AthleteByID(context.Background(), 227615)
	require.NoError(t, err)
	require.Equal(t, "John", athlete.FirstName)
}

func TestStatsPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/athletes/227615/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"biggest_ride_distance": 190269.0}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	stats, err := client.Stats(context.Background(), 227615)
	require.NoError(t, err)
	require.Equal(t, 190269.0, stats.BiggestRideDistance)
}

func TestUpdateAthleteSendsFormBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v3/athlete", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "70.5", r.FormValue("weight"))
		require.Equal(t, "Oakland", r.FormValue("city"))
		_, _ = w.Write([]byte(`{"id": 227615, "resource_state": 3, "weight": 70.5}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	athlete, err := client.UpdateAthlete(context.Background(), strava.AthleteUpdate{
		City:   "Oakland",
		Weight: 70.5,
	})
	require.NoError(t, err)
	require.Equal(t, 70.5, athlete.Weight)
}

func TestExploreSegmentsSendsBounds(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/segments/explore", r.URL.Path)
		require.Equal(t, "37.821362,-122.505373,37.842038,-122.465977", r.URL.Query().Get("bounds"))
		require.Equal(t, "riding", r.URL.Query().Get("activity_type"))
		_, _ = w.Write([]byte(`{"segments": [{"id": 229781, "name": "Hawk Hill", "avg_grade": 5.7}]}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	bounds := strava.MapBounds{
		SouthWest: strava.Coordinate{Latitude: 37.821362, Longitude: -122.505373},
		NorthEast: strava.Coordinate{Latitude: 37.842038, Longitude: -122.465977},
	}
	segments, err := client.ExploreSegments(context.Background(), bounds, "riding")
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, "Hawk Hill", segments[0].Name)
}

func TestExploreSegmentsRejectsMissingSegmentsKey(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	_, err := client.ExploreSegments(context.Background(), strava.MapBounds{}, "")
	kind, ok := strava.KindOf(err)
	require.True(t, ok)
	require.Equal(t, strava.KindInvalidResponse, kind)
}

func TestSegmentLeaderboardDecodesEntries(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/segments/229781/leaderboard", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"effort_count": 7037,
			"entry_count": 7037,
			"entries": [
				{"athlete_name": "Jim Whimpey", "rank": 1, "elapsed_time": 360},
				{"athlete_name": "Broken Row"}
			]
		}`))
	}
	client := newTestClient(t, handler, strava.Config{})

	board, err := client.SegmentLeaderboard(context.Background(), 229781, strava.Page{})
	require.NoError(t, err)
	require.Equal(t, 7037, board.EffortCount)
	require.Len(t, board.Entries, 1)
	require.Equal(t, "Jim Whimpey", board.Entries[0].AthleteName)
}

func TestSegmentEffortsPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/segments/229781/all_efforts", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 1234556789, "elapsed_time": 801}]`))
	}
	client := newTestClient(t, handler, strava.Config{})

	efforts, err := client.SegmentEfforts(context.Background(), 229781, strava.Page{})
	require.NoError(t, err)
	require.Len(t, efforts, 1)
	require.Equal(t, int64(1234556789), efforts[0].ID)
}

func TestClubsPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/athlete/clubs", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Team Strava Cycling"}]`))
	}
	client := newTestClient(t, handler, strava.Config{})

	clubs, err := client.Clubs(context.Background(), strava.Page{})
	require.NoError(t, err)
	require.Len(t, clubs, 1)
}

func TestRoutesPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/athletes/227615/routes", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 743064, "name": "Marin Loop"}]`))
	}
	client := newTestClient(t, handler, strava.Config{})

	routes, err := client.Routes(context.Background(), 227615, strava.Page{})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Equal(t, "Marin Loop", routes[0].Name)
}

func TestStarredSegmentsPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/segments/starred", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 229781, "name": "Hawk Hill", "starred": true}]`))
	}
	client := newTestClient(t, handler, strava.Config{})

	segments, err := client.StarredSegments(context.Background(), strava.Page{})
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.True(t, segments[0].Starred)
}
