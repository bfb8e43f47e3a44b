package jsonmap

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sample() Map {
	return Map{
		"id":             float64(227615),
		"resource_state": float64(3),
		"name":           "Hawk Hill",
		"private":        false,
		"distance":       2684.82,
		"start_latlng":   []any{37.8331119, -122.4834356},
		"created_at":     "2016-02-16T14:52:54Z",
		"map":            map[string]any{"id": "a32004480"},
		"efforts":        []any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}},
		"athlete":        nil,
	}
}

func TestRequiredFieldsPresent(t *testing.T) {
	d := New(sample())

	require.Equal(t, int64(227615), d.Int64("id"))
	require.Equal(t, 3, d.Int("resource_state"))
	require.Equal(t, "Hawk Hill", d.String("name"))
	require.Equal(t, false, d.Bool("private"))
	require.Equal(t, 2684.82, d.Float("distance"))
	require.Equal(t, [2]float64{37.8331119, -122.4834356}, d.LatLng("start_latlng"))
	require.Equal(t, time.Date(2016, 2, 16, 14, 52, 54, 0, time.UTC), d.Time("created_at"))
	require.Equal(t, "a32004480", d.Object("map")["id"])
	require.Len(t, d.Objects("efforts"), 2)
	require.NoError(t, d.Err())
}

func TestRequiredFieldAbsentRecordsFailure(t *testing.T) {
	d := New(sample())
	require.Equal(t, "", d.String("nickname"))

	err := d.Err()
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "nickname", fieldErr.Key)
}

func TestRequiredFieldNullRecordsFailure(t *testing.T) {
	d := New(sample())
	d.Object("athlete")
	require.Error(t, d.Err())
}

func TestRequiredFieldTypeMismatchRecordsFailure(t *testing.T) {
	d := New(sample())
	require.Equal(t, 0, d.Int("name"))
	require.Error(t, d.Err())
}

func TestFirstFailureWins(t *testing.T) {
	d := New(sample())
	d.String("missing_one")
	d.String("missing_two")

	var fieldErr *FieldError
	require.ErrorAs(t, d.Err(), &fieldErr)
	require.Equal(t, "missing_one", fieldErr.Key)
}

func TestOptionalLookupsNeverFail(t *testing.T) {
	d := New(sample())

	require.Equal(t, "", d.OptString("nickname"))
	require.Equal(t, 0, d.OptInt("athlete_count"))
	require.Equal(t, int64(0), d.OptInt64("athlete_count"))
	require.Equal(t, 0.0, d.OptFloat("elevation"))
	require.Equal(t, false, d.OptBool("starred"))
	require.True(t, d.OptTime("updated_at").IsZero())
	require.Nil(t, d.OptObject("gear"))
	require.Nil(t, d.OptObjects("splits"))
	require.Equal(t, [2]float64{}, d.OptLatLng("end_latlng"))
	require.NoError(t, d.Err())
}

func TestOptionalTypeMismatchYieldsZero(t *testing.T) {
	d := New(sample())
	require.Equal(t, 0, d.OptInt("name"))
	require.Equal(t, "", d.OptString("id"))
	require.NoError(t, d.Err())
}

func TestIntRejectsFractionalNumbers(t *testing.T) {
	d := New(Map{"count": 1.5})
	d.Int("count")
	require.Error(t, d.Err())
}

func TestIntAcceptsJSONNumber(t *testing.T) {
	d := New(Map{"id": json.Number("9223372036854775807")})
	require.Equal(t, int64(9223372036854775807), d.Int64("id"))
	require.NoError(t, d.Err())
}

func TestLatLngRejectsShortArrays(t *testing.T) {
	d := New(Map{"start_latlng": []any{37.8}})
	d.LatLng("start_latlng")
	require.Error(t, d.Err())
}

func TestObjectsRejectsMixedArrays(t *testing.T) {
	d := New(Map{"efforts": []any{map[string]any{"id": float64(1)}, "oops"}})
	d.Objects("efforts")
	require.Error(t, d.Err())
}

func TestHas(t *testing.T) {
	d := New(sample())
	require.True(t, d.Has("name"))
	require.False(t, d.Has("athlete"))
	require.False(t, d.Has("nickname"))
}
