package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	segmentPath            = "/api/v3/segments/:id"
	starredSegmentsPath    = "/api/v3/segments/starred"
	exploreSegmentsPath    = "/api/v3/segments/explore"
	segmentLeaderboardPath = "/api/v3/segments/:id/leaderboard"
	segmentEffortsPath     = "/api/v3/segments/:id/all_efforts"
)

// Segment is a portion of road or trail athletes compete over.
type Segment struct {
	ID                 int64
	ResourceState      int
	Name               string
	ActivityType       string
	Distance           float64
	AverageGrade       float64
	MaximumGrade       float64
	ElevationHigh      float64
	ElevationLow       float64
	ClimbCategory      int
	StartCoordinate    Coordinate
	EndCoordinate      Coordinate
	City               string
	State              string
	Country            string
	Private            bool
	Starred            bool
	Hazardous          bool
	TotalElevationGain float64
	Map                *Map
	EffortCount        int
	AthleteCount       int
	StarCount          int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func newSegment(m jsonmap.Map) (*Segment, error) {
	d := jsonmap.New(m)
	s := &Segment{
		ID:   d.Int64("id"),
		Name: d.String("name"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	s.ResourceState = d.OptInt("resource_state")
	s.ActivityType = d.OptString("activity_type")
	s.Distance = d.OptFloat("distance")
	s.AverageGrade = d.OptFloat("average_grade")
	s.MaximumGrade = d.OptFloat("maximum_grade")
	s.ElevationHigh = d.OptFloat("elevation_high")
	s.ElevationLow = d.OptFloat("elevation_low")
	s.ClimbCategory = d.OptInt("climb_category")
	s.StartCoordinate = coordinate(d.OptLatLng("start_latlng"))
	s.EndCoordinate = coordinate(d.OptLatLng("end_latlng"))
	s.City = d.OptString("city")
	s.State = d.OptString("state")
	s.Country = d.OptString("country")
	s.Private = d.OptBool("private")
	s.Starred = d.OptBool("starred")
	s.Hazardous = d.OptBool("hazardous")
	s.TotalElevationGain = d.OptFloat("total_elevation_gain")
	if mm := d.OptObject("map"); mm != nil {
		if decoded, err := newMap(mm); err == nil {
			s.Map = decoded
		}
	}
	s.EffortCount = d.OptInt("effort_count")
	s.AthleteCount = d.OptInt("athlete_count")
	s.StarCount = d.OptInt("star_count")
	s.CreatedAt = d.OptTime("created_at")
	s.UpdatedAt = d.OptTime("updated_at")
	return s, nil
}

// SegmentByID fetches a single segment.
func (c *Client) SegmentByID(ctx context.Context, id int64) (*Segment, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(segmentPath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newSegment(m)
}

// StarredSegments fetches the segments starred by the authenticated athlete.
func (c *Client) StarredSegments(ctx context.Context, page Page) ([]*Segment, error) {
	ms, err := c.objects(ctx, http.MethodGet, starredSegmentsPath, true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	out := make([]*Segment, 0, len(ms))
	for _, m := range ms {
		if s, err := newSegment(m); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// MapBounds frames an explore query: south-west corner first, then
// north-east.
type MapBounds struct {
	SouthWest Coordinate
	NorthEast Coordinate
}

func (b MapBounds) encode() string {
	parts := []string{
		strconv.FormatFloat(b.SouthWest.Latitude, 'f', -1, 64),
		strconv.FormatFloat(b.SouthWest.Longitude, 'f', -1, 64),
		strconv.FormatFloat(b.NorthEast.Latitude, 'f', -1, 64),
		strconv.FormatFloat(b.NorthEast.Longitude, 'f', -1, 64),
	}
	return strings.Join(parts, ",")
}

// ExploreSegment is the reduced representation returned by segment explore.
type ExploreSegment struct {
	ID                int64
	Name              string
	ClimbCategory     int
	ClimbCategoryDesc string
	AverageGrade      float64
	StartCoordinate   Coordinate
	EndCoordinate     Coordinate
	ElevationDiff     float64
	Distance          float64
	Points            Polyline
}

func newExploreSegment(m jsonmap.Map) (*ExploreSegment, error) {
	d := jsonmap.New(m)
	s := &ExploreSegment{
		ID:   d.Int64("id"),
		Name: d.String("name"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	s.ClimbCategory = d.OptInt("climb_category")
	s.ClimbCategoryDesc = d.OptString("climb_category_desc")
	s.AverageGrade = d.OptFloat("avg_grade")
	s.StartCoordinate = coordinate(d.OptLatLng("start_latlng"))
	s.EndCoordinate = coordinate(d.OptLatLng("end_latlng"))
	s.ElevationDiff = d.OptFloat("elev_difference")
	s.Distance = d.OptFloat("distance")
	s.Points = Polyline(d.OptString("points"))
	return s, nil
}

// ExploreSegments searches for popular segments within the given bounds.
// activityType may be "running" or "riding"; empty uses the server default.
func (c *Client) ExploreSegments(ctx context.Context, bounds MapBounds, activityType string) ([]*ExploreSegment, error) {
	params := Params{"bounds": bounds.encode()}
	if activityType != "" {
		params["activity_type"] = activityType
	}

	m, err := c.object(ctx, http.MethodGet, exploreSegmentsPath, true, params)
	if err != nil {
		return nil, err
	}

	d := jsonmap.New(m)
	entries := d.Objects("segments")
	if err := d.Err(); err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Message: "explore response missing segments array"}
	}

	out := make([]*ExploreSegment, 0, len(entries))
	for _, entry := range entries {
		if s, err := newExploreSegment(entry); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// LeaderboardEntry is one ranked effort on a segment leaderboard.
type LeaderboardEntry struct {
	AthleteName string
	AthleteID   int64
	ElapsedTime int
	MovingTime  int
	StartDate   time.Time
	Rank        int
	EffortID    int64
	ActivityID  int64
}

func newLeaderboardEntry(m jsonmap.Map) (*LeaderboardEntry, error) {
	d := jsonmap.New(m)
	e := &LeaderboardEntry{
		Rank:        d.Int("rank"),
		ElapsedTime: d.Int("elapsed_time"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	e.AthleteName = d.OptString("athlete_name")
	e.AthleteID = d.OptInt64("athlete_id")
	e.MovingTime = d.OptInt("moving_time")
	e.StartDate = d.OptTime("start_date")
	e.EffortID = d.OptInt64("effort_id")
	e.ActivityID = d.OptInt64("activity_id")
	return e, nil
}

// SegmentLeaderboard ranks efforts on one segment.
type SegmentLeaderboard struct {
	EffortCount int
	EntryCount  int
	Entries     []*LeaderboardEntry
}

// SegmentLeaderboard fetches the leaderboard for a segment.
func (c *Client) SegmentLeaderboard(ctx context.Context, id int64, page Page) (*SegmentLeaderboard, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(segmentLeaderboardPath, id), true, page.apply(nil))
	if err != nil {
		return nil, err
	}

	d := jsonmap.New(m)
	board := &SegmentLeaderboard{
		EffortCount: d.OptInt("effort_count"),
		EntryCount:  d.OptInt("entry_count"),
	}
	for _, entry := range d.OptObjects("entries") {
		if e, err := newLeaderboardEntry(entry); err == nil {
			board.Entries = append(board.Entries, e)
		}
	}
	return board, nil
}

// SegmentEffort is one athlete's attempt at a segment.
type SegmentEffort struct {
	ID            int64
	ResourceState int
	Name          string
	ElapsedTime   int
	MovingTime    int
	StartDate     time.Time
	Distance      float64
	StartIndex    int
	EndIndex      int
	ActivityID    int64
	AthleteID     int64
	KOMRank       int
	PRRank        int
}

func newSegmentEffort(m jsonmap.Map) (*SegmentEffort, error) {
	d := jsonmap.New(m)
	e := &SegmentEffort{
		ID:          d.Int64("id"),
		ElapsedTime: d.Int("elapsed_time"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	e.ResourceState = d.OptInt("resource_state")
	e.Name = d.OptString("name")
	e.MovingTime = d.OptInt("moving_time")
	e.StartDate = d.OptTime("start_date")
	e.Distance = d.OptFloat("distance")
	e.StartIndex = d.OptInt("start_index")
	e.EndIndex = d.OptInt("end_index")
	if activity := d.OptObject("activity"); activity != nil {
		e.ActivityID = jsonmap.New(activity).OptInt64("id")
	}
	if athlete := d.OptObject("athlete"); athlete != nil {
		e.AthleteID = jsonmap.New(athlete).OptInt64("id")
	}
	e.KOMRank = d.OptInt("kom_rank")
	e.PRRank = d.OptInt("pr_rank")
	return e, nil
}

// SegmentEfforts fetches the authenticated athlete's efforts on a segment.
func (c *Client) SegmentEfforts(ctx context.Context, id int64, page Page) ([]*SegmentEffort, error) {
	ms, err := c.objects(ctx, http.MethodGet, replaceID(segmentEffortsPath, id), true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	out := make([]*SegmentEffort, 0, len(ms))
	for _, m := range ms {
		if e, err := newSegmentEffort(m); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
