package strava

import (
	"context"
	"net/http"
	"time"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	athletePath      = "/api/v3/athlete"
	athletesPath     = "/api/v3/athletes/:id"
	athleteStatsPath = "/api/v3/athletes/:id/stats"
)

// Athlete is a Strava athlete profile.
type Athlete struct {
	ID                    int64
	ResourceState         int
	FirstName             string
	LastName              string
	City                  string
	State                 string
	Country               string
	Sex                   string
	Premium               bool
	Email                 string
	Weight                float64
	FollowerCount         int
	FriendCount           int
	MeasurementPreference string
	ProfileMediumURL      string
	ProfileURL            string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func newAthlete(m jsonmap.Map) (*Athlete, error) {
	d := jsonmap.New(m)
	a := &Athlete{
		ID:            d.Int64("id"),
		ResourceState: d.Int("resource_state"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	a.FirstName = d.OptString("firstname")
	a.LastName = d.OptString("lastname")
	a.City = d.OptString("city")
	a.State = d.OptString("state")
	a.Country = d.OptString("country")
	a.Sex = d.OptString("sex")
	a.Premium = d.OptBool("premium")
	a.Email = d.OptString("email")
	a.Weight = d.OptFloat("weight")
	a.FollowerCount = d.OptInt("follower_count")
	a.FriendCount = d.OptInt("friend_count")
	a.MeasurementPreference = d.OptString("measurement_preference")
	a.ProfileMediumURL = d.OptString("profile_medium")
	a.ProfileURL = d.OptString("profile")
	a.CreatedAt = d.OptTime("created_at")
	a.UpdatedAt = d.OptTime("updated_at")
	return a, nil
}

// Athlete fetches the profile of the currently authenticated athlete.
func (c *Client) Athlete(ctx context.Context) (*Athlete, error) {
	m, err := c.object(ctx, http.MethodGet, athletePath, true, nil)
	if err != nil {
		return nil, err
	}
	return newAthlete(m)
}

// AthleteByID fetches another athlete's public profile.
func (c *Client) AthleteByID(ctx context.Context, id int64) (*Athlete, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(athletesPath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newAthlete(m)
}

// AthleteUpdate names the mutable profile fields. Zero values are omitted
// from the request.
type AthleteUpdate struct {
	City    string
	State   string
	Country string
	Sex     string
	Weight  float64
}

// UpdateAthlete modifies the authenticated athlete's profile and returns the
// updated record.
func (c *Client) UpdateAthlete(ctx context.Context, update AthleteUpdate) (*Athlete, error) {
	params := Params{}
	if update.City != "" {
		params["city"] = update.City
	}
	if update.State != "" {
		params["state"] = update.State
	}
	if update.Country != "" {
		params["country"] = update.Country
	}
	if update.Sex != "" {
		params["sex"] = update.Sex
	}
	if update.Weight > 0 {
		params["weight"] = update.Weight
	}

	m, err := c.object(ctx, http.MethodPut, athletePath, true, params)
	if err != nil {
		return nil, err
	}
	return newAthlete(m)
}

// ActivityTotals aggregates ride, run or swim numbers over one window.
type ActivityTotals struct {
	Count            int
	Distance         float64
	MovingTime       int
	ElapsedTime      int
	ElevationGain    float64
	AchievementCount int
}

func newActivityTotals(m jsonmap.Map) (*ActivityTotals, error) {
	d := jsonmap.New(m)
	t := &ActivityTotals{
		Count:         d.Int("count"),
		Distance:      d.Float("distance"),
		MovingTime:    d.Int("moving_time"),
		ElapsedTime:   d.Int("elapsed_time"),
		ElevationGain: d.Float("elevation_gain"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	t.AchievementCount = d.OptInt("achievement_count")
	return t, nil
}

// Stats aggregates an athlete's activity totals across the recent,
// year-to-date and all-time windows.
type Stats struct {
	BiggestRideDistance       float64
	BiggestClimbElevationGain float64
	RecentRideTotals          *ActivityTotals
	RecentRunTotals           *ActivityTotals
	RecentSwimTotals          *ActivityTotals
	YTDRideTotals             *ActivityTotals
	YTDRunTotals              *ActivityTotals
	YTDSwimTotals             *ActivityTotals
	AllRideTotals             *ActivityTotals
	AllRunTotals              *ActivityTotals
	AllSwimTotals             *ActivityTotals
}

func newStats(m jsonmap.Map) (*Stats, error) {
	d := jsonmap.New(m)
	s := &Stats{
		BiggestRideDistance:       d.OptFloat("biggest_ride_distance"),
		BiggestClimbElevationGain: d.OptFloat("biggest_climb_elevation_gain"),
	}

	totals := func(key string, dst **ActivityTotals) error {
		tm := d.OptObject(key)
		if tm == nil {
			return nil
		}
		t, err := newActivityTotals(tm)
		if err != nil {
			return err
		}
		*dst = t
		return nil
	}

	for _, block := range []struct {
		key string
		dst **ActivityTotals
	}{
		{"recent_ride_totals", &s.RecentRideTotals},
		{"recent_run_totals", &s.RecentRunTotals},
		{"recent_swim_totals", &s.RecentSwimTotals},
		{"ytd_ride_totals", &s.YTDRideTotals},
		{"ytd_run_totals", &s.YTDRunTotals},
		{"ytd_swim_totals", &s.YTDSwimTotals},
		{"all_ride_totals", &s.AllRideTotals},
		{"all_run_totals", &s.AllRunTotals},
		{"all_swim_totals", &s.AllSwimTotals},
	} {
		if err := totals(block.key, block.dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Stats fetches the activity totals for an athlete.
func (c *Client) Stats(ctx context.Context, athleteID int64) (*Stats, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(athleteStatsPath, athleteID), true, nil)
	if err != nil {
		return nil, err
	}
	return newStats(m)
}
