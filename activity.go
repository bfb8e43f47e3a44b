package strava

import (
	"context"
	"net/http"
	"time"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	activitiesPath          = "/api/v3/athlete/activities"
	activityPath            = "/api/v3/activities/:id"
	followingActivitiesPath = "/api/v3/activities/following"
)

// Activity is one recorded effort: a ride, run, swim or similar.
type Activity struct {
	ID                 int64
	ResourceState      int
	Name               string
	Distance           float64
	MovingTime         int
	ElapsedTime        int
	TotalElevationGain float64
	Type               string
	StartDate          time.Time

	AthleteID        int64
	TimeZone         string
	StartCoordinate  Coordinate
	EndCoordinate    Coordinate
	City             string
	State            string
	Country          string
	AchievementCount int
	KudosCount       int
	CommentCount     int
	AthleteCount     int
	PhotoCount       int
	Map              *Map
	Trainer          bool
	Commute          bool
	Manual           bool
	Private          bool
	Flagged          bool
	GearID           string
	AverageSpeed     float64
	MaxSpeed         float64
	AverageWatts     float64
	Kilojoules       float64
	DeviceWatts      bool
	AverageHeartRate float64
	MaxHeartRate     float64
	Calories         float64
	HasKudoed        bool
}

func newActivity(m jsonmap.Map) (*Activity, error) {
	d := jsonmap.New(m)
	a := &Activity{
		ID:                 d.Int64("id"),
		Name:               d.String("name"),
		Distance:           d.Float("distance"),
		MovingTime:         d.Int("moving_time"),
		ElapsedTime:        d.Int("elapsed_time"),
		TotalElevationGain: d.Float("total_elevation_gain"),
		Type:               d.String("type"),
		StartDate:          d.Time("start_date"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	a.ResourceState = d.OptInt("resource_state")
	if athlete := d.OptObject("athlete"); athlete != nil {
		a.AthleteID = jsonmap.New(athlete).OptInt64("id")
	}
	a.TimeZone = d.OptString("timezone")
	a.StartCoordinate = coordinate(d.OptLatLng("start_latlng"))
	a.EndCoordinate = coordinate(d.OptLatLng("end_latlng"))
	a.City = d.OptString("location_city")
	a.State = d.OptString("location_state")
	a.Country = d.OptString("location_country")
	a.AchievementCount = d.OptInt("achievement_count")
	a.KudosCount = d.OptInt("kudos_count")
	a.CommentCount = d.OptInt("comment_count")
	a.AthleteCount = d.OptInt("athlete_count")
	a.PhotoCount = d.OptInt("photo_count")
	if mm := d.OptObject("map"); mm != nil {
		if decoded, err := newMap(mm); err == nil {
			a.Map = decoded
		}
	}
	a.Trainer = d.OptBool("trainer")
	a.Commute = d.OptBool("commute")
	a.Manual = d.OptBool("manual")
	a.Private = d.OptBool("private")
	a.Flagged = d.OptBool("flagged")
	a.GearID = d.OptString("gear_id")
	a.AverageSpeed = d.OptFloat("average_speed")
	a.MaxSpeed = d.OptFloat("max_speed")
	a.AverageWatts = d.OptFloat("average_watts")
	a.Kilojoules = d.OptFloat("kilojoules")
	a.DeviceWatts = d.OptBool("device_watts")
	a.AverageHeartRate = d.OptFloat("average_heartrate")
	a.MaxHeartRate = d.OptFloat("max_heartrate")
	a.Calories = d.OptFloat("calories")
	a.HasKudoed = d.OptBool("has_kudoed")
	return a, nil
}

// newActivities decodes a list response. Records that fail their required
// fields are dropped rather than surfaced as partial instances.
func newActivities(ms []jsonmap.Map) []*Activity {
	out := make([]*Activity, 0, len(ms))
	for _, m := range ms {
		if a, err := newActivity(m); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Activities fetches the authenticated athlete's activities, newest first.
func (c *Client) Activities(ctx context.Context, page Page) ([]*Activity, error) {
	ms, err := c.objects(ctx, http.MethodGet, activitiesPath, true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	return newActivities(ms), nil
}

// ActivityByID fetches a single activity in full detail.
func (c *Client) ActivityByID(ctx context.Context, id int64) (*Activity, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(activityPath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newActivity(m)
}

// FollowingActivities fetches recent activities by athletes the
// authenticated athlete follows.
func (c *Client) FollowingActivities(ctx context.Context, page Page) ([]*Activity, error) {
	ms, err := c.objects(ctx, http.MethodGet, followingActivitiesPath, true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	return newActivities(ms), nil
}
