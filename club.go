package strava

import (
	"context"
	"net/http"

	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	clubPath  = "/api/v3/clubs/:id"
	clubsPath = "/api/v3/athlete/clubs"
)

// Club is a Strava club summary or detail record.
type Club struct {
	ID               int64
	ResourceState    int
	Name             string
	ProfileMediumURL string
	ProfileURL       string
	City             string
	State            string
	Country          string
	SportType        string
	Private          bool
	MemberCount      int
	URL              string
}

func newClub(m jsonmap.Map) (*Club, error) {
	d := jsonmap.New(m)
	club := &Club{
		ID:   d.Int64("id"),
		Name: d.String("name"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	club.ResourceState = d.OptInt("resource_state")
	club.ProfileMediumURL = d.OptString("profile_medium")
	club.ProfileURL = d.OptString("profile")
	club.City = d.OptString("city")
	club.State = d.OptString("state")
	club.Country = d.OptString("country")
	club.SportType = d.OptString("sport_type")
	club.Private = d.OptBool("private")
	club.MemberCount = d.OptInt("member_count")
	club.URL = d.OptString("url")
	return club, nil
}

// ClubByID fetches a single club.
func (c *Client) ClubByID(ctx context.Context, id int64) (*Club, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(clubPath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newClub(m)
}

// Clubs fetches the clubs the authenticated athlete belongs to.
func (c *Client) Clubs(ctx context.Context, page Page) ([]*Club, error) {
	ms, err := c.objects(ctx, http.MethodGet, clubsPath, true, page.apply(nil))
	if err != nil {
		return nil, err
	}
	out := make([]*Club, 0, len(ms))
	for _, m := range ms {
		if club, err := newClub(m); err == nil {
			out = append(out, club)
		}
	}
	return out, nil
}
