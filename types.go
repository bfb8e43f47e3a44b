package strava

import (
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair as Strava returns them.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func coordinate(pair [2]float64) Coordinate {
	return Coordinate{Latitude: pair[0], Longitude: pair[1]}
}

// Page selects a slice of a paginated collection. Zero values leave the
// server defaults in place.
type Page struct {
	Page    int
	PerPage int
}

func (p Page) apply(params Params) Params {
	if p.Page <= 0 && p.PerPage <= 0 {
		return params
	}
	if params == nil {
		params = Params{}
	}
	if p.Page > 0 {
		params["page"] = p.Page
	}
	if p.PerPage > 0 {
		params["per_page"] = p.PerPage
	}
	return params
}

// Params collects the query or form parameters for one call. Values are
// coerced to strings when the request is built.
type Params map[string]any

// RateLimit carries the advisory usage counters Strava attaches to every
// response. Short covers the 15-minute window, Long the daily window.
type RateLimit struct {
	LimitShort int
	LimitLong  int
	UsageShort int
	UsageLong  int
}

// Exceeded reports whether either window is at or over its limit.
func (r RateLimit) Exceeded() bool {
	return (r.LimitShort > 0 && r.UsageShort >= r.LimitShort) ||
		(r.LimitLong > 0 && r.UsageLong >= r.LimitLong)
}

// parseRateLimit reads the comma-joined "short,long" header pair.
func parseRateLimit(limit, usage string) (RateLimit, bool) {
	limitShort, limitLong, ok := splitPair(limit)
	if !ok {
		return RateLimit{}, false
	}
	usageShort, usageLong, ok := splitPair(usage)
	if !ok {
		return RateLimit{}, false
	}
	return RateLimit{
		LimitShort: limitShort,
		LimitLong:  limitLong,
		UsageShort: usageShort,
		UsageLong:  usageLong,
	}, true
}

func splitPair(s string) (int, int, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return first, second, true
}
