// Package apierrors decodes the structured fault payloads Strava attaches to
// non-2xx responses.
package apierrors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Fault mirrors Strava's error envelope: a top-level message plus zero or
// more per-field details.
type Fault struct {
	StatusCode int           `json:"-"`
	Message    string        `json:"message"`
	Errors     []FaultDetail `json:"errors"`
	Body       []byte        `json:"-"`
}

// FaultDetail identifies the resource and field a fault applies to.
type FaultDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
}

// Error satisfies the error interface so callers can surface platform
// failures directly.
func (f *Fault) Error() string {
	if f == nil {
		return "<nil>"
	}
	if len(f.Errors) > 0 {
		detail := f.Errors[0]
		return fmt.Sprintf("strava: %s (%s.%s %s)", f.Message, detail.Resource, detail.Field, detail.Code)
	}
	return fmt.Sprintf("strava: %s", f.Message)
}

// Decode converts an HTTP error response body into a Fault. Bodies that are
// empty or not JSON still produce a usable Fault carrying the raw text.
func Decode(resp *http.Response) (*Fault, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error response: %w", err)
	}

	fault := &Fault{StatusCode: resp.StatusCode, Body: body}
	if len(body) == 0 {
		fault.Message = resp.Status
		return fault, nil
	}

	if err := json.Unmarshal(body, fault); err != nil {
		fault.Message = string(body)
		return fault, nil
	}

	if fault.Message == "" {
		fault.Message = resp.Status
	}
	return fault, nil
}
