// Package strava is a client library for the Strava v3 REST API. It
// authenticates an athlete, issues requests against the fixed resource paths
// and decodes the JSON responses into typed models.
package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tommetge/stravakit/internal/apierrors"
	"github.com/tommetge/stravakit/internal/auth"
	"github.com/tommetge/stravakit/internal/httpx"
	"github.com/tommetge/stravakit/internal/jsonmap"
	"github.com/tommetge/stravakit/version"
)

// HTTPClient is the pluggable transport the client dispatches requests
// through. The default implementation is an *http.Client; tests substitute
// fakes to exercise the envelope without network I/O.
type HTTPClient = httpx.Doer

// Client issues requests against the Strava v3 API. All methods are safe for
// concurrent use; credential mutation is serialized against in-flight reads.
type Client struct {
	baseURL       string
	http          httpx.Doer
	logger        *slog.Logger
	rateLimitFunc func(RateLimit)

	creds     *auth.Store[*Athlete]
	rateLimit atomic.Pointer[RateLimit]
}

// NewClient constructs a new Client instance using the supplied configuration.
func NewClient(cfg Config) (*Client, error) {
	cfgCopy := cfg
	if err := (&cfgCopy).Validate(); err != nil {
		return nil, err
	}

	httpClient := cfgCopy.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfgCopy.Timeout}
	}

	logger := cfgCopy.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		baseURL:       cfgCopy.BaseURL,
		http:          httpClient,
		logger:        logger,
		rateLimitFunc: cfgCopy.RateLimitFunc,
		creds:         auth.NewStore[*Athlete](),
	}
	if cfgCopy.AccessToken != "" {
		c.creds.SetToken(cfgCopy.AccessToken)
	}
	return c, nil
}

// SetCredentials installs the bearer token and, when non-nil, the athlete it
// belongs to. This is the only way mutable state changes outside the OAuth
// operations.
func (c *Client) SetCredentials(token string, athlete *Athlete) {
	c.creds.SetToken(token)
	if athlete != nil {
		c.creds.SetProfile(athlete)
	}
}

// ClearCredentials removes the token and athlete; subsequent authenticated
// calls fail fast with a missing-credentials error.
func (c *Client) ClearCredentials() {
	c.creds.Clear()
}

// AccessToken returns the currently held bearer token, or "".
func (c *Client) AccessToken() string {
	return c.creds.Token()
}

// CurrentAthlete returns the athlete stored alongside the token, if any.
func (c *Client) CurrentAthlete() (*Athlete, bool) {
	return c.creds.Profile()
}

// RateLimit returns the most recent advisory rate-limit snapshot observed on
// a response, if any call has completed yet.
func (c *Client) RateLimit() (RateLimit, bool) {
	if rl := c.rateLimit.Load(); rl != nil {
		return *rl, true
	}
	return RateLimit{}, false
}

// replaceID substitutes the :id placeholder in a path template. Only exact
// path segments are replaced, so other ":id"-shaped text survives untouched.
func replaceID(path string, id any) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == ":id" {
			segments[i] = fmt.Sprint(id)
		}
	}
	return strings.Join(segments, "/")
}

// queryValues coerces a Params map into url.Values.
func queryValues(params Params) url.Values {
	values := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case string:
			values.Set(key, v)
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case int:
			values.Set(key, strconv.Itoa(v))
		case int64:
			values.Set(key, strconv.FormatInt(v, 10))
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values
}

func (c *Client) buildURL(path string) (string, error) {
	target := path
	if !strings.Contains(path, "://") {
		target = c.baseURL + path
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("build request URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("build request URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("build request URL: missing host in %q", target)
	}
	return u.String(), nil
}

// do performs one API call and returns the decoded JSON body, which is
// always either a map[string]any or a []any. Exactly one of the result and
// the error is set.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, params Params) (any, error) {
	var token string
	if authenticated {
		token = c.creds.Token()
		if token == "" {
			return nil, &Error{Kind: KindMissingCredentials, Message: "authenticated request without an access token"}
		}
	}

	target, err := c.buildURL(path)
	if err != nil {
		return nil, err
	}

	req, err := httpx.NewFormRequest(ctx, method, target, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	return c.dispatch(req, token)
}

// dispatch sends a fully built request, captures rate-limit headers and
// normalizes the outcome into (decoded JSON, error).
func (c *Client) dispatch(req *http.Request, token string) (any, error) {
	req.Header.Set("User-Agent", version.UserAgent())
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("dispatching request",
		"method", req.Method, "url", req.URL.String(), "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.captureRateLimit(resp.Header)

	if resp.StatusCode >= http.StatusBadRequest {
		fault, decodeErr := apierrors.Decode(resp)
		if decodeErr != nil {
			return nil, decodeErr
		}
		c.logger.Debug("request failed",
			"status", resp.StatusCode, "message", fault.Message, "request_id", requestID)
		return nil, errorFromFault(fault)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &Error{Kind: KindNoResponse, Message: "response carried no body", StatusCode: resp.StatusCode}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{
			Kind:       KindInvalidResponse,
			Message:    "response body is not valid JSON",
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	switch decoded.(type) {
	case map[string]any, []any:
	default:
		return nil, &Error{
			Kind:       KindInvalidResponse,
			Message:    "response body is not a JSON object or array",
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	c.logger.Debug("request completed", "status", resp.StatusCode, "request_id", requestID)
	return decoded, nil
}

func (c *Client) captureRateLimit(header http.Header) {
	limit := header.Get("X-RateLimit-Limit")
	usage := header.Get("X-RateLimit-Usage")
	if limit == "" || usage == "" {
		return
	}
	rl, ok := parseRateLimit(limit, usage)
	if !ok {
		return
	}
	c.rateLimit.Store(&rl)
	c.logger.Debug("rate limit updated",
		"usage_short", rl.UsageShort, "limit_short", rl.LimitShort,
		"usage_long", rl.UsageLong, "limit_long", rl.LimitLong)
	if c.rateLimitFunc != nil {
		c.rateLimitFunc(rl)
	}
}

// object performs a call whose response must be a single JSON object.
func (c *Client) object(ctx context.Context, method, path string, authenticated bool, params Params) (jsonmap.Map, error) {
	decoded, err := c.do(ctx, method, path, authenticated, params)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindInvalidResponse, Message: "expected a JSON object"}
	}
	return obj, nil
}

// objects performs a call whose response must be a JSON array of objects.
func (c *Client) objects(ctx context.Context, method, path string, authenticated bool, params Params) ([]jsonmap.Map, error) {
	decoded, err := c.do(ctx, method, path, authenticated, params)
	if err != nil {
		return nil, err
	}
	arr, ok := decoded.([]any)
	if !ok {
		return nil, &Error{Kind: KindInvalidResponse, Message: "expected a JSON array"}
	}
	out := make([]jsonmap.Map, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &Error{Kind: KindInvalidResponse, Message: "expected an array of JSON objects"}
		}
		out = append(out, obj)
	}
	return out, nil
}
