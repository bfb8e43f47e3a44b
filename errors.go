package strava

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tommetge/stravakit/internal/apierrors"
)

// ErrorKind classifies SDK failures so callers can branch without parsing
// messages.
type ErrorKind int

const (
	// KindUndefined is the catch-all, also used for logical errors embedded
	// in an otherwise successful response body.
	KindUndefined ErrorKind = iota
	// KindMissingCredentials marks an authenticated call attempted with no
	// token held. The transport is never contacted.
	KindMissingCredentials
	// KindNoAccessToken marks an operation that explicitly requires a token
	// when none is configured.
	KindNoAccessToken
	// KindNoResponse marks a transport completion that carried no body.
	KindNoResponse
	// KindInvalidResponse marks a body that could not be decoded as JSON of
	// the expected shape.
	KindInvalidResponse
	// KindRecordNotFound marks a resource-specific not-found signal.
	KindRecordNotFound
	// KindRateLimitExceeded marks a throttling signal from the API.
	KindRateLimitExceeded
	// KindAccessForbidden marks an authorization failure.
	KindAccessForbidden
	// KindUnsupportedRequest marks an operation the resource does not support.
	KindUnsupportedRequest
	// KindRemoteError marks any other non-success signal; the raw status and
	// body are preserved for diagnostics.
	KindRemoteError
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing credentials"
	case KindNoAccessToken:
		return "no access token"
	case KindNoResponse:
		return "no response"
	case KindInvalidResponse:
		return "invalid response"
	case KindRecordNotFound:
		return "record not found"
	case KindRateLimitExceeded:
		return "rate limit exceeded"
	case KindAccessForbidden:
		return "access forbidden"
	case KindUnsupportedRequest:
		return "unsupported request"
	case KindRemoteError:
		return "remote error"
	}
	return "undefined error"
}

// Error is the structured failure surfaced by every operation that reaches,
// or refuses to reach, the Strava API.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("strava: %s (%s, status %d)", e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("strava: %s (%s)", e.Message, e.Kind)
}

// KindOf extracts the taxonomy kind from err. The second return is false when
// err does not wrap a *strava.Error.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUndefined, false
}

func classifyStatus(code int) ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAccessForbidden
	case http.StatusNotFound:
		return KindRecordNotFound
	case http.StatusMethodNotAllowed:
		return KindUnsupportedRequest
	case http.StatusTooManyRequests:
		return KindRateLimitExceeded
	}
	return KindRemoteError
}

func errorFromFault(fault *apierrors.Fault) *Error {
	return &Error{
		Kind:       classifyStatus(fault.StatusCode),
		Message:    fault.Message,
		StatusCode: fault.StatusCode,
		Body:       fault.Body,
	}
}
