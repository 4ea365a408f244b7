package session

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Failure kinds. Match them with errors.Is; use errors.As with
// *RequestError for the status and server text.
var (
	// ErrUnauthenticated: no token was stored when one was required.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrServerRejected: non-2xx status with a JSON body.
	ErrServerRejected = errors.New("server rejected request")
	// ErrMalformedResponse: a body that is not JSON where JSON was expected.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNetworkFailure: no complete response was received.
	ErrNetworkFailure = errors.New("network failure")
)

// RequestError is the single error type returned for a failed call.
//
// Status is 0 when no response was received. ServerMessage carries the
// "error" (or "message") field of a JSON error body; RawText carries a body
// that could not be parsed.
type RequestError struct {
	Kind          error
	Status        int
	ServerMessage string
	RawText       string
	Cause         error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case ErrUnauthenticated:
		return "unauthenticated: no session token"
	case ErrServerRejected:
		msg := e.ServerMessage
		if msg == "" {
			msg = http.StatusText(e.Status)
		}
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, msg)
	case ErrMalformedResponse:
		if e.Status == 0 {
			return fmt.Sprintf("malformed response: %s", truncate(e.RawText, 120))
		}
		return fmt.Sprintf("malformed response (%d): %s", e.Status, truncate(e.RawText, 120))
	case ErrNetworkFailure:
		if e.Cause != nil {
			return fmt.Sprintf("network failure: %v", e.Cause)
		}
		return "network failure"
	default:
		return fmt.Sprintf("request failed: %v", e.Kind)
	}
}

func (e *RequestError) Is(target error) bool {
	return target == e.Kind
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// IsUnauthenticated reports whether err means the session is gone: either
// no token was stored, or the server answered 401.
func IsUnauthenticated(err error) bool {
	var re *RequestError
	if !errors.As(err, &re) {
		return false
	}
	return re.Kind == ErrUnauthenticated || re.Status == http.StatusUnauthorized
}

// truncate keeps at most n bytes of s without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
