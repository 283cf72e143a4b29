package hubstaff

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrAuthentication = errors.New("hubstaff authentication failed")
	ErrUpstream       = errors.New("hubstaff request failed")
	ErrDecode         = errors.New("hubstaff response not understood")
)

// AuthenticationError is returned when people/auth rejects the credentials
// or answers with something other than a token.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hubstaff auth: %v", e.Err)
	}
	return fmt.Sprintf("hubstaff auth error %d: %s", e.StatusCode, e.Body)
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

func (e *AuthenticationError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx answer from a data endpoint, or a request that
// never got an answer. StatusCode is zero in the latter case.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hubstaff request %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("hubstaff API error %d on %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// DecodeError means a 2xx body did not match the expected schema.
type DecodeError struct {
	Endpoint string
	Problems []string
	Err      error
}

func (e *DecodeError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("decoding %s response: %s", e.Endpoint, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
