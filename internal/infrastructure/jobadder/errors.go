package jobadder

import (
	"errors"
	"fmt"
)

// ErrAdNotFound is returned by GetAd when the ad no longer exists upstream.
// Webhook-driven single syncs use it to drop stale events instead of
// retrying them.
var ErrAdNotFound = errors.New("job ad not found")

// AuthError signals an OAuth exchange or refresh failure. It is a hard
// failure: the caller must redo the full authorization flow.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jobadder auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("jobadder auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError is any non-2xx response from the JobAdder API that is not
// otherwise classified. The status code is carried for callers that need it.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("jobadder API error: status=%d, body=%s", e.Status, e.Body)
}
