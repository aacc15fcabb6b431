package automation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingWebhookURL indicates the client was configured without an endpoint.
	ErrMissingWebhookURL = errors.New("automation: webhook url is required")
	// ErrNoTaskID is returned when a pending response cannot be tracked.
	ErrNoTaskID = errors.New("automation: no task id to continue tracking")
	// ErrTimeout is returned when the poll budget runs out before the task
	// completes. The task may still finish in the background.
	ErrTimeout = errors.New("timed out waiting for automation response")
)

// TransportError reports an unreachable endpoint or a non-success HTTP status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("automation: %s returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("automation: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError carries an explicit error reported by the automation workflow.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
