package domain

import (
	"net/http"
	"time"
)

// PublishResult is the outcome of a best-effort, non-blocking publish.
// Callers either inspect it or call Discard to make dropping the failure explicit.
type PublishResult struct {
	Err      error
	Duration time.Duration
}

// OK reports whether the task reached the queue.
func (r PublishResult) OK() bool {
	return r.Err == nil
}

// Discard explicitly ignores the result.
func (r PublishResult) Discard() {}

// Published returns a successful result.
func Published(d time.Duration) PublishResult {
	return PublishResult{Duration: d}
}

// PublishFailed returns a failed result.
func PublishFailed(err error, d time.Duration) PublishResult {
	return PublishResult{Err: err, Duration: d}
}

// Ack is the answer a task handler returns to the queue's delivery call.
type Ack struct {
	// Status is the HTTP status reported to the queue.
	Status int
	// Delivered is true when the platform accepted the follow-up edit.
	Delivered bool
	// Duplicate is true when the task had already been completed.
	Duplicate bool
	// Err carries the suppressed or surfaced failure, for logging.
	Err error
}

// Acked returns a 200 acknowledgement.
func Acked(delivered bool, err error) Ack {
	return Ack{Status: http.StatusOK, Delivered: delivered, Err: err}
}

// Redeliver returns an acknowledgement asking the queue to retry the task.
func Redeliver(err error) Ack {
	return Ack{Status: http.StatusBadGateway, Err: err}
}
