package domain

import "time"

// OutcomeKind classifies the result of a single fetch.
type OutcomeKind string

const (
	OutcomeNotReady OutcomeKind = "not_ready" // Gate closed, no request sent
	OutcomeFaulted  OutcomeKind = "faulted"   // Transport, server or timeout error
	OutcomeMissing  OutcomeKind = "missing"   // Absent, empty or malformed record
	OutcomeFound    OutcomeKind = "found"     // Record decoded
)

// FetchOutcome is produced exactly once per fetch invocation.
type FetchOutcome struct {
	Kind OutcomeKind `json:"kind"`

	// Record holds the decoded payload when Kind == OutcomeFound.
	Record Record `json:"record"`

	// Err carries the diagnostic cause for NotReady, Faulted and Missing.
	Err error `json:"-"`

	// Seq is the request sequence number assigned when the fetch was issued.
	Seq uint64 `json:"seq"`

	// Superseded is set when a newer fetch was issued before this one completed.
	// Its display binding was discarded.
	Superseded bool `json:"superseded,omitempty"`

	// Duration measures from issue to classification.
	Duration time.Duration `json:"duration"`
}

// Found reports whether the outcome carries a record.
func (o FetchOutcome) Found() bool {
	return o.Kind == OutcomeFound
}
