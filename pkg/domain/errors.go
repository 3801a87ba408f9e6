package domain

import "errors"

// ErrInitializationFailed is returned when the dependency check did not report DependencyAvailable.
var ErrInitializationFailed = errors.New("service initialization failed")

// ErrNotReady is returned when a fetch is attempted before initialization completed successfully.
var ErrNotReady = errors.New("service not ready")

// ErrRecordNotFound is returned by a Database when nothing exists at the requested path.
var ErrRecordNotFound = errors.New("record not found")

// ErrMalformedPayload is returned when a record exists but is not a field mapping.
var ErrMalformedPayload = errors.New("malformed record payload")

// ErrEmptyIdentifier is returned when a fetch is requested without an identifier.
var ErrEmptyIdentifier = errors.New("empty record identifier")
