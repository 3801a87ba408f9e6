package domain

// ConnectionState is the readiness of the remote data service.
// Transitions are forward-only: Uninitialized -> Initializing -> Ready | Failed.
type ConnectionState int

const (
	StateUninitialized ConnectionState = iota // Initialize has not been called
	StateInitializing                         // Dependency check in flight
	StateReady                                // Handle available for queries
	StateFailed                               // Dependency check did not succeed
)

func (s ConnectionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s ConnectionState) Terminal() bool {
	return s == StateReady || s == StateFailed
}

// MarshalText renders the state by name so JSON views stay readable.
func (s ConnectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DependencyStatus is the result of the environment check performed during initialization.
type DependencyStatus int

const (
	DependencyAvailable DependencyStatus = iota
	DependencyUnavailableDisabled
	DependencyUnavailableMissing
	DependencyUnavailableOther
)

func (s DependencyStatus) String() string {
	switch s {
	case DependencyAvailable:
		return "available"
	case DependencyUnavailableDisabled:
		return "unavailable_disabled"
	case DependencyUnavailableMissing:
		return "unavailable_missing"
	default:
		return "unavailable_other"
	}
}
