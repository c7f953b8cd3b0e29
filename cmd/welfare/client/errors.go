package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecords marks an attempt whose response parsed but held no records.
var ErrNoRecords = errors.New("response contained no records")

// StatusError is a non-2xx response from the endpoint.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned error status %s", e.Status)
}

// AttemptFailure records why a single variant did not produce records.
type AttemptFailure struct {
	Variant Variant
	Err     error
}

func (f AttemptFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Variant, f.Err)
}

// Hints are shown to the user when every variant failed.
const Hints = "check your network connection and firewall, retry in a moment, or try another network"

// TransportExhaustedError is returned when no variant produced any records.
type TransportExhaustedError struct {
	Attempts []AttemptFailure
}

func (e *TransportExhaustedError) Error() string {
	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = a.String()
	}
	return fmt.Sprintf("all %d transport variants failed (%s); %s",
		len(e.Attempts), strings.Join(reasons, "; "), Hints)
}

// NoResults reports whether at least one variant reached the endpoint and got a
// well-formed but empty list, i.e. the search itself matched nothing.
func (e *TransportExhaustedError) NoResults() bool {
	for _, a := range e.Attempts {
		if errors.Is(a.Err, ErrNoRecords) {
			return true
		}
	}
	return false
}

// Unwrap exposes the per-variant errors to errors.Is and errors.As.
func (e *TransportExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}
