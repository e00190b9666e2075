package core

import "fmt"

// SystemCompatibilityError reports that a collector declined to run
// because the target system does not match the collector's declared
// support (SKU, platform, or OS family). It is always handled as a
// NotRan result, never as an execution failure.
type SystemCompatibilityError struct {
	Collector string
	Reason    string
}

func (e *SystemCompatibilityError) Error() string {
	return fmt.Sprintf("%s is not compatible with this system: %s", e.Collector, e.Reason)
}

// NewSystemCompatibilityError builds a SystemCompatibilityError for the
// named collector.
func NewSystemCompatibilityError(collector, reason string) error {
	return &SystemCompatibilityError{Collector: collector, Reason: reason}
}

// ValidationError reports that a DataModel could not be constructed from
// collected data, or that an analyzer's declared argument schema was not
// satisfied. It is distinguished from a generic error so that decorators
// can report a more specific message.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid data shape for %s: %s", e.Subject, e.Reason)
}

// NewValidationError builds a ValidationError for the named subject
// (typically a DataModel type name or analyzer argument name).
func NewValidationError(subject, reason string) error {
	return &ValidationError{Subject: subject, Reason: reason}
}
