package lifecycle

import (
	"fmt"
)

// MissingDateError signals that a transition was rejected because its
// pivotal date was absent or unparseable. Nothing is persisted when it is
// returned.
type MissingDateError string

// Error implements the error interface
func (e MissingDateError) Error() string {
	return string(e)
}

// MissingDateErrorFmt returns a MissingDateError from the passed format string and parameters
func MissingDateErrorFmt(format string, params ...any) MissingDateError {
	return MissingDateError(fmt.Sprintf(format, params...))
}
