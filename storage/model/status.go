package model

import (
	"fmt"
)

// EmployeeStatus describes the lifecycle state of an employee record,
// e.g. "active" or "terminated"
type EmployeeStatus int

// Constants for EmployeeStatus
const (
	EmployeeStatusActive EmployeeStatus = iota
	EmployeeStatusTransferred
	EmployeeStatusTerminated
)

// String returns the canonical string representation for the status.
func (s EmployeeStatus) String() string {
	switch s {
	case EmployeeStatusActive:
		return "active"
	case EmployeeStatusTransferred:
		return "transferred"
	case EmployeeStatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Valid reports whether the status is one of the defined constants.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusTransferred, EmployeeStatusTerminated:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the status as a JSON string.
func (s EmployeeStatus) MarshalJSON() ([]byte, error) {
	return []byte("\"" + s.String() + "\""), nil
}

// UnmarshalJSON decodes the status from a JSON string.
func (s *EmployeeStatus) UnmarshalJSON(b []byte) error {
	v, err := unquote(b)
	if err != nil {
		return err
	}
	ps, err := ParseEmployeeStatus(v)
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// ParseEmployeeStatus converts a string to an EmployeeStatus, returning an
// error for invalid values.
func ParseEmployeeStatus(v string) (EmployeeStatus, error) {
	switch v {
	case "active":
		return EmployeeStatusActive, nil
	case "transferred":
		return EmployeeStatusTransferred, nil
	case "terminated":
		return EmployeeStatusTerminated, nil
	}
	return 0, fmt.Errorf("invalid employee status: %s", v)
}

// TaskStatus describes the completion state of an administrative task
type TaskStatus int

// Constants for TaskStatus
const (
	TaskStatusOpen TaskStatus = iota
	TaskStatusInProgress
	TaskStatusDone
)

// String returns the canonical string representation for the status.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusOpen:
		return "open"
	case TaskStatusInProgress:
		return "in_progress"
	case TaskStatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Valid reports whether the status is one of the defined constants.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the status as a JSON string.
func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return []byte("\"" + s.String() + "\""), nil
}

// UnmarshalJSON decodes the status from a JSON string.
func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	v, err := unquote(b)
	if err != nil {
		return err
	}
	ps, err := ParseTaskStatus(v)
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// ParseTaskStatus converts a string to a TaskStatus, returning an error for
// invalid values.
func ParseTaskStatus(v string) (TaskStatus, error) {
	switch v {
	case "open":
		return TaskStatusOpen, nil
	case "in_progress":
		return TaskStatusInProgress, nil
	case "done":
		return TaskStatusDone, nil
	}
	return 0, fmt.Errorf("invalid task status: %s", v)
}

func unquote(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", fmt.Errorf("status must be a JSON string")
	}
	return string(b[1 : len(b)-1]), nil
}
