package model

import (
	"time"
)

// DefaultAssignee is used when a task template or update does not name an
// assignee.
const DefaultAssignee = "HR"

// Task is a single time-bound administrative task belonging to exactly one
// employee. Tasks are created in batches by lifecycle transitions; only
// status and assignee are mutable afterwards. The due instant is derived
// once from the transition's pivotal date and never recomputed.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EmployeeID uint       `gorm:"index;not null" json:"employee_id"`
	Name       string     `gorm:"size:200;not null" json:"name"`
	DueDate    time.Time  `gorm:"index;not null" json:"due_date"`
	Assignee   string     `gorm:"size:100" json:"assignee"`
	Status     TaskStatus `gorm:"index" json:"status"`
}

// TaskUpdate is a sparse field set applied to an existing task.
type TaskUpdate struct {
	Status   *TaskStatus `updates:"status"`
	Assignee *string     `updates:"assignee"`
}

// Map returns the gorm column/value map for the set fields.
func (u TaskUpdate) Map() map[string]any {
	return updateMap(u)
}

// TaskStore abstracts queries and updates on tasks.
type TaskStore interface {
	// ByEmployee returns all tasks of an employee ordered by due date
	ByEmployee(employeeID uint) ([]Task, error)
	// DueBetween returns tasks due in [start, end] (both inclusive) whose
	// status is not the excluded one
	DueBetween(start, end time.Time, excluding TaskStatus) ([]Task, error)
	// UpdateFields applies a sparse update and returns the updated task
	UpdateFields(id uint, upd TaskUpdate) (*Task, error)
}
