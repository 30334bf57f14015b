package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Employee represents an employee record together with the attribute bag
// collected during onboarding, offboarding and transfer. The lifecycle core
// only interprets the status and the date fields used as pivots; everything
// else is carried as opaque payload for the HR surface.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// EmployeeCode is the external, globally unique employee identifier.
	// It is generated at onboarding and immutable afterwards.
	EmployeeCode string `gorm:"uniqueIndex;size:64;not null" json:"employee_code"`

	FullName   string         `gorm:"size:100;not null" json:"full_name"`
	Furigana   string         `gorm:"size:100" json:"furigana"`
	Department string         `gorm:"size:100" json:"department"`
	Status     EmployeeStatus `gorm:"index" json:"status"`

	// Onboarding attributes
	Address                string     `gorm:"size:255" json:"address"`
	PhoneNumber            string     `gorm:"size:50" json:"phone_number"`
	DateOfJoining          *time.Time `json:"date_of_joining"`
	PreviousJobLeavingDate *time.Time `json:"previous_job_leaving_date"`
	Salary                 string     `gorm:"size:50" json:"salary"`
	Grade                  string     `gorm:"size:50" json:"grade"`
	IsDoubleWork           bool       `json:"is_double_work"`
	IsDependent            bool       `json:"is_dependent"`
	ScheduledDepartment    string     `gorm:"size:100" json:"scheduled_department"`
	ScheduledWorkingHours  string     `gorm:"size:100" json:"scheduled_working_hours"`
	Age                    int        `json:"age"`
	CommuteMethod          string     `gorm:"size:100" json:"commute_method"`
	EmploymentType         string     `gorm:"size:100" json:"employment_type"`

	// Offboarding attributes
	LastWorkingDay            *time.Time `json:"last_working_day"`
	DateOfLeaving             *time.Time `json:"date_of_leaving"`
	IsResignationSubmitted    bool       `json:"is_resignation_submitted"`
	HandoverStatus            string     `gorm:"size:100" json:"handover_status"`
	IsCompanyPropertyReturned bool       `json:"is_company_property_returned"`
	IsSeverancePay            bool       `json:"is_severance_pay"`

	// Transfer attributes
	TransferDestinationDepartment string     `gorm:"size:100" json:"transfer_destination_department"`
	TransferDate                  *time.Time `json:"transfer_date"`
	IsWorkingHoursChanged         bool       `json:"is_working_hours_changed"`
	IsCommuteMethodChanged        bool       `json:"is_commute_method_changed"`

	// Extra holds attributes the core does not model explicitly.
	Extra datatypes.JSON `json:"extra,omitempty"`

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// EmployeeUpdate is a sparse field set applied to an existing employee.
// Nil fields are left untouched; LastWorkingDay uses sql.NullTime so the
// column can be cleared explicitly.
type EmployeeUpdate struct {
	Status                        *EmployeeStatus `updates:"status"`
	Department                    *string         `updates:"department"`
	DateOfLeaving                 *time.Time      `updates:"date_of_leaving"`
	LastWorkingDay                *sql.NullTime   `updates:"last_working_day"`
	IsResignationSubmitted        *bool           `updates:"is_resignation_submitted"`
	HandoverStatus                *string         `updates:"handover_status"`
	IsCompanyPropertyReturned     *bool           `updates:"is_company_property_returned"`
	IsSeverancePay                *bool           `updates:"is_severance_pay"`
	TransferDestinationDepartment *string         `updates:"transfer_destination_department"`
	TransferDate                  *time.Time      `updates:"transfer_date"`
	IsWorkingHoursChanged         *bool           `updates:"is_working_hours_changed"`
	IsCommuteMethodChanged        *bool           `updates:"is_commute_method_changed"`
}

// Map returns the gorm column/value map for the set fields.
func (u EmployeeUpdate) Map() map[string]any {
	return updateMap(u)
}

// EmployeeStore abstracts persistence for employees and their transition
// task batches. The *WithTasks calls must be transactional: either the
// employee write and the complete task batch are committed, or nothing is.
type EmployeeStore interface {
	// CreateWithTasks stores a new employee and its initial task batch
	CreateWithTasks(e *Employee, tasks []Task) error
	// ByID returns an employee by internal id
	ByID(id uint) (*Employee, error)
	// ByCode returns an employee by external employee code
	ByCode(code string) (*Employee, error)
	// List returns all employees, newest first
	List() ([]Employee, error)
	// ApplyWithTasks applies a sparse update and appends a task batch in
	// one transaction, returning the updated employee
	ApplyWithTasks(id uint, upd EmployeeUpdate, tasks []Task) (*Employee, error)
}
