package lifecycle

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/go-hrops/beacon/storage/model"
)

// Engine applies lifecycle transitions to employee records. Every
// transition validates its pivotal date before touching storage, derives
// the transition's task batch from the catalog and commits the employee
// mutation together with the batch in one store transaction.
type Engine struct {
	Employees model.EmployeeStore
	Tasks     model.TaskStore
	Codes     CodeGenerator
}

// EmployeeRef addresses an existing employee either by internal id or by
// external employee code. The internal id takes precedence when both are
// set; the code is tried when the id is absent or does not resolve.
type EmployeeRef struct {
	ID   uint
	Code string
}

// OnboardCommand carries the attributes of a new hire. DateOfJoining is the
// pivotal date and the only required date.
type OnboardCommand struct {
	FullName               string
	Furigana               string
	Department             string
	DateOfJoining          string
	PreviousJobLeavingDate string
	Address                string
	PhoneNumber            string
	Salary                 string
	Grade                  string
	IsDoubleWork           bool
	IsDependent            bool
	ScheduledDepartment    string
	ScheduledWorkingHours  string
	Age                    int
	CommuteMethod          string
	EmploymentType         string
	Extra                  map[string]any
}

// OffboardCommand carries the attributes of a departure. DateOfLeaving is
// the pivotal date; LastWorkingDay is optional.
type OffboardCommand struct {
	Ref                       EmployeeRef
	DateOfLeaving             string
	LastWorkingDay            string
	IsResignationSubmitted    bool
	HandoverStatus            string
	IsCompanyPropertyReturned bool
	IsSeverancePay            bool
}

// TransferCommand carries the attributes of an internal transfer.
// TransferDate is the pivotal date.
type TransferCommand struct {
	Ref                    EmployeeRef
	TransferDate           string
	DestinationDepartment  string
	IsWorkingHoursChanged  bool
	IsCommuteMethodChanged bool
}

// TransitionResult is returned by every transition: the employee after the
// mutation and its complete current task list, not just the batch the
// transition added.
type TransitionResult struct {
	Employee *model.Employee `json:"employee"`
	Tasks    []model.Task    `json:"tasks"`
}

// Onboard creates a new employee record with a generated employee code and
// the onboarding task batch.
func (e *Engine) Onboard(cmd OnboardCommand) (*TransitionResult, error) {
	joinDate, err := parsePivot("date_of_joining", cmd.DateOfJoining)
	if err != nil {
		return nil, err
	}
	prevLeaving, err := parseOptionalDate(cmd.PreviousJobLeavingDate)
	if err != nil {
		return nil, err
	}

	department := cmd.Department
	if department == "" {
		department = cmd.ScheduledDepartment
	}
	emp := &model.Employee{
		EmployeeCode:           e.Codes.NewCode(),
		FullName:               cmd.FullName,
		Furigana:               cmd.Furigana,
		Department:             department,
		Status:                 model.EmployeeStatusActive,
		Address:                cmd.Address,
		PhoneNumber:            cmd.PhoneNumber,
		DateOfJoining:          &joinDate,
		PreviousJobLeavingDate: prevLeaving,
		Salary:                 cmd.Salary,
		Grade:                  cmd.Grade,
		IsDoubleWork:           cmd.IsDoubleWork,
		IsDependent:            cmd.IsDependent,
		ScheduledDepartment:    cmd.ScheduledDepartment,
		ScheduledWorkingHours:  cmd.ScheduledWorkingHours,
		Age:                    cmd.Age,
		CommuteMethod:          cmd.CommuteMethod,
		EmploymentType:         cmd.EmploymentType,
	}
	if len(cmd.Extra) > 0 {
		raw, err := json.Marshal(cmd.Extra)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode extra attributes")
		}
		emp.Extra = raw
	}

	if err = e.Employees.CreateWithTasks(emp, taskBatch(Templates(KindOnboarding, joinDate))); err != nil {
		return nil, err
	}
	return e.result(emp)
}

// Offboard marks an existing employee as terminated and creates the
// offboarding task batch.
func (e *Engine) Offboard(cmd OffboardCommand) (*TransitionResult, error) {
	emp, err := e.resolve(cmd.Ref)
	if err != nil {
		return nil, err
	}
	leavingDate, err := parsePivot("date_of_leaving", cmd.DateOfLeaving)
	if err != nil {
		return nil, err
	}
	lastWorkingDay := sql.NullTime{}
	if d, err := parseOptionalDate(cmd.LastWorkingDay); err != nil {
		return nil, err
	} else if d != nil {
		lastWorkingDay = sql.NullTime{Time: *d, Valid: true}
	}

	upd := model.EmployeeUpdate{
		Status:                    statusPtr(model.EmployeeStatusTerminated),
		DateOfLeaving:             &leavingDate,
		LastWorkingDay:            &lastWorkingDay,
		IsResignationSubmitted:    &cmd.IsResignationSubmitted,
		HandoverStatus:            &cmd.HandoverStatus,
		IsCompanyPropertyReturned: &cmd.IsCompanyPropertyReturned,
		IsSeverancePay:            &cmd.IsSeverancePay,
	}
	updated, err := e.Employees.ApplyWithTasks(emp.ID, upd, taskBatch(Templates(KindOffboarding, leavingDate)))
	if err != nil {
		return nil, err
	}
	return e.result(updated)
}

// Transfer moves an existing employee to another department and creates the
// transfer task batch.
func (e *Engine) Transfer(cmd TransferCommand) (*TransitionResult, error) {
	emp, err := e.resolve(cmd.Ref)
	if err != nil {
		return nil, err
	}
	transferDate, err := parsePivot("transfer_date", cmd.TransferDate)
	if err != nil {
		return nil, err
	}

	department := cmd.DestinationDepartment
	if department == "" {
		department = emp.Department
	}
	upd := model.EmployeeUpdate{
		Status:                        statusPtr(model.EmployeeStatusTransferred),
		Department:                    &department,
		TransferDestinationDepartment: &cmd.DestinationDepartment,
		TransferDate:                  &transferDate,
		IsWorkingHoursChanged:         &cmd.IsWorkingHoursChanged,
		IsCommuteMethodChanged:        &cmd.IsCommuteMethodChanged,
	}
	updated, err := e.Employees.ApplyWithTasks(emp.ID, upd, taskBatch(Templates(KindTransfer, transferDate)))
	if err != nil {
		return nil, err
	}
	return e.result(updated)
}

// resolve locates an employee by ref, trying the internal id first and the
// external code as fallback.
func (e *Engine) resolve(ref EmployeeRef) (*model.Employee, error) {
	if ref.ID != 0 {
		emp, err := e.Employees.ByID(ref.ID)
		if err == nil {
			return emp, nil
		}
		if _, ok := errors.Cause(err).(model.NotFoundError); !ok {
			return nil, err
		}
	}
	if ref.Code != "" {
		return e.Employees.ByCode(ref.Code)
	}
	return nil, model.NotFoundError("employee not found")
}

// result loads the employee's full task list to build the transition
// response.
func (e *Engine) result(emp *model.Employee) (*TransitionResult, error) {
	tasks, err := e.Tasks.ByEmployee(emp.ID)
	if err != nil {
		return nil, err
	}
	return &TransitionResult{Employee: emp, Tasks: tasks}, nil
}

func statusPtr(s model.EmployeeStatus) *model.EmployeeStatus {
	return &s
}
