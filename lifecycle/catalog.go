package lifecycle

import (
	"time"

	"tideland.dev/go/slices"

	"github.com/go-hrops/beacon/storage/model"
)

// TransitionKind identifies one of the three lifecycle transitions.
type TransitionKind int

// Constants for TransitionKind
const (
	KindOnboarding TransitionKind = iota
	KindOffboarding
	KindTransfer
)

// String returns the canonical string representation for the kind.
func (k TransitionKind) String() string {
	switch k {
	case KindOnboarding:
		return "onboarding"
	case KindOffboarding:
		return "offboarding"
	case KindTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Assignee role names used in the task catalog.
const (
	AssigneeHR             = "HR"
	AssigneeIT             = "IT"
	AssigneeGeneralAffairs = "General Affairs"
	AssigneeAccounting     = "Accounting"
	AssigneeDestination    = "Destination Department"
)

const day = 24 * time.Hour

// TaskTemplate describes one checklist entry of a transition: a name, the
// responsible role and the due instant derived from the pivotal date.
type TaskTemplate struct {
	Name     string
	Assignee string
	Due      time.Time
}

// Templates returns the ordered task templates for a transition kind
// anchored at the passed pivotal date. The function is pure: the same kind
// and pivot always yield the same sequence, and the returned order is the
// order in which tasks are persisted.
func Templates(kind TransitionKind, pivot time.Time) []TaskTemplate {
	switch kind {
	case KindOnboarding:
		return []TaskTemplate{
			{Name: "Draft employment contract", Assignee: AssigneeHR, Due: pivot.Add(-7 * day)},
			{Name: "Social insurance enrollment", Assignee: AssigneeHR, Due: pivot.Add(-3 * day)},
			{Name: "Provision system accounts", Assignee: AssigneeIT, Due: pivot.Add(-3 * day)},
			{Name: "Prepare equipment", Assignee: AssigneeGeneralAffairs, Due: pivot.Add(-5 * day)},
		}
	case KindOffboarding:
		return []TaskTemplate{
			{Name: "Social insurance de-registration", Assignee: AssigneeHR, Due: pivot.Add(-2 * day)},
			{Name: "Issue leaving certificate", Assignee: AssigneeHR, Due: pivot.Add(-1 * day)},
			{Name: "Collect company equipment", Assignee: AssigneeGeneralAffairs, Due: pivot.Add(-1 * day)},
			{Name: "Calculate final pay", Assignee: AssigneeAccounting, Due: pivot.Add(-1 * day)},
		}
	case KindTransfer:
		return []TaskTemplate{
			{Name: "Handover to destination department", Assignee: AssigneeDestination, Due: pivot},
			{Name: "Change system access permissions", Assignee: AssigneeIT, Due: pivot.Add(1 * day)},
			{Name: "Reissue business cards", Assignee: AssigneeGeneralAffairs, Due: pivot.Add(2 * day)},
			{Name: "Relocate seat", Assignee: AssigneeGeneralAffairs, Due: pivot},
		}
	default:
		return nil
	}
}

// taskBatch converts templates into task rows ready for persistence. All
// tasks start out open; the employee id is assigned by the store within the
// transition's transaction.
func taskBatch(templates []TaskTemplate) []model.Task {
	return slices.Map(
		templates, func(t TaskTemplate) model.Task {
			assignee := t.Assignee
			if assignee == "" {
				assignee = model.DefaultAssignee
			}
			return model.Task{
				Name:     t.Name,
				DueDate:  t.Due,
				Assignee: assignee,
				Status:   model.TaskStatusOpen,
			}
		},
	)
}
