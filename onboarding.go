package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/lifecycle"
)

type onboardingRequest struct {
	FullName               string         `json:"full_name"`
	Furigana               string         `json:"furigana"`
	Department             string         `json:"department"`
	DateOfJoining          string         `json:"date_of_joining"`
	PreviousJobLeavingDate string         `json:"previous_job_leaving_date"`
	Address                string         `json:"address"`
	PhoneNumber            string         `json:"phone_number"`
	Salary                 string         `json:"salary"`
	Grade                  string         `json:"grade"`
	IsDoubleWork           bool           `json:"is_double_work"`
	IsDependent            bool           `json:"is_dependent"`
	ScheduledDepartment    string         `json:"scheduled_department"`
	ScheduledWorkingHours  string         `json:"scheduled_working_hours"`
	Age                    int            `json:"age"`
	CommuteMethod          string         `json:"commute_method"`
	EmploymentType         string         `json:"employment_type"`
	Extra                  map[string]any `json:"extra"`
}

// addOnboardingEndpoint registers the onboarding transition endpoint. It
// creates the employee record and its onboarding task batch in one call.
func (b *Beacon) addOnboardingEndpoint(r fiber.Router) {
	r.Post(
		"/employees/onboarding", func(ctx *fiber.Ctx) error {
			var req onboardingRequest
			if err := ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
			}
			res, err := b.transitions.Onboard(
				lifecycle.OnboardCommand{
					FullName:               req.FullName,
					Furigana:               req.Furigana,
					Department:             req.Department,
					DateOfJoining:          req.DateOfJoining,
					PreviousJobLeavingDate: req.PreviousJobLeavingDate,
					Address:                req.Address,
					PhoneNumber:            req.PhoneNumber,
					Salary:                 req.Salary,
					Grade:                  req.Grade,
					IsDoubleWork:           req.IsDoubleWork,
					IsDependent:            req.IsDependent,
					ScheduledDepartment:    req.ScheduledDepartment,
					ScheduledWorkingHours:  req.ScheduledWorkingHours,
					Age:                    req.Age,
					CommuteMethod:          req.CommuteMethod,
					EmploymentType:         req.EmploymentType,
					Extra:                  req.Extra,
				},
			)
			if err != nil {
				return err
			}
			return ctx.Status(fiber.StatusCreated).JSON(res)
		},
	)
}
