package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/lifecycle"
)

type offboardingRequest struct {
	EmployeeDBID              uint   `json:"employee_db_id"`
	EmployeeCode              string `json:"employee_code"`
	DateOfLeaving             string `json:"date_of_leaving"`
	LastWorkingDay            string `json:"last_working_day"`
	IsResignationSubmitted    bool   `json:"is_resignation_submitted"`
	HandoverStatus            string `json:"handover_status"`
	IsCompanyPropertyReturned bool   `json:"is_company_property_returned"`
	IsSeverancePay            bool   `json:"is_severance_pay"`
}

// addOffboardingEndpoint registers the offboarding transition endpoint.
func (b *Beacon) addOffboardingEndpoint(r fiber.Router) {
	r.Post(
		"/employees/offboarding", func(ctx *fiber.Ctx) error {
			var req offboardingRequest
			if err := ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
			}
			res, err := b.transitions.Offboard(
				lifecycle.OffboardCommand{
					Ref: lifecycle.EmployeeRef{
						ID:   req.EmployeeDBID,
						Code: req.EmployeeCode,
					},
					DateOfLeaving:             req.DateOfLeaving,
					LastWorkingDay:            req.LastWorkingDay,
					IsResignationSubmitted:    req.IsResignationSubmitted,
					HandoverStatus:            req.HandoverStatus,
					IsCompanyPropertyReturned: req.IsCompanyPropertyReturned,
					IsSeverancePay:            req.IsSeverancePay,
				},
			)
			if err != nil {
				return err
			}
			return ctx.JSON(res)
		},
	)
}
