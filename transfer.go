package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/lifecycle"
)

type transferRequest struct {
	EmployeeDBID           uint   `json:"employee_db_id"`
	EmployeeCode           string `json:"employee_code"`
	TransferDate           string `json:"transfer_date"`
	DestinationDepartment  string `json:"transfer_destination_department"`
	IsWorkingHoursChanged  bool   `json:"is_working_hours_changed"`
	IsCommuteMethodChanged bool   `json:"is_commute_method_changed"`
}

// addTransferEndpoint registers the transfer transition endpoint.
func (b *Beacon) addTransferEndpoint(r fiber.Router) {
	r.Post(
		"/employees/transfer", func(ctx *fiber.Ctx) error {
			var req transferRequest
			if err := ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
			}
			res, err := b.transitions.Transfer(
				lifecycle.TransferCommand{
					Ref: lifecycle.EmployeeRef{
						ID:   req.EmployeeDBID,
						Code: req.EmployeeCode,
					},
					TransferDate:           req.TransferDate,
					DestinationDepartment:  req.DestinationDepartment,
					IsWorkingHoursChanged:  req.IsWorkingHoursChanged,
					IsCommuteMethodChanged: req.IsCommuteMethodChanged,
				},
			)
			if err != nil {
				return err
			}
			return ctx.JSON(res)
		},
	)
}
