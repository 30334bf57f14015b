package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/storage/model"
)

type taskUpdateRequest struct {
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
}

// addTaskEndpoints registers the task update endpoint. Only status and
// assignee are mutable; tasks are never created through this surface.
func (b *Beacon) addTaskEndpoints(r fiber.Router) {
	r.Patch(
		"/tasks/:id", func(ctx *fiber.Ctx) error {
			id, err := parseID(ctx, "id")
			if err != nil {
				return err
			}
			var req taskUpdateRequest
			if err = ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
			}

			upd := model.TaskUpdate{Assignee: req.Assignee}
			if req.Status != nil {
				status, err := model.ParseTaskStatus(*req.Status)
				if err != nil {
					return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest(err.Error()))
				}
				upd.Status = &status
			}

			task, err := b.storages.Tasks.UpdateFields(id, upd)
			if err != nil {
				return err
			}
			return ctx.JSON(task)
		},
	)
}
