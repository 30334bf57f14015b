package beacon

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-hrops/beacon/internal/cache"
	"github.com/go-hrops/beacon/storage/model"
)

// addEmployeeEndpoints registers the read-only employee endpoints.
func (b *Beacon) addEmployeeEndpoints(r fiber.Router) {
	r.Get(
		"/employees", func(ctx *fiber.Ctx) error {
			employees, err := b.storages.Employees.List()
			if err != nil {
				return err
			}
			return ctx.JSON(employees)
		},
	)

	r.Get(
		"/employees/:id", func(ctx *fiber.Ctx) error {
			id, err := parseID(ctx, "id")
			if err != nil {
				return err
			}

			cacheKey := cache.Key("employee", ctx.Params("id"))
			var cached model.Employee
			set, err := cache.Get(cacheKey, &cached)
			if err != nil {
				log.WithError(err).Error("employee cache lookup failed")
			}
			if set {
				return ctx.JSON(cached)
			}

			employee, err := b.storages.Employees.ByID(id)
			if err != nil {
				return err
			}
			if err = cache.Set(cacheKey, employee, employeeCachePeriod); err != nil {
				log.WithError(err).Error("employee cache store failed")
			}
			return ctx.JSON(employee)
		},
	)

	r.Get(
		"/employees/:id/tasks", func(ctx *fiber.Ctx) error {
			id, err := parseID(ctx, "id")
			if err != nil {
				return err
			}
			// 404 for unknown employees, not an empty list
			if _, err = b.storages.Employees.ByID(id); err != nil {
				return err
			}
			tasks, err := b.storages.Tasks.ByEmployee(id)
			if err != nil {
				return err
			}
			return ctx.JSON(tasks)
		},
	)
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *fiber.Ctx, name string) (uint, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, model.InvalidRequestError("invalid id '" + raw + "'")
	}
	return uint(id), nil
}
