package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/storage/model"
)

type subscriptionRequest struct {
	EmployeeDBID *uint `json:"employee_db_id"`
	Subscription struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			Auth   string `json:"auth"`
			P256dh string `json:"p256dh"`
		} `json:"keys"`
	} `json:"subscription"`
}

// addSubscriptionEndpoints registers subscription registration and the
// public key endpoint browsers need to subscribe.
func (b *Beacon) addSubscriptionEndpoints(r fiber.Router) {
	r.Get(
		"/webpush/public_key", func(ctx *fiber.Ctx) error {
			return ctx.JSON(fiber.Map{"publicKey": b.vapidPublicKey})
		},
	)

	r.Post(
		"/subscriptions", func(ctx *fiber.Ctx) error {
			var req subscriptionRequest
			if err := ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
			}
			sub := req.Subscription
			if sub.Endpoint == "" || sub.Keys.Auth == "" || sub.Keys.P256dh == "" {
				return model.InvalidRequestError("subscription requires endpoint, auth and p256dh")
			}
			// A bound subscription must reference an existing employee.
			if req.EmployeeDBID != nil {
				if _, err := b.storages.Employees.ByID(*req.EmployeeDBID); err != nil {
					return err
				}
			}

			record := &model.PushSubscription{
				EmployeeID: req.EmployeeDBID,
				Endpoint:   sub.Endpoint,
				KeysAuth:   sub.Keys.Auth,
				KeysP256dh: sub.Keys.P256dh,
			}
			if err := b.storages.Subscriptions.Create(record); err != nil {
				return err
			}
			return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": record.ID})
		},
	)
}
