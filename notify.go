package beacon

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type notifyRequest struct {
	Hours int `json:"hours"`
}

// DefaultHorizonHours is the scan horizon used when the request does not
// specify one.
const DefaultHorizonHours = 24

// addNotifyEndpoint registers the scan trigger. It runs one notification
// scan over the passed horizon and reports how many tasks matched and how
// many notifications went out.
func (b *Beacon) addNotifyEndpoint(r fiber.Router) {
	r.Post(
		"/notify/upcoming", func(ctx *fiber.Ctx) error {
			req := notifyRequest{Hours: DefaultHorizonHours}
			// An empty body means the default horizon.
			if len(ctx.Body()) > 0 {
				if err := ctx.BodyParser(&req); err != nil {
					return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
				}
				if req.Hours <= 0 {
					req.Hours = DefaultHorizonHours
				}
			}

			summary, err := b.notifier.ScanAndNotify(time.Duration(req.Hours) * time.Hour)
			if err != nil {
				return err
			}
			log.WithField("matched", summary.Matched).
				WithField("sent", summary.Sent).
				WithField("failed", summary.Failed).
				Info("notification scan finished")
			return ctx.JSON(
				fiber.Map{
					"tasks":              summary.Matched,
					"notifications_sent": summary.Sent,
				},
			)
		},
	)
}
