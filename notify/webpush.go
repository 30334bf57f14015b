package notify

import (
	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"

	"github.com/go-hrops/beacon/storage/model"
)

// ErrNotConfigured is returned by the Web Push sender when no VAPID key
// pair is configured. The notification engine treats it like any other
// delivery failure.
var ErrNotConfigured = errors.New("web push is not configured")

// VAPIDConfig holds the server's Web Push credentials, resolved once at
// startup and passed in explicitly.
type VAPIDConfig struct {
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
	// Subscriber is the contact address sent to the push service,
	// usually a mailto: URI.
	Subscriber string `yaml:"subscriber"`
}

// IsConfigured reports whether a usable key pair is present.
func (c VAPIDConfig) IsConfigured() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

const defaultTTLSeconds = 60

// WebPushSender delivers payloads through the Web Push protocol using VAPID
// authentication.
type WebPushSender struct {
	cfg VAPIDConfig
	ttl int
}

// NewWebPushSender creates a WebPushSender for the passed credentials.
func NewWebPushSender(cfg VAPIDConfig) *WebPushSender {
	return &WebPushSender{
		cfg: cfg,
		ttl: defaultTTLSeconds,
	}
}

// Send pushes the payload to a single subscription.
func (s *WebPushSender) Send(sub model.PushSubscription, payload []byte) error {
	if !s.cfg.IsConfigured() {
		return ErrNotConfigured
	}
	resp, err := webpush.SendNotification(
		payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				Auth:   sub.KeysAuth,
				P256dh: sub.KeysP256dh,
			},
		}, &webpush.Options{
			Subscriber:      s.cfg.Subscriber,
			VAPIDPublicKey:  s.cfg.PublicKey,
			VAPIDPrivateKey: s.cfg.PrivateKey,
			TTL:             s.ttl,
		},
	)
	if err != nil {
		return errors.Wrap(err, "web push request failed")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return errors.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
