// Package beacon implements an HTTP service that tracks employee lifecycle
// transitions, derives the administrative task checklist of each transition
// and alerts subscribers about tasks that come due.
package beacon

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/go-hrops/beacon/internal/version"
	"github.com/go-hrops/beacon/lifecycle"
	"github.com/go-hrops/beacon/notify"
	"github.com/go-hrops/beacon/storage/model"
)

const employeeCachePeriod = 5 * time.Second

// Beacon is the lifecycle task server: it owns the HTTP surface and wires
// the transition engine, the notification engine and the storage backends
// together.
type Beacon struct {
	server         *fiber.App
	serverConf     ServerConf
	storages       model.Backends
	transitions    *lifecycle.Engine
	notifier       *notify.Engine
	vapidPublicKey string
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

// NewBeacon creates a new Beacon and registers all endpoints.
func NewBeacon(
	serverConf ServerConf,
	storages model.Backends,
	transitions *lifecycle.Engine,
	notifier *notify.Engine,
	vapidPublicKey string,
) *Beacon {
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = serverConf.TrustedProxies
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())

	b := &Beacon{
		server:         server,
		serverConf:     serverConf,
		storages:       storages,
		transitions:    transitions,
		notifier:       notifier,
		vapidPublicKey: vapidPublicKey,
	}

	api := server.Group("/api")
	b.addHealthEndpoint(api)
	b.addEmployeeEndpoints(api)
	b.addOnboardingEndpoint(api)
	b.addOffboardingEndpoint(api)
	b.addTransferEndpoint(api)
	b.addTaskEndpoints(api)
	b.addSubscriptionEndpoints(api)
	b.addNotifyEndpoint(api)
	return b
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all the necessary endpoints
func (b *Beacon) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(b.server)
}

// Listen starts an http server at the specific address for serving all the
// necessary endpoints
func (b *Beacon) Listen(addr string) error {
	return b.server.Listen(addr)
}

// Start runs the server according to its ServerConf, blocking forever.
func (b *Beacon) Start() {
	conf := b.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(b.server.Listen(fmt.Sprintf("%s:%d", conf.IPListen, conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(b.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}

func (b *Beacon) addHealthEndpoint(r fiber.Router) {
	r.Get(
		"/health", func(ctx *fiber.Ctx) error {
			return ctx.JSON(fiber.Map{"ok": true, "version": version.VERSION})
		},
	)
}
