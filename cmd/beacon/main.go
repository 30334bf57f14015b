package main

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/go-hrops/beacon"
	"github.com/go-hrops/beacon/cmd/beacon/config"
	"github.com/go-hrops/beacon/internal/cache"
	"github.com/go-hrops/beacon/internal/logger"
	"github.com/go-hrops/beacon/lifecycle"
	"github.com/go-hrops/beacon/notify"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	logger.Init(
		logger.Config{
			Level:  c.Logging.Internal.Level,
			Dir:    c.Logging.Internal.Dir,
			StdErr: c.Logging.Internal.StdErr,
		},
	)
	log.Info("Loaded Config")

	if redisAddr := c.Caching.RedisAddr; redisAddr != "" {
		if err := cache.UseRedisCache(
			&redis.Options{
				Addr:     redisAddr,
				Username: c.Caching.Username,
				Password: c.Caching.Password,
				DB:       c.Caching.RedisDB,
			},
		); err != nil {
			log.WithError(err).Fatal("could not init redis cache")
		}
		log.Info("Loaded Redis Cache")
	}

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	transitions := &lifecycle.Engine{
		Employees: backs.Employees,
		Tasks:     backs.Tasks,
		Codes:     lifecycle.UUIDCodeGenerator{},
	}
	notifier := &notify.Engine{
		Tasks:         backs.Tasks,
		Subscriptions: backs.Subscriptions,
		Sender:        notify.NewWebPushSender(c.Notify.VAPID),
	}
	if !c.Notify.VAPID.IsConfigured() {
		log.Warn("VAPID keys not configured, push delivery is disabled")
	}

	b := beacon.NewBeacon(
		c.Server,
		backs,
		transitions,
		notifier,
		c.Notify.VAPID.PublicKey,
	)

	if interval := c.Notify.ScanInterval.Duration(); interval > 0 {
		go runPeriodicScan(notifier, interval, c.Notify.DefaultHorizon.Duration())
	}

	b.Start()
}

// runPeriodicScan triggers a due-task scan every interval. Delivery failures
// are already absorbed by the engine; only storage errors surface here and
// they must not kill the scan loop.
func runPeriodicScan(notifier *notify.Engine, interval, horizon time.Duration) {
	log.WithField("interval", interval).Info("Starting periodic notification scan")
	for range time.Tick(interval) {
		summary, err := notifier.ScanAndNotify(horizon)
		if err != nil {
			log.WithError(err).Error("periodic notification scan failed")
			continue
		}
		log.WithFields(
			log.Fields{
				"matched": summary.Matched,
				"sent":    summary.Sent,
				"failed":  summary.Failed,
			},
		).Info("Periodic notification scan finished")
	}
}
