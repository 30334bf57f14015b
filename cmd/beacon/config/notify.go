package config

import (
	"time"

	"github.com/zachmann/go-utils/duration"

	"github.com/go-hrops/beacon/notify"
)

// notifyConf configures the notification engine: the Web Push credentials,
// the default scan horizon and the optional in-process scan interval.
//
// YAML example:
//
//	notify:
//	  vapid:
//	    public_key: ...
//	    private_key: ...
//	    subscriber: mailto:hr@example.com
//	  default_horizon: 24h
//	  scan_interval: 1h
type notifyConf struct {
	VAPID          notify.VAPIDConfig      `yaml:"vapid"`
	DefaultHorizon duration.DurationOption `yaml:"default_horizon"`
	// ScanInterval enables the periodic in-process scan when > 0.
	ScanInterval duration.DurationOption `yaml:"scan_interval"`
}

var defaultNotifyConf = notifyConf{
	DefaultHorizon: duration.DurationOption(24 * time.Hour),
}
