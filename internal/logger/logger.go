package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Config controls where and how verbose the internal log is written.
type Config struct {
	// Level is a logrus level name, e.g. DEBUG or INFO.
	Level string
	// Dir, when set, makes the logger append to beacon.log in that
	// directory.
	Dir string
	// StdErr additionally (or, without Dir, exclusively) logs to stderr.
	StdErr bool
}

// Init configures the global logrus logger. It must be called once, after
// the configuration has been loaded.
func Init(conf Config) {
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)

	level := log.InfoLevel
	if conf.Level != "" {
		parsed, err := log.ParseLevel(conf.Level)
		if err != nil {
			log.WithError(err).Error("invalid log level, falling back to INFO")
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)

	var outputs []io.Writer
	if conf.Dir != "" {
		file, err := os.OpenFile(
			filepath.Join(conf.Dir, "beacon.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644,
		)
		if err != nil {
			log.WithError(err).Error("could not open log file, logging to stderr only")
		} else {
			outputs = append(outputs, file)
		}
	}
	if conf.StdErr || len(outputs) == 0 {
		outputs = append(outputs, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(outputs...))
}
