package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/go-hrops/beacon"
)

// Config holds the full server configuration.
type Config struct {
	Server  beacon.ServerConf `yaml:"server"`
	Logging loggingConf       `yaml:"logging"`
	Storage storageConf       `yaml:"storage"`
	Caching cachingConf       `yaml:"caching"`
	Notify  notifyConf        `yaml:"notify"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

// defaultConfigFiles are the paths tried when no config file is passed.
var defaultConfigFiles = []string{
	"config.yaml",
	"/etc/beacon/config.yaml",
}

// Load reads the configuration from the passed file (or the first default
// location that exists), applies defaults and validates it. Errors are
// fatal; the server cannot run without a valid configuration.
func Load(file string) {
	if file == "" {
		for _, f := range defaultConfigFiles {
			if _, err := os.Stat(f); err == nil {
				file = f
				break
			}
		}
	}
	if file == "" {
		log.Fatal("no config file found")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}

	c := Config{
		Logging: defaultLoggingConf,
		Storage: defaultStorageConf,
		Notify:  defaultNotifyConf,
	}
	if err = yaml.Unmarshal(data, &c); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = c.validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	conf = &c
}

func (c *Config) validate() error {
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.Storage.validate()
}
