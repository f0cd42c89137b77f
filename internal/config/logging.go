package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log configuration to the standard logrus logger.
// An unknown level falls back to info.
func ConfigureLogging(cfg LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil {
		logrus.WithField("log_level", cfg.Level).Warn("Unknown log level, using info")
	}
}
