package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logger from the log section, writing to out (stdout
// when nil). An unknown level falls back to info.
func (l Log) NewLogger(out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}
	logger := logrus.New()
	logger.SetOutput(out)
	if l.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		logger.WithError(err).
			WithFields(logrus.Fields{"level": l.Level, "default": "info"}).
			Info("using default log level")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.WithFields(logrus.Fields{
		"json":  l.JSON,
		"level": level.String(),
	}).Debug("log configured")
	return logger
}
