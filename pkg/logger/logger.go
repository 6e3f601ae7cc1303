package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON to stdout at the given level,
// falling back to info when the level string is unparseable.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
