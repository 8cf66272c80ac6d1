package logging

import (
	"github.com/sirupsen/logrus"
)

// New builds the shared application logger. Production gets JSON lines,
// everything else keeps the human-readable text formatter.
func New(env string) *logrus.Logger {
	logger := logrus.New()
	if env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
