// Package logger configures the process-wide logrus instance used by the
// networked front ends. The fov package itself never logs.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Call Init once at startup before using it.
var Log = logrus.New()

// Init applies level and format from the environment: LOG_LEVEL (debug,
// info, warn, error; default info) and LOG_FORMAT (text or json).
func Init() {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log.SetOutput(os.Stdout)
}
