package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide logger. It is usable before InitLogger runs
// so that configuration loading can report problems.
var Logger = logrus.New()

// InitLogger configures the shared logger from the given level and format.
func InitLogger(level, format string) {
	Logger.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.Warnf("unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}
