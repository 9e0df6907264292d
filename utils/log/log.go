package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arcadia-social/socialfeed-backend/utils/flag"
)

// global accessible logger
var (
	Shared *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	initLogger()
}

func initLogger() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.DebugLevel)

	env := os.Getenv("SOCIALFEED_ENV")
	if len(env) == 0 {
		env = "unknown"
	}
	Shared = logger.WithFields(logrus.Fields{
		"app": strings.ReplaceAll(*flag.ServiceName, "_", "-"),
		"env": env,
	})
}

func Infof(format string, args ...interface{}) {
	Shared.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	Shared.Debugf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Shared.Errorf(format, args...)
}
