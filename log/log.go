package log

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
})

func SetDebug(enabled bool) {
	if enabled {
		logger.SetLevel(charmlog.DebugLevel)
	}
}

func SetLevel(level string) error {
	l, err := charmlog.ParseLevel(level)
	if err != nil {
		return err
	}

	logger.SetLevel(l)

	return nil
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
