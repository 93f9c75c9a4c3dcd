package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug"}

// AvailableLoggingLevels lists accepted logging level names.
var AvailableLoggingLevels = strings.Join(availableLoggingLevels, ", ")

// ParseLoggingLevel maps a level name to a logrus level.
func ParseLoggingLevel(loggingLevel string) (logrus.Level, error) {
	loggingLevel = strings.ToLower(loggingLevel)
	for _, l := range availableLoggingLevels {
		if l == loggingLevel {
			return logrus.ParseLevel(loggingLevel)
		}
	}
	return logrus.InfoLevel, fmt.Errorf(
		"invalid logging level %q, expected one of: %s", loggingLevel, AvailableLoggingLevels,
	)
}
