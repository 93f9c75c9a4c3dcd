package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoggingLevel(t *testing.T) {
	for name, want := range map[string]logrus.Level{
		"panic": logrus.PanicLevel,
		"fatal": logrus.FatalLevel,
		"error": logrus.ErrorLevel,
		"warn":  logrus.WarnLevel,
		"info":  logrus.InfoLevel,
		"debug": logrus.DebugLevel,
		"DEBUG": logrus.DebugLevel,
	} {
		level, err := ParseLoggingLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, level, name)
	}
}

func TestParseLoggingLevelRejectsUnknown(t *testing.T) {
	_, err := ParseLoggingLevel("verbose")
	assert.ErrorContains(t, err, "invalid logging level")
}
