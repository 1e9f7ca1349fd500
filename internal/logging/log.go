// Package logging wires zerolog for the whole process.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger at the given level (info when unparseable).
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}

// ShortAddr truncates a 0x-hex address for log lines: 0x1234..abcd.
func ShortAddr(hex string) string {
	if len(hex) <= 12 {
		return hex
	}
	return hex[:6] + ".." + hex[len(hex)-4:]
}
