// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	DefaultLevel = "warn"
)

// Configure sets level, formatter and output of the standard logger. The CLI
// keeps stdout for command output, so out is usually stderr.
func Configure(level, format string, out io.Writer) error {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.DisableColors = !IsTerminal(out)
		logrus.SetFormatter(formatter)
	case FormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %s", format)
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(out)
	return nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
