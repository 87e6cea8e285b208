// Package logging bootstraps the logrus logger shared by the scoring engine.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to stdout at the given level. format "json"
// selects the JSON formatter; anything else uses the text formatter.
// An unparsable level falls back to info.
func New(level, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, format)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(out io.Writer, level, format string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	log := logrus.New()
	log.Out = out
	log.Level = lvl
	log.SetReportCaller(true)
	if format == "json" {
		log.Formatter = &logrus.JSONFormatter{}
	} else {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}
	return log
}

// Discard returns a logger that drops everything. Tests and callers that
// do not care about logs use it as a default.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
