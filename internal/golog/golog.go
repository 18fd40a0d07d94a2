/*
File    : gomixvm/internal/golog/golog.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package golog is a thin logrus wrapper used for internal-invariant
// failures and operational diagnostics (VM tracing, domain-collaborator
// lifecycle events). It is never used as a channel for lex/parse/compile
// diagnostics — those are returned values the driver prints directly, per
// the error-handling design's separation of user-facing compiler
// diagnostics from host-side operational logging.
package golog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

func std() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.InfoLevel)
	})
	return logger
}

// SetLevel adjusts verbosity; the CLI driver wires this to the --trace flag.
func SetLevel(level logrus.Level) { std().SetLevel(level) }

func Tracef(format string, args ...any) { std().Tracef(format, args...) }
func Debugf(format string, args ...any) { std().Debugf(format, args...) }
func Infof(format string, args ...any)  { std().Infof(format, args...) }
func Warnf(format string, args ...any)  { std().Warnf(format, args...) }
func Errorf(format string, args ...any) { std().Errorf(format, args...) }

// Panicf logs at Panic level then panics, reserved for genuine
// internal-invariant violations — never for user-facing
// lex/parse/compile/runtime errors, which are always returned values. No
// package in this module currently calls it.
func Panicf(format string, args ...any) { std().Panicf(format, args...) }

// WithField returns a logrus entry pre-populated with one structured
// field, for collaborators that want richer context. No package in this
// module currently calls it.
func WithField(key string, value any) *logrus.Entry { return std().WithField(key, value) }
