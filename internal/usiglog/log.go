// Package usiglog provides the structured logging used by usigctl and
// any other diagnostic tooling built around the usig packages. The
// core signing and verification path does no logging of its own; this
// package exists purely for the ambient CLI/operator surface.
package usiglog

import "github.com/sirupsen/logrus"

// Logger is a named logrus entry, one per subsystem (e.g. "usigctl").
type Logger = *logrus.Entry

// New returns a Logger tagged with component.
func New(component string) Logger {
	return logrus.WithField("component", component)
}
