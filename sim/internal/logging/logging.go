// Package logging holds the logger plumbing shared by the simulator packages.
// Components receive a logrus.FieldLogger explicitly; a nil logger discards output.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard returns a logger that drops every entry.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// Component tags l with the component name used in every entry.
func Component(l logrus.FieldLogger, name string) logrus.FieldLogger {
	return OrDiscard(l).WithField("component", name)
}
