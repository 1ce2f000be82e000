package mibody

import (
	"github.com/sirupsen/logrus"

	"github.com/bbrard/mibody/internal/record"
	"github.com/bbrard/mibody/internal/stream"
)

// Options configures parsing.
type Options struct {
	// Unit is one of "lb", "kg" or "st". Anything else renders pounds.
	Unit string

	// Logger receives parser diagnostics. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

func (opts Options) streamOptions() []stream.Option {
	return []stream.Option{
		stream.WithUnit(record.Unit(opts.Unit)),
		stream.WithLogger(opts.Logger),
	}
}
