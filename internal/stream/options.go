package stream

import (
	"github.com/sirupsen/logrus"

	"github.com/bbrard/mibody/internal/record"
)

// Option configures a Parser.
type Option func(*Parser)

// WithUnit sets the display unit of every produced record
func WithUnit(unit record.Unit) Option {
	return func(p *Parser) {
		p.unit = record.ParseUnit(string(unit))
	}
}

// WithLogger sets a logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}
