package stream

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/bbrard/mibody/internal/record"
)

// Parser yields decoded records from a byte source, one chunk at a time. It
// is single use: once stopped, Next keeps reporting exhaustion.
type Parser struct {
	src    io.Reader
	unit   record.Unit
	logger logrus.FieldLogger

	data   []byte
	offset int
	state  State
	reason StopReason
	err    error
}

// New returns a parser over r. Nothing is read until the first call to Next.
func New(r io.Reader, options ...Option) *Parser {
	p := &Parser{
		src:    r,
		unit:   record.Pound,
		logger: logrus.StandardLogger(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Next returns the next valid record. It returns false when the input is
// exhausted, was rejected as a whole, hit a corrupted chunk or failed to read.
func (p *Parser) Next() (*record.ScaleRecord, bool) {
	if p.state == StateUnopened {
		p.open()
	}
	if p.state == StateLengthChecked {
		p.state = StateEmitting
	}
	if p.state != StateEmitting {
		return nil, false
	}
	if p.offset >= len(p.data) {
		p.stop(ReasonExhausted)
		return nil, false
	}

	chunk := p.data[p.offset : p.offset+record.Size]
	rec := record.New(p.unit)
	if err := rec.UnmarshalBinary(chunk); err != nil {
		p.logger.WithError(err).WithField("offset", p.offset).Debug("corrupted record, stopping")
		p.stop(ReasonCorruption)
		return nil, false
	}
	if rec.Profile().HasReservedBits() {
		p.logger.WithFields(logrus.Fields{
			"offset":   p.offset,
			"reserved": fmt.Sprintf("0x%X", rec.Profile().Reserved),
		}).Debug("record has reserved profile bits set")
	}
	p.offset += record.Size
	return rec, true
}

// Collect drains the parser. The error is non-nil only when the underlying
// reader failed.
func (p *Parser) Collect() ([]*record.ScaleRecord, error) {
	var out []*record.ScaleRecord
	for {
		rec, ok := p.Next()
		if !ok {
			return out, p.err
		}
		out = append(out, rec)
	}
}

// State returns the current state of the parser.
func (p *Parser) State() State { return p.state }

// Reason returns why the parser stopped, or ReasonNone while it is running.
func (p *Parser) Reason() StopReason { return p.reason }

// Err returns the read error of the underlying source, if any.
func (p *Parser) Err() error { return p.err }

// Offset returns the number of bytes consumed by emitted records.
func (p *Parser) Offset() int { return p.offset }

func (p *Parser) open() {
	data, err := io.ReadAll(p.src)
	if err != nil {
		p.err = fmt.Errorf("read record stream: %w", err)
		p.stop(ReasonReadFailed)
		return
	}
	p.data = data
	p.state = StateLengthChecked
	if len(data)%record.Size != 0 {
		p.logger.WithField("bytes", len(data)).Debug("stream length is not a multiple of the record size, rejecting")
		p.data = nil
		p.stop(ReasonExhausted)
	}
}

func (p *Parser) stop(reason StopReason) {
	p.state = StateStopped
	p.reason = reason
	p.data = nil
}
