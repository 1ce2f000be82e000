package mibody

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/bbrard/mibody/internal/record"
	"github.com/bbrard/mibody/internal/stream"
)

// Result captures the outcome of a parsing session.
type Result struct {
	Records   []*record.ScaleRecord
	ByteCount int
	Reason    stream.StopReason
}

// String renders one tab-separated line per record.
func (r Result) String() string {
	lines := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n")
}

// Truncated reports whether parsing stopped on a corrupted record.
func (r Result) Truncated() bool {
	return r.Reason == stream.ReasonCorruption
}

// ParseReader decodes every record from src. Malformed device data never
// produces an error; only read failures and context cancellation do.
func ParseReader(ctx context.Context, src io.Reader, opts Options) (Result, error) {
	counter := &countingReader{r: src}
	p := stream.New(counter, opts.streamOptions()...)

	var result Result
	for {
		if err := ctx.Err(); err != nil {
			result.ByteCount = counter.n
			return result, err
		}
		rec, ok := p.Next()
		if !ok {
			break
		}
		result.Records = append(result.Records, rec)
	}
	result.ByteCount = counter.n
	result.Reason = p.Reason()
	return result, p.Err()
}

// ParseHex decodes records from a hex dump.
func ParseHex(ctx context.Context, raw string, opts Options) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return ParseReader(ctx, bytes.NewReader(data), opts)
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex input must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
