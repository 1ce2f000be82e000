package record

import (
	"fmt"
	"time"
)

// decodeDateTime decodes the six timestamp bytes (year offset, month, day,
// hour, minute, second). time.Date normalises out-of-range values, so the
// result is compared back against the raw fields to catch dates like 02-30.
func decodeDateTime(b []byte) (time.Time, error) {
	if len(b) != 6 {
		return time.Time{}, fmt.Errorf("%w: timestamp requires 6 bytes, got %d", ErrDate, len(b))
	}
	year := baseYear + int(b[0])
	month := int(b[1])
	day := int(b[2])
	hour := int(b[3])
	minute := int(b[4])
	second := int(b[5])
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %02X%02X%02X%02X%02X%02X", ErrDate, b[0], b[1], b[2], b[3], b[4], b[5])
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if ts.Day() != day || int(ts.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrDate, day, year, month)
	}
	return ts, nil
}
