package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Size is the length of one encoded scale record.
const Size = 24

const (
	minUser         = 1
	maxUser         = 12
	minFitnessLevel = 1
	maxFitnessLevel = 3
	baseYear        = 2000
	dateTimeFormat  = "2006-01-02 15:04:05"
)

var (
	ErrLength       = errors.New("record length mismatch")
	ErrUser         = errors.New("user out of range")
	ErrFitnessLevel = errors.New("fitness level out of range")
	ErrPadding      = errors.New("padding byte is not zero")
	ErrDate         = errors.New("invalid record timestamp")
)

// ScaleRecord is one measurement snapshot as stored by the scale. Scaled
// fields keep the raw device integers (tenths); Weight is always in tenths of
// a pound, Unit only affects rendering.
type ScaleRecord struct {
	Unit         Unit
	User         int
	Height       int
	Age          int
	Gender       Gender
	FitnessLevel int
	Weight       int
	BMI          int
	Fat          int
	Water        int
	Muscle       int
	VisceralFat  int
	BMR          int
	DateTime     time.Time

	profile Profile
}

// New returns a record in its default state. Unknown units fall back to pounds.
func New(unit Unit) *ScaleRecord {
	return &ScaleRecord{
		Unit:     ParseUnit(string(unit)),
		Gender:   Male,
		DateTime: time.Date(baseYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Decode populates the record from buf and reports whether buf was a valid
// record. The record is left untouched on failure.
func (r *ScaleRecord) Decode(buf []byte) bool {
	return r.UnmarshalBinary(buf) == nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with the same
// all-or-nothing semantics as Decode.
func (r *ScaleRecord) UnmarshalBinary(buf []byte) error {
	if len(buf) != Size {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrLength, Size, len(buf))
	}
	user := int(buf[0])
	if user < minUser || user > maxUser {
		return fmt.Errorf("%w: %d", ErrUser, user)
	}
	profile := decodeProfile(buf[3])
	if profile.FitnessLevel < minFitnessLevel || profile.FitnessLevel > maxFitnessLevel {
		return fmt.Errorf("%w: %d", ErrFitnessLevel, profile.FitnessLevel)
	}
	if buf[15] != 0 {
		return fmt.Errorf("%w: 0x%02X", ErrPadding, buf[15])
	}
	ts, err := decodeDateTime(buf[18:24])
	if err != nil {
		return err
	}

	*r = ScaleRecord{
		Unit:         r.Unit,
		User:         user,
		Height:       int(buf[1]),
		Age:          int(buf[2]),
		Gender:       profile.Gender,
		FitnessLevel: profile.FitnessLevel,
		Weight:       int(binary.LittleEndian.Uint16(buf[4:6])),
		BMI:          int(binary.LittleEndian.Uint16(buf[6:8])),
		Fat:          int(binary.LittleEndian.Uint16(buf[8:10])),
		Water:        int(binary.LittleEndian.Uint16(buf[10:12])),
		Muscle:       int(binary.LittleEndian.Uint16(buf[12:14])),
		VisceralFat:  int(buf[14]),
		BMR:          int(binary.LittleEndian.Uint16(buf[16:18])),
		DateTime:     ts,
		profile:      profile,
	}
	return nil
}

// Profile returns the decoded packed byte, including its reserved bits.
func (r *ScaleRecord) Profile() Profile {
	return r.profile
}

// DisplayWeight returns the weight converted to the record's display unit.
func (r *ScaleRecord) DisplayWeight() float64 {
	lb := tenths(r.Weight)
	switch r.Unit {
	case Kilogram:
		return PoundsToKilograms(lb)
	case Stone:
		return PoundsToStones(lb)
	default:
		return lb
	}
}

// String renders the record as a single tab-separated line.
func (r *ScaleRecord) String() string {
	return fmt.Sprintf("%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%d\t%d\t%d\t%s\t%d\t%d",
		r.DateTime.Format(dateTimeFormat),
		r.User,
		r.DisplayWeight(),
		tenths(r.BMI),
		tenths(r.Fat),
		tenths(r.Water),
		tenths(r.Muscle),
		r.VisceralFat,
		r.BMR,
		r.FitnessLevel,
		r.Gender,
		r.Height,
		r.Age,
	)
}

func tenths(v int) float64 {
	return float64(v) / 10
}
