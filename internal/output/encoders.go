package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bbrard/mibody/internal/record"
)

const timestampFormat = "2006-01-02 15:04:05"

func init() {
	Register(Text{})
	Register(JSON{})
	Register(Msgpack{})
}

// Measurement is the structured view of a record used by the json and
// msgpack formats. Scaled values are converted to their real magnitude.
type Measurement struct {
	DateTime     string  `json:"datetime" msgpack:"datetime"`
	User         int     `json:"user" msgpack:"user"`
	Unit         string  `json:"unit" msgpack:"unit"`
	Weight       float64 `json:"weight" msgpack:"weight"`
	BMI          float64 `json:"bmi" msgpack:"bmi"`
	Fat          float64 `json:"fat_pct" msgpack:"fat_pct"`
	Water        float64 `json:"water_pct" msgpack:"water_pct"`
	Muscle       float64 `json:"muscle_pct" msgpack:"muscle_pct"`
	VisceralFat  int     `json:"visceral_fat" msgpack:"visceral_fat"`
	BMR          int     `json:"bmr_kcal" msgpack:"bmr_kcal"`
	FitnessLevel int     `json:"fitness_level" msgpack:"fitness_level"`
	Gender       string  `json:"gender" msgpack:"gender"`
	Height       int     `json:"height_cm" msgpack:"height_cm"`
	Age          int     `json:"age" msgpack:"age"`
}

// NewMeasurement builds the structured view of r.
func NewMeasurement(r *record.ScaleRecord) Measurement {
	return Measurement{
		DateTime:     r.DateTime.Format(timestampFormat),
		User:         r.User,
		Unit:         string(r.Unit),
		Weight:       roundTo(r.DisplayWeight(), 1),
		BMI:          float64(r.BMI) / 10,
		Fat:          float64(r.Fat) / 10,
		Water:        float64(r.Water) / 10,
		Muscle:       float64(r.Muscle) / 10,
		VisceralFat:  r.VisceralFat,
		BMR:          r.BMR,
		FitnessLevel: r.FitnessLevel,
		Gender:       r.Gender.String(),
		Height:       r.Height,
		Age:          r.Age,
	}
}

func measurements(recs []*record.ScaleRecord) []Measurement {
	out := make([]Measurement, 0, len(recs))
	for _, r := range recs {
		out = append(out, NewMeasurement(r))
	}
	return out
}

// Text writes one tab-separated line per record.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Encode(w io.Writer, recs []*record.ScaleRecord) error {
	for _, r := range recs {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return fmt.Errorf("write text record: %w", err)
		}
	}
	return nil
}

// JSON writes an indented array of measurements.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(w io.Writer, recs []*record.ScaleRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(measurements(recs)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// Msgpack writes a MessagePack array of measurements.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(w io.Writer, recs []*record.ScaleRecord) error {
	if err := msgpack.NewEncoder(w).Encode(measurements(recs)); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}

func roundTo(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}
