package record

// Unit denotes the display unit used when rendering the weight.
type Unit string

const (
	Pound    Unit = "lb"
	Kilogram Unit = "kg"
	Stone    Unit = "st"
)

// Conversion factors as used by the scale's own software, rounded to six
// and seven decimals respectively.
const (
	kilogramsPerPound = 0.453592
	stonesPerPound    = 0.0714286
)

// ParseUnit maps s to a known unit. Anything unrecognised, including the
// empty string, yields Pound.
func ParseUnit(s string) Unit {
	switch u := Unit(s); u {
	case Pound, Kilogram, Stone:
		return u
	default:
		return Pound
	}
}

// PoundsToKilograms converts pounds to kilograms.
func PoundsToKilograms(lb float64) float64 {
	return lb * kilogramsPerPound
}

// PoundsToStones converts pounds to stones.
func PoundsToStones(lb float64) float64 {
	return lb * stonesPerPound
}
