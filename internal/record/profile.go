package record

// Gender as encoded in bit 0 of the profile byte. The zero value is Male,
// matching an undecoded record.
type Gender int

const (
	Male Gender = iota
	Female
)

// String returns the single-letter form used in text output.
func (g Gender) String() string {
	if g == Female {
		return "F"
	}
	return "M"
}

const (
	fitnessShift = 4
	genderMask   = 0x01
	reservedMask = 0x0E
)

// Profile is the packed byte at offset 3: the high nibble holds the fitness
// level, bit 0 the gender and bits 1-3 are reserved.
type Profile struct {
	FitnessLevel int
	Gender       Gender
	Reserved     byte
}

// HasReservedBits reports whether any reserved bit is set. The device leaves
// them at zero; a set bit hints at a format this decoder does not know.
func (p Profile) HasReservedBits() bool {
	return p.Reserved != 0
}

func decodeProfile(b byte) Profile {
	p := Profile{
		FitnessLevel: int(b >> fitnessShift),
		Gender:       Male,
		Reserved:     (b & reservedMask) >> 1,
	}
	if b&genderMask == 0 {
		p.Gender = Female
	}
	return p
}
