package stream

// State denotes the position of a Parser in its lifecycle.
type State int

const (
	// StateUnopened is active until the first call to Next
	StateUnopened State = iota

	// StateLengthChecked is active once the input has been read and its length accepted
	StateLengthChecked

	// StateEmitting is active while records are being handed out
	StateEmitting

	// StateStopped is terminal
	StateStopped
)

var stateNames = [...]string{"Unopened", "LengthChecked", "Emitting", "Stopped"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// StopReason explains why a Parser reached StateStopped.
type StopReason int

const (
	ReasonNone StopReason = iota

	// ReasonExhausted covers both a fully consumed stream and one rejected
	// because its length is not a multiple of the record size.
	ReasonExhausted

	// ReasonCorruption means a chunk failed to decode.
	ReasonCorruption

	// ReasonReadFailed means the source returned an error, see Parser.Err.
	ReasonReadFailed
)

var reasonNames = [...]string{"none", "exhausted", "corruption", "read failed"}

func (r StopReason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}
