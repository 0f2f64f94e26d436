package consumer

import "fmt"

// State is a consumer loop lifecycle state.
type State int32

const (
	StateConnecting State = iota
	StateIdle
	StateBlocked
	StateDecoding
	StateDispatching
	StateRecording
	StateTerminated
)

var stateNames = [...]string{
	StateConnecting:  "connecting",
	StateIdle:        "idle",
	StateBlocked:     "blocked",
	StateDecoding:    "decoding",
	StateDispatching: "dispatching",
	StateRecording:   "recording",
	StateTerminated:  "terminated",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText renders the state name, used by the status surface.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown consumer state %q", text)
}
