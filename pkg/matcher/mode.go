package matcher

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how a leaf's string criteria compare against snapshot fields.
// It applies uniformly to every string criterion on the leaf; handle and PID
// criteria always compare exactly.
type Mode int

const (
	// Partial requires the snapshot field to contain the criterion.
	Partial Mode = iota
	// Full requires exact equality.
	Full
	// Regex interprets the criterion as a regular expression.
	Regex
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Regex:
		return "regex"
	default:
		return "partial"
	}
}

// ParseMode reads a mode from its config spelling. The empty string maps to
// Partial so rule entries can omit the field.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "partial":
		return Partial, nil
	case "full", "exact":
		return Full, nil
	case "regex", "regexp":
		return Regex, nil
	}
	return Partial, fmt.Errorf("unknown match mode %q", s)
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
