package recall

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Phase represents where a card sits in its review lifecycle.
type Phase int

const (
	New      Phase = iota + 1 // Admitted, never rated.
	Active                    // Rated at least once, last rating was a success.
	Relapsed                  // Last rating was Again.
)

var (
	phaseNames  = [...]string{New: "New", Active: "Active", Relapsed: "Relapsed"}
	phaseByName = map[string]Phase{
		"New":      New,
		"Active":   Active,
		"Relapsed": Relapsed,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Phase(0)
	_ json.Marshaler           = Phase(0)
	_ json.Unmarshaler         = (*Phase)(nil)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
)

func (p Phase) isValid() bool {
	return p >= New && p <= Relapsed
}

// String returns the name of the phase ("New", "Active", "Relapsed").
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.isValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.isValid() {
		return nil, fmt.Errorf("recall: invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("recall: invalid phase: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Phase serializes as a JSON string.
func (p Phase) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("recall: invalid phase: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}
