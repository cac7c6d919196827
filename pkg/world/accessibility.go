package world

import (
	"fmt"
	"strings"
)

// Accessibility classifies how reachable a node currently is.
type Accessibility int

const (
	Unknown Accessibility = iota
	Cleared
	Available
	AvailableWithKeys
	Relevant
	RelevantWithKeys
	OutOfLogic
)

var accessibilityNames = [...]string{
	Unknown:           "unknown",
	Cleared:           "cleared",
	Available:         "available",
	AvailableWithKeys: "available_with_keys",
	Relevant:          "relevant",
	RelevantWithKeys:  "relevant_with_keys",
	OutOfLogic:        "out_of_logic",
}

func (a Accessibility) String() string {
	if a < 0 || int(a) >= len(accessibilityNames) {
		return fmt.Sprintf("Accessibility(%d)", int(a))
	}
	return accessibilityNames[a]
}

func (a Accessibility) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(accessibilityNames) {
		return nil, fmt.Errorf("unknown accessibility %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Accessibility) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, name := range accessibilityNames {
		if name == s {
			*a = Accessibility(i)
			return nil
		}
	}
	return fmt.Errorf("unknown accessibility %q", string(text))
}

// Rank orders classifications from best (0) to worst. Cleared and
// Available share a rank, as do the two relevant tiers.
func (a Accessibility) Rank() int {
	switch a {
	case Cleared, Available:
		return 0
	case AvailableWithKeys:
		return 1
	case Relevant, RelevantWithKeys:
		return 2
	case OutOfLogic:
		return 3
	default:
		return 4
	}
}

// IsAvailable reports whether the node can be done now, with or without
// assumed keys.
func (a Accessibility) IsAvailable() bool {
	return a == Available || a == AvailableWithKeys
}
