package depset

import (
	"fmt"
	"strings"
)

// Transitivity states how much of a dependency's own dependencies are pulled in.
// Values are ordered: Unspecified < None < Compile < Runtime.
type Transitivity int

const (
	// TransitivityUnspecified leaves the decision to the resolver.
	TransitivityUnspecified Transitivity = iota

	// TransitivityNone pulls in the artifact alone.
	TransitivityNone

	// TransitivityCompile pulls in the dependencies needed to compile against it.
	TransitivityCompile

	// TransitivityRuntime pulls in everything needed at runtime.
	TransitivityRuntime
)

var transitivityNames = [...]string{
	TransitivityUnspecified: "",
	TransitivityNone:        "none",
	TransitivityCompile:     "compile",
	TransitivityRuntime:     "runtime",
}

// String returns "none", "compile", "runtime", or "" when unspecified.
func (t Transitivity) String() string {
	if t < 0 || int(t) >= len(transitivityNames) {
		return fmt.Sprintf("Transitivity(%d)", int(t))
	}
	return transitivityNames[t]
}

// IsUnspecified returns true for [TransitivityUnspecified].
func (t Transitivity) IsUnspecified() bool {
	return t == TransitivityUnspecified
}

// ParseTransitivity parses "none", "compile" or "runtime" case-insensitively.
// An empty string gives [TransitivityUnspecified].
func ParseTransitivity(s string) (Transitivity, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for i, name := range transitivityNames {
		if name == norm {
			return Transitivity(i), nil
		}
	}
	return TransitivityUnspecified, fmt.Errorf("unknown transitivity %q: must be one of none, compile, runtime", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Transitivity) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transitivity) UnmarshalText(b []byte) error {
	parsed, err := ParseTransitivity(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaxTransitivity returns the broader of two transitivities.
func MaxTransitivity(a, b Transitivity) Transitivity {
	return max(a, b)
}
