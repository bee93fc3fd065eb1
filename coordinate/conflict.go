package coordinate

import (
	"fmt"
	"strings"
)

// ConflictStrategy decides which version wins when a module is declared twice.
type ConflictStrategy int

const (
	// TakeFirst keeps the version declared first.
	TakeFirst ConflictStrategy = iota

	// TakeHighest keeps the highest version.
	TakeHighest

	// TakeLowest keeps the lowest version.
	TakeLowest

	// FailOnConflict rejects two differing specified versions.
	FailOnConflict
)

var conflictStrategyNames = map[ConflictStrategy]string{
	TakeFirst:      "take-first",
	TakeHighest:    "take-highest",
	TakeLowest:     "take-lowest",
	FailOnConflict: "fail",
}

// String returns the kebab-case name of the strategy.
func (s ConflictStrategy) String() string {
	if name, ok := conflictStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ConflictStrategy(%d)", int(s))
}

// ParseConflictStrategy accepts "take-highest", "TAKE_HIGHEST", "take_highest" and the like.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for strategy, name := range conflictStrategyNames {
		if name == norm {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unknown conflict strategy %q: must be one of take-first, take-highest, take-lowest, fail", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s ConflictStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ConflictStrategy) UnmarshalText(b []byte) error {
	parsed, err := ParseConflictStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ResolveVersionConflict picks between two declared versions of one module.
//
// Checks run in this order:
//  1. an unspecified side loses to a specified one
//  2. a release always wins over a snapshot, whatever the strategy
//  3. under [FailOnConflict], differing versions are an error
//  4. [TakeFirst] keeps first, [TakeHighest]/[TakeLowest] keep the extremum
func ResolveVersionConflict(first, second Version, strategy ConflictStrategy) (Version, error) {
	return resolveVersions(ModuleID{}, first, second, strategy)
}

// ResolveConflict is [ResolveVersionConflict] with v as the first declaration.
func (v Version) ResolveConflict(other Version, strategy ConflictStrategy) (Version, error) {
	return resolveVersions(ModuleID{}, v, other, strategy)
}

func resolveVersions(module ModuleID, first, second Version, strategy ConflictStrategy) (Version, error) {
	if first.IsUnspecified() {
		return second, nil
	}
	if second.IsUnspecified() || first == second {
		return first, nil
	}

	if first.IsSnapshot() != second.IsSnapshot() {
		if first.IsSnapshot() {
			return second, nil
		}
		return first, nil
	}

	c := first.Compare(second)
	switch strategy {
	case FailOnConflict:
		if c != 0 {
			return Version{}, &VersionConflictError{Module: module, First: first, Second: second}
		}
		return first, nil
	case TakeFirst:
		return first, nil
	case TakeHighest:
		if c >= 0 {
			return first, nil
		}
		return second, nil
	case TakeLowest:
		if c <= 0 {
			return first, nil
		}
		return second, nil
	default:
		return Version{}, fmt.Errorf("unsupported conflict strategy %s", strategy)
	}
}
