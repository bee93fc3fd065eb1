package coordinate

import (
	"cmp"
	"fmt"
	"strings"
)

// ModuleID identifies a module independently of its version: group and name.
type ModuleID struct {
	group string
	name  string
}

// NewModuleID creates a validated ModuleID.
// Group and name must be non-empty and may not contain ':' or whitespace.
func NewModuleID(group, name string) (ModuleID, error) {
	if err := validateModulePart("group", group); err != nil {
		return ModuleID{}, err
	}
	if err := validateModulePart("name", name); err != nil {
		return ModuleID{}, err
	}
	return ModuleID{group: group, name: name}, nil
}

// MustModuleID creates a ModuleID or panics. Use only for constants/tests.
func MustModuleID(group, name string) ModuleID {
	m, err := NewModuleID(group, name)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseModuleID parses a "group:name" description.
func ParseModuleID(s string) (ModuleID, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ModuleID{}, fmt.Errorf("%w: module id %q should be group:name", ErrMalformedDescriptor, s)
	}
	return NewModuleID(parts[0], parts[1])
}

func validateModulePart(kind, value string) error {
	if value == "" {
		return fmt.Errorf("%w: module %s cannot be empty", ErrMalformedDescriptor, kind)
	}
	if strings.ContainsAny(value, ": \t\r\n") {
		return fmt.Errorf("%w: invalid module %s %q", ErrMalformedDescriptor, kind, value)
	}
	return nil
}

// Group returns the group part (e.g., "com.google.guava").
func (m ModuleID) Group() string {
	return m.group
}

// Name returns the name part (e.g., "guava").
func (m ModuleID) Name() string {
	return m.name
}

// String returns "group:name".
func (m ModuleID) String() string {
	if m.IsEmpty() {
		return ""
	}
	return m.group + ":" + m.name
}

// IsEmpty returns true if this is a zero-value ModuleID.
func (m ModuleID) IsEmpty() bool {
	return m.group == "" && m.name == ""
}

// Compare orders module ids by group then name.
func (m ModuleID) Compare(other ModuleID) int {
	if c := cmp.Compare(m.group, other.group); c != 0 {
		return c
	}
	return cmp.Compare(m.name, other.name)
}
