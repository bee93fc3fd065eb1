package coordinate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDescriptor indicates a coordinate, module or exclusion description
	// that does not match any accepted shape.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrVersionConflict indicates two differing versions of the same module under
	// the fail-on-conflict strategy.
	ErrVersionConflict = errors.New("version conflict")

	// ErrUnspecifiedVersion indicates a module without a version where one is mandatory.
	ErrUnspecifiedVersion = errors.New("unspecified version")
)

// VersionConflictError reports two specified, differing versions declared for one module.
type VersionConflictError struct {
	Module ModuleID
	First  Version
	Second Version
}

func (e *VersionConflictError) Error() string {
	if e.Module.IsEmpty() {
		return fmt.Sprintf("version conflict: %s and %s", e.First, e.Second)
	}
	return fmt.Sprintf("version conflict on %s: %s and %s", e.Module, e.First, e.Second)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// UnspecifiedVersionError lists every module left without a version.
type UnspecifiedVersionError struct {
	Modules []ModuleID
}

func (e *UnspecifiedVersionError) Error() string {
	names := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		names[i] = m.String()
	}
	return fmt.Sprintf("unspecified version for module(s): %s", strings.Join(names, ", "))
}

func (e *UnspecifiedVersionError) Unwrap() error {
	return ErrUnspecifiedVersion
}
