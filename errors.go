package depset

import (
	"errors"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// Sentinel errors. The coordinate sentinels are re-exported so callers of this
// package do not need to import coordinate to test for them.
var (
	// ErrMalformedDescriptor indicates a coordinate or exclusion description that
	// does not match any accepted shape.
	ErrMalformedDescriptor = coordinate.ErrMalformedDescriptor

	// ErrVersionConflict indicates differing versions of one module under the
	// fail-on-conflict strategy.
	ErrVersionConflict = coordinate.ErrVersionConflict

	// ErrUnspecifiedVersion indicates modules left without a version where one is mandatory.
	ErrUnspecifiedVersion = coordinate.ErrUnspecifiedVersion

	// ErrBOMResolution indicates a bill of materials could not be resolved.
	ErrBOMResolution = errors.New("bom resolution failed")
)
