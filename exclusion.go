package depset

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// DependencyExclusion drops a module, or one artifact variant of it, wherever it
// would be pulled in transitively.
type DependencyExclusion struct {
	moduleID    coordinate.ModuleID
	artifact    coordinate.ArtifactSpecification
	hasArtifact bool
}

// NewExclusion excludes every artifact of the module.
func NewExclusion(moduleID coordinate.ModuleID) DependencyExclusion {
	return DependencyExclusion{moduleID: moduleID}
}

// NewArtifactExclusion excludes only the given artifact specification of the module.
func NewArtifactExclusion(moduleID coordinate.ModuleID, artifact coordinate.ArtifactSpecification) DependencyExclusion {
	return DependencyExclusion{moduleID: moduleID, artifact: artifact, hasArtifact: true}
}

// ParseExclusion parses "group:name", "group:name:classifier" or "group:name:classifier:type".
func ParseExclusion(description string) (DependencyExclusion, error) {
	parts := strings.Split(strings.TrimSpace(description), ":")
	if len(parts) < 2 || len(parts) > 4 {
		return DependencyExclusion{}, fmt.Errorf("%w: exclusion %q should be group:name[:classifier[:type]]",
			ErrMalformedDescriptor, description)
	}
	moduleID, err := coordinate.NewModuleID(parts[0], parts[1])
	if err != nil {
		return DependencyExclusion{}, fmt.Errorf("exclusion %q: %w", description, err)
	}
	switch len(parts) {
	case 3:
		return NewArtifactExclusion(moduleID, coordinate.NewArtifactSpecification(parts[2], "")), nil
	case 4:
		return NewArtifactExclusion(moduleID, coordinate.NewArtifactSpecification(parts[2], parts[3])), nil
	}
	return NewExclusion(moduleID), nil
}

// MustExclusion parses an exclusion or panics. Use only for constants/tests.
func MustExclusion(description string) DependencyExclusion {
	e, err := ParseExclusion(description)
	if err != nil {
		panic(err)
	}
	return e
}

// ModuleID returns the excluded module.
func (e DependencyExclusion) ModuleID() coordinate.ModuleID {
	return e.moduleID
}

// ArtifactSpecification returns the excluded artifact and whether one was given.
func (e DependencyExclusion) ArtifactSpecification() (coordinate.ArtifactSpecification, bool) {
	return e.artifact, e.hasArtifact
}

// Matches reports whether c falls under this exclusion.
// Types compare with the "jar" default applied.
func (e DependencyExclusion) Matches(c coordinate.Coordinate) bool {
	if c.ModuleID() != e.moduleID {
		return false
	}
	if !e.hasArtifact {
		return true
	}
	a := c.ArtifactSpecification()
	return a.Classifier() == e.artifact.Classifier() && a.TypeOrDefault() == e.artifact.TypeOrDefault()
}

func (e DependencyExclusion) String() string {
	if !e.hasArtifact || e.artifact.IsMainArtifact() {
		if e.hasArtifact {
			return e.moduleID.String() + ":"
		}
		return e.moduleID.String()
	}
	return e.moduleID.String() + ":" + e.artifact.String()
}
