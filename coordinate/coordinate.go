package coordinate

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Coordinate identifies a requested artifact: module, version and artifact specification.
type Coordinate struct {
	moduleID ModuleID
	version  Version
	artifact ArtifactSpecification
}

// NewCoordinate creates a coordinate on the main artifact.
func NewCoordinate(moduleID ModuleID, version Version) Coordinate {
	return Coordinate{moduleID: moduleID, version: version}
}

const acceptedShapes = `  group:name
  group:name:version
  group:name:classifiers:version
  group:name:classifiers:type:version
  group:name:classifiers:type:
  group:name:classifiers:`

// Parse parses a coordinate description.
//
// Fields are split on ':' and trailing empty fields are dropped. The shape is then
// decided from the separator count (1-4) and the remaining field count (2-5):
//
//	fields=2              group:name
//	fields=3 separators=2 group:name:version
//	fields=3 separators=3 group:name:classifiers:        (unspecified version)
//	fields=3 separators=4 group:name:classifiers::       (unspecified type and version)
//	fields=4 separators=3 group:name:classifiers:version
//	fields=4 separators=4 group:name:classifiers:type:   (unspecified version)
//	fields=5              group:name:classifiers:type:version
func Parse(description string) (Coordinate, error) {
	desc := strings.TrimSpace(description)
	separators := strings.Count(desc, ":")
	fields := splitTrimTrailing(desc)

	malformed := func() error {
		return fmt.Errorf("%w: dependency description %q is not correct, should be one of\n%s",
			ErrMalformedDescriptor, description, acceptedShapes)
	}

	if separators < 1 || separators > 4 || len(fields) < 2 || len(fields) > 5 {
		return Coordinate{}, malformed()
	}

	moduleID, err := NewModuleID(fields[0], fields[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w\n%s", err, malformed())
	}

	c := Coordinate{moduleID: moduleID}
	switch {
	case len(fields) == 2:
	case len(fields) == 3 && separators == 2:
		c.version = NewVersion(fields[2])
	case len(fields) == 3:
		c.artifact = NewArtifactSpecification(fields[2], "")
	case len(fields) == 4 && separators == 3:
		c.artifact = NewArtifactSpecification(fields[2], "")
		c.version = NewVersion(fields[3])
	case len(fields) == 4:
		c.artifact = NewArtifactSpecification(fields[2], fields[3])
	case len(fields) == 5:
		c.artifact = NewArtifactSpecification(fields[2], fields[3])
		c.version = NewVersion(fields[4])
	default:
		return Coordinate{}, malformed()
	}
	return c, nil
}

// MustParse parses a coordinate or panics. Use only for constants/tests.
func MustParse(description string) Coordinate {
	c, err := Parse(description)
	if err != nil {
		panic(err)
	}
	return c
}

// splitTrimTrailing splits on ':' and drops trailing empty fields.
func splitTrimTrailing(s string) []string {
	fields := strings.Split(s, ":")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// ModuleID returns the module identity.
func (c Coordinate) ModuleID() ModuleID {
	return c.moduleID
}

// Version returns the version, possibly [Unspecified].
func (c Coordinate) Version() Version {
	return c.version
}

// ArtifactSpecification returns the targeted artifact(s).
func (c Coordinate) ArtifactSpecification() ArtifactSpecification {
	return c.artifact
}

// WithVersion returns a copy with the given version.
func (c Coordinate) WithVersion(v Version) Coordinate {
	c.version = v
	return c
}

// WithClassifiers returns a copy with the given comma separated classifiers.
func (c Coordinate) WithClassifiers(classifiers string) Coordinate {
	c.artifact = NewArtifactSpecification(classifiers, c.artifact.typ)
	return c
}

// WithType returns a copy with the given artifact type.
func (c Coordinate) WithType(typ string) Coordinate {
	c.artifact = NewArtifactSpecification(c.artifact.classifier, typ)
	return c
}

// WithClassifierAndType returns a copy with both classifier list and type replaced.
func (c Coordinate) WithClassifierAndType(classifiers, typ string) Coordinate {
	c.artifact = NewArtifactSpecification(classifiers, typ)
	return c
}

// WithArtifactSpecification returns a copy targeting the given artifact specification.
func (c Coordinate) WithArtifactSpecification(a ArtifactSpecification) Coordinate {
	c.artifact = a
	return c
}

// IsEmpty returns true if this is a zero-value Coordinate.
func (c Coordinate) IsEmpty() bool {
	return c.moduleID.IsEmpty()
}

// String returns the shortest description that parses back to an equal coordinate.
// A main-artifact coordinate without version renders as "group:name".
func (c Coordinate) String() string {
	if c.IsEmpty() {
		return ""
	}
	base := c.moduleID.String()
	v := c.version.String()
	switch {
	case c.artifact.IsMainArtifact() && c.version.IsUnspecified():
		return base
	case c.artifact.IsMainArtifact():
		return base + ":" + v
	case c.artifact.typ == "":
		return base + ":" + c.artifact.classifier + ":" + v
	default:
		return base + ":" + c.artifact.classifier + ":" + c.artifact.typ + ":" + v
	}
}

// CachePath returns the slash separated location of the artifact relative to a
// repository cache root: group/name/<type>s/name-version[-classifier].type.
func (c Coordinate) CachePath() (string, error) {
	if c.version.IsUnspecified() {
		return "", fmt.Errorf("cache path of %s: %w", c.moduleID, ErrUnspecifiedVersion)
	}
	typ := c.artifact.TypeOrDefault()
	file := c.moduleID.name + "-" + c.version.raw
	if classifiers := c.artifact.Classifiers(); len(classifiers) > 0 && classifiers[0] != "" {
		file += "-" + classifiers[0]
	}
	file += "." + typ
	return path.Join(c.moduleID.group, c.moduleID.name, typ+"s", file), nil
}

// CacheFile returns [Coordinate.CachePath] joined under repoRoot using OS separators.
func (c Coordinate) CacheFile(repoRoot string) (string, error) {
	p, err := c.CachePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(repoRoot, filepath.FromSlash(p)), nil
}

// ResolveConflict reconciles c with a competing declaration of the same module
// and returns c carrying the winning version. See [ResolveVersionConflict].
func (c Coordinate) ResolveConflict(other Coordinate, strategy ConflictStrategy) (Coordinate, error) {
	v, err := resolveVersions(c.moduleID, c.version, other.version, strategy)
	if err != nil {
		return Coordinate{}, err
	}
	return c.WithVersion(v), nil
}
