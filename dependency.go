package depset

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// Dependency is one entry of a [DependencySet].
//
// The set of implementations is closed: [CoordinateDependency], [FileDependency]
// and [ComputedDependency]. Consumers switch on the concrete type.
type Dependency interface {
	String() string
	isDependency()
}

// CoordinateDependency depends on a module coordinate, with an optional transitivity hint.
type CoordinateDependency struct {
	coordinate   coordinate.Coordinate
	transitivity Transitivity
}

// NewCoordinateDependency creates a dependency on c.
func NewCoordinateDependency(c coordinate.Coordinate, t Transitivity) CoordinateDependency {
	return CoordinateDependency{coordinate: c, transitivity: t}
}

// ParseCoordinateDependency parses a coordinate description (see [coordinate.Parse]).
func ParseCoordinateDependency(description string, t Transitivity) (CoordinateDependency, error) {
	c, err := coordinate.Parse(description)
	if err != nil {
		return CoordinateDependency{}, err
	}
	return NewCoordinateDependency(c, t), nil
}

// MustCoordinateDependency parses a coordinate dependency or panics. Use only for constants/tests.
func MustCoordinateDependency(description string, t Transitivity) CoordinateDependency {
	d, err := ParseCoordinateDependency(description, t)
	if err != nil {
		panic(err)
	}
	return d
}

// Coordinate returns the requested coordinate.
func (d CoordinateDependency) Coordinate() coordinate.Coordinate {
	return d.coordinate
}

// ModuleID is a shortcut for Coordinate().ModuleID().
func (d CoordinateDependency) ModuleID() coordinate.ModuleID {
	return d.coordinate.ModuleID()
}

// Version is a shortcut for Coordinate().Version().
func (d CoordinateDependency) Version() coordinate.Version {
	return d.coordinate.Version()
}

// Transitivity returns the transitivity hint.
func (d CoordinateDependency) Transitivity() Transitivity {
	return d.transitivity
}

// WithTransitivity returns a copy with the given transitivity.
func (d CoordinateDependency) WithTransitivity(t Transitivity) CoordinateDependency {
	d.transitivity = t
	return d
}

// WithVersion returns a copy requesting version v.
func (d CoordinateDependency) WithVersion(v coordinate.Version) CoordinateDependency {
	d.coordinate = d.coordinate.WithVersion(v)
	return d
}

// String returns the coordinate, followed by the transitivity in brackets when set.
func (d CoordinateDependency) String() string {
	if d.transitivity.IsUnspecified() {
		return d.coordinate.String()
	}
	return d.coordinate.String() + " [" + d.transitivity.String() + "]"
}

func (CoordinateDependency) isDependency() {}

// FileDependency depends on local files, kept in declaration order.
type FileDependency struct {
	paths []string
}

// NewFileDependency creates a dependency on the given files.
func NewFileDependency(paths ...string) FileDependency {
	return FileDependency{paths: slices.Clone(paths)}
}

// Paths returns a copy of the file paths.
func (d FileDependency) Paths() []string {
	return slices.Clone(d.paths)
}

func (d FileDependency) String() string {
	return "files(" + strings.Join(d.paths, ", ") + ")"
}

func (FileDependency) isDependency() {}

// ComputedDependency depends on the output of another build.
type ComputedDependency struct {
	name          string
	files         []string
	ideProjectDir string
}

// NewComputedDependency creates a dependency on the files produced by the build
// named name. ideProjectDir is the IDE project location that build declares, "" if none.
func NewComputedDependency(name, ideProjectDir string, files ...string) ComputedDependency {
	return ComputedDependency{name: name, files: slices.Clone(files), ideProjectDir: ideProjectDir}
}

// Name identifies the producing build.
func (d ComputedDependency) Name() string {
	return d.name
}

// Files returns a copy of the produced files.
func (d ComputedDependency) Files() []string {
	return slices.Clone(d.files)
}

// IDEProjectDir returns the IDE project location of the producing build.
func (d ComputedDependency) IDEProjectDir() string {
	return d.ideProjectDir
}

func (d ComputedDependency) String() string {
	return "computed(" + d.name + ")"
}

func (ComputedDependency) isDependency() {}

// Equal reports whether two dependencies are structurally equal.
func Equal(a, b Dependency) bool {
	switch x := a.(type) {
	case CoordinateDependency:
		y, ok := b.(CoordinateDependency)
		return ok && x == y
	case FileDependency:
		y, ok := b.(FileDependency)
		return ok && slices.Equal(x.paths, y.paths)
	case ComputedDependency:
		y, ok := b.(ComputedDependency)
		return ok && x.name == y.name && x.ideProjectDir == y.ideProjectDir && slices.Equal(x.files, y.files)
	}
	return false
}

// SameIdentity reports whether two dependencies designate the same thing.
// Coordinate dependencies compare module and artifact specification only, so the
// same library declared at two versions or transitivities shares an identity.
// Other variants compare structurally.
func SameIdentity(a, b Dependency) bool {
	return identityOf(a) == identityOf(b)
}

// identity is a comparable key for [SameIdentity].
type identity struct {
	kind     byte
	module   coordinate.ModuleID
	artifact coordinate.ArtifactSpecification
	text     string
}

func identityOf(d Dependency) identity {
	switch x := d.(type) {
	case CoordinateDependency:
		return identity{kind: 'c', module: x.ModuleID(), artifact: x.coordinate.ArtifactSpecification()}
	case FileDependency:
		return identity{kind: 'f', text: strings.Join(x.paths, "\x00")}
	case ComputedDependency:
		return identity{kind: 'x', text: x.name + "\x00" + x.ideProjectDir + "\x00" + strings.Join(x.files, "\x00")}
	}
	return identity{}
}
