package declfile

import (
	"fmt"
	"strings"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
)

// Bucket is the section a dependency is declared in.
type Bucket int

const (
	Regular Bucket = iota
	CompileOnly
	RuntimeOnly
	Test
)

// Buckets lists every bucket in file order.
var Buckets = []Bucket{Regular, CompileOnly, RuntimeOnly, Test}

var bucketNames = map[Bucket]string{
	Regular:     "regular",
	CompileOnly: "compile_only",
	RuntimeOnly: "runtime_only",
	Test:        "test",
}

// String returns the lower snake case name, also used as directory name.
func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// ParseBucket accepts "regular", "compile_only", "runtime-only", "TEST" and the like.
func ParseBucket(s string) (Bucket, error) {
	norm := normalizeName(s)
	for b, name := range bucketNames {
		if name == norm {
			return b, nil
		}
	}
	return Regular, fmt.Errorf("unknown bucket %q: must be one of regular, compile_only, runtime_only, test", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Declarations holds the dependencies of a build split by bucket, the version
// pins shared by all buckets and the global exclusions.
//
// The zero value is empty and ready to use. The accessors return sets with the
// version provider and exclusions attached.
type Declarations struct {
	buckets    [4]depset.DependencySet
	provider   depset.VersionProvider
	exclusions []depset.DependencyExclusion
}

// Add appends deps to bucket b.
func (d *Declarations) Add(b Bucket, deps ...depset.Dependency) {
	d.buckets[b] = d.buckets[b].And(deps...)
}

// Pin records a version for moduleID.
func (d *Declarations) Pin(moduleID coordinate.ModuleID, v coordinate.Version) {
	d.provider = d.provider.With(moduleID, v)
}

// ImportBOM records a bill of materials import.
func (d *Declarations) ImportBOM(bom coordinate.Coordinate) {
	d.provider = d.provider.WithBOM(bom)
}

// Exclude records global exclusions.
func (d *Declarations) Exclude(exclusions ...depset.DependencyExclusion) {
	d.exclusions = append(d.exclusions, exclusions...)
}

// Bucket returns the dependencies of b with provider and exclusions attached.
func (d *Declarations) Bucket(b Bucket) depset.DependencySet {
	return d.buckets[b].WithVersionProvider(d.provider).WithGlobalExclusions(d.exclusions...)
}

// Regular returns the dependencies needed both to compile and to run.
func (d *Declarations) Regular() depset.DependencySet { return d.Bucket(Regular) }

// CompileOnly returns the dependencies needed only to compile.
func (d *Declarations) CompileOnly() depset.DependencySet { return d.Bucket(CompileOnly) }

// RuntimeOnly returns the dependencies needed only to run.
func (d *Declarations) RuntimeOnly() depset.DependencySet { return d.Bucket(RuntimeOnly) }

// Test returns the test dependencies.
func (d *Declarations) Test() depset.DependencySet { return d.Bucket(Test) }

// Compile returns regular and compile-only dependencies.
func (d *Declarations) Compile() depset.DependencySet {
	return d.Regular().AndSet(d.CompileOnly())
}

// Runtime returns regular and runtime-only dependencies.
func (d *Declarations) Runtime() depset.DependencySet {
	return d.Regular().AndSet(d.RuntimeOnly())
}

// TestSet returns the test bucket; it is [Declarations.Test] under the name used
// by the derivation functions.
func (d *Declarations) TestSet() depset.DependencySet {
	return d.Test()
}

// VersionProvider returns the version pins and BOM imports.
func (d *Declarations) VersionProvider() depset.VersionProvider {
	return d.provider
}

// GlobalExclusions returns a copy of the global exclusions.
func (d *Declarations) GlobalExclusions() []depset.DependencyExclusion {
	return append([]depset.DependencyExclusion(nil), d.exclusions...)
}

// IsEmpty returns true when nothing was declared.
func (d *Declarations) IsEmpty() bool {
	for _, s := range d.buckets {
		if !s.IsEmpty() {
			return false
		}
	}
	return d.provider.IsEmpty() && len(d.exclusions) == 0
}
