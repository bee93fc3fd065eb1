package depset

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// DependencySet is an ordered list of dependencies with global exclusions and a
// version provider.
//
// Entries keep declaration order and may name the same module more than once
// until [DependencySet.Normalised] is applied. Global exclusions only apply to
// transitively pulled dependencies, never to the entries themselves.
// The zero value is an empty set; every operation returns a new set.
type DependencySet struct {
	entries    []Dependency
	exclusions []DependencyExclusion
	provider   VersionProvider
}

// Of creates a set holding deps in order.
func Of(deps ...Dependency) DependencySet {
	return DependencySet{entries: slices.Clone(deps)}
}

// OfCoordinates creates a set of coordinate dependencies from descriptions,
// all with unspecified transitivity.
func OfCoordinates(descriptions ...string) (DependencySet, error) {
	var s DependencySet
	for _, d := range descriptions {
		var err error
		if s, err = s.AndCoordinate(d, TransitivityUnspecified); err != nil {
			return DependencySet{}, err
		}
	}
	return s, nil
}

// MustOfCoordinates is [OfCoordinates] that panics on error. Use only for constants/tests.
func MustOfCoordinates(descriptions ...string) DependencySet {
	s, err := OfCoordinates(descriptions...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s DependencySet) clone() DependencySet {
	return DependencySet{
		entries:    slices.Clone(s.entries),
		exclusions: slices.Clone(s.exclusions),
		provider:   s.provider,
	}
}

// And returns a set with deps appended.
func (s DependencySet) And(deps ...Dependency) DependencySet {
	out := s.clone()
	out.entries = append(out.entries, deps...)
	return out
}

// AndSet appends the entries of other and unions its exclusions and version provider.
func (s DependencySet) AndSet(other DependencySet) DependencySet {
	out := s.And(other.entries...)
	out = out.WithGlobalExclusions(other.exclusions...)
	return out.WithVersionProvider(other.provider)
}

// AndCoordinate parses description and appends it as a coordinate dependency.
func (s DependencySet) AndCoordinate(description string, t Transitivity) (DependencySet, error) {
	d, err := ParseCoordinateDependency(description, t)
	if err != nil {
		return DependencySet{}, err
	}
	return s.And(d), nil
}

// AndFiles appends one file dependency on the given paths.
func (s DependencySet) AndFiles(paths ...string) DependencySet {
	return s.And(NewFileDependency(paths...))
}

// Minus returns a set without the entries structurally equal to any of deps.
func (s DependencySet) Minus(deps ...Dependency) DependencySet {
	out := s.clone()
	out.entries = lo.Reject(out.entries, func(e Dependency, _ int) bool {
		return lo.ContainsBy(deps, func(d Dependency) bool { return Equal(e, d) })
	})
	return out
}

// MinusModule returns a set without the coordinate entries of moduleID.
func (s DependencySet) MinusModule(moduleID coordinate.ModuleID) DependencySet {
	out := s.clone()
	out.entries = lo.Reject(out.entries, func(e Dependency, _ int) bool {
		cd, ok := e.(CoordinateDependency)
		return ok && cd.ModuleID() == moduleID
	})
	return out
}

// WithGlobalExclusions returns a set that also carries the given exclusions.
func (s DependencySet) WithGlobalExclusions(exclusions ...DependencyExclusion) DependencySet {
	out := s.clone()
	out.exclusions = lo.Uniq(append(out.exclusions, exclusions...))
	return out
}

// WithVersionProvider returns a set whose provider is the union of the current
// one and vp, vp winning on shared modules.
func (s DependencySet) WithVersionProvider(vp VersionProvider) DependencySet {
	out := s.clone()
	out.provider = out.provider.And(vp)
	return out
}

// WithTransitivity returns a set where every coordinate entry carries t.
func (s DependencySet) WithTransitivity(t Transitivity) DependencySet {
	out := s.clone()
	for i, e := range out.entries {
		if cd, ok := e.(CoordinateDependency); ok {
			out.entries[i] = cd.WithTransitivity(t)
		}
	}
	return out
}

// WithResolvedBOMs expands the BOMs of the version provider through resolver.
func (s DependencySet) WithResolvedBOMs(ctx context.Context, resolver BOMResolver) (DependencySet, error) {
	vp, err := s.provider.WithResolvedBOMs(ctx, resolver)
	if err != nil {
		return DependencySet{}, err
	}
	out := s.clone()
	out.provider = vp
	return out, nil
}

// Entries returns a copy of the entries in declaration order.
func (s DependencySet) Entries() []Dependency {
	return slices.Clone(s.entries)
}

// CoordinateDependencies returns the coordinate entries in declaration order.
func (s DependencySet) CoordinateDependencies() []CoordinateDependency {
	return coordinateEntries(s.entries)
}

func coordinateEntries(entries []Dependency) []CoordinateDependency {
	return lo.FilterMap(entries, func(e Dependency, _ int) (CoordinateDependency, bool) {
		cd, ok := e.(CoordinateDependency)
		return cd, ok
	})
}

// Get returns the first coordinate entry of moduleID.
func (s DependencySet) Get(moduleID coordinate.ModuleID) (CoordinateDependency, bool) {
	return lo.Find(s.CoordinateDependencies(), func(cd CoordinateDependency) bool {
		return cd.ModuleID() == moduleID
	})
}

// Contains reports whether an entry is structurally equal to dep.
func (s DependencySet) Contains(dep Dependency) bool {
	return lo.ContainsBy(s.entries, func(e Dependency) bool { return Equal(e, dep) })
}

// ContainsIdentity reports whether an entry shares dep's identity (see [SameIdentity]).
func (s DependencySet) ContainsIdentity(dep Dependency) bool {
	return lo.ContainsBy(s.entries, func(e Dependency) bool { return SameIdentity(e, dep) })
}

// GlobalExclusions returns a copy of the global exclusions.
func (s DependencySet) GlobalExclusions() []DependencyExclusion {
	return slices.Clone(s.exclusions)
}

// VersionProvider returns the version provider.
func (s DependencySet) VersionProvider() VersionProvider {
	return s.provider
}

// Len returns the number of entries.
func (s DependencySet) Len() int {
	return len(s.entries)
}

// IsEmpty returns true when the set has no entries.
func (s DependencySet) IsEmpty() bool {
	return len(s.entries) == 0
}

// IsExcluded reports whether a transitively pulled coordinate falls under a global exclusion.
func (s DependencySet) IsExcluded(c coordinate.Coordinate) bool {
	return lo.ContainsBy(s.exclusions, func(e DependencyExclusion) bool { return e.Matches(c) })
}

// Normalised resolves version conflicts and removes duplicates.
//
// Versions of each module are folded in declaration order with
// [coordinate.Coordinate.ResolveConflict]. Every coordinate entry is then rewritten
// to the winning version and entries sharing an identity collapse into the first
// one, keeping the broadest transitivity. Under [coordinate.FailOnConflict] a
// conflict returns a *coordinate.VersionConflictError and no set.
func (s DependencySet) Normalised(strategy coordinate.ConflictStrategy) (DependencySet, error) {
	winners := make(map[coordinate.ModuleID]coordinate.Coordinate)
	for _, cd := range s.CoordinateDependencies() {
		prev, ok := winners[cd.ModuleID()]
		if !ok {
			winners[cd.ModuleID()] = cd.Coordinate()
			continue
		}
		resolved, err := prev.ResolveConflict(cd.Coordinate(), strategy)
		if err != nil {
			return DependencySet{}, err
		}
		winners[cd.ModuleID()] = resolved
	}

	out := s.clone()
	out.entries = dedupeByIdentity(lo.Map(s.entries, func(e Dependency, _ int) Dependency {
		if cd, ok := e.(CoordinateDependency); ok {
			return cd.WithVersion(winners[cd.ModuleID()].Version())
		}
		return e
	}))
	return out, nil
}

// dedupeByIdentity keeps the first entry of each identity, merging transitivity
// of coordinate entries to the broadest seen.
func dedupeByIdentity(entries []Dependency) []Dependency {
	index := make(map[identity]int, len(entries))
	out := make([]Dependency, 0, len(entries))
	for _, e := range entries {
		key := identityOf(e)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, e)
			continue
		}
		if cd, ok := e.(CoordinateDependency); ok {
			kept := out[i].(CoordinateDependency)
			out[i] = kept.WithTransitivity(MaxTransitivity(kept.Transitivity(), cd.Transitivity()))
		}
	}
	return out
}

// AssertNoUnspecifiedVersion fails when a coordinate entry has no version of
// its own and none from the version provider. The returned
// *coordinate.UnspecifiedVersionError lists every such module once.
func (s DependencySet) AssertNoUnspecifiedVersion() error {
	return assertNoUnspecifiedVersion(s.entries, s.provider)
}

func assertNoUnspecifiedVersion(entries []Dependency, vp VersionProvider) error {
	var missing []coordinate.ModuleID
	for _, cd := range coordinateEntries(entries) {
		if resolveVersion(cd, vp).IsUnspecified() {
			missing = append(missing, cd.ModuleID())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &coordinate.UnspecifiedVersionError{Modules: lo.Uniq(missing)}
}

func resolveVersion(cd CoordinateDependency, vp VersionProvider) coordinate.Version {
	if v := cd.Version(); !v.IsUnspecified() {
		return v
	}
	return vp.VersionOfOrUnspecified(cd.ModuleID())
}

// ToResolvedModuleVersions fills unspecified versions from the version provider.
// Entries that already declare a version are left untouched.
func (s DependencySet) ToResolvedModuleVersions() DependencySet {
	out := s.clone()
	for i, e := range out.entries {
		if cd, ok := e.(CoordinateDependency); ok {
			out.entries[i] = cd.WithVersion(resolveVersion(cd, s.provider))
		}
	}
	return out
}

// ResolvedVersions returns the version of every coordinate module after
// provider lookup, in declaration order. The first specified version of a
// module is reported; normalise the set first for conflict-resolved versions.
func (s DependencySet) ResolvedVersions() VersionProvider {
	vp := NewVersionProvider()
	for _, cd := range s.CoordinateDependencies() {
		v := resolveVersion(cd, s.provider)
		if v.IsUnspecified() {
			continue
		}
		if _, ok := vp.VersionOf(cd.ModuleID()); !ok {
			vp = vp.With(cd.ModuleID(), v)
		}
	}
	return vp
}

func (s DependencySet) String() string {
	return "[" + strings.Join(lo.Map(s.entries, func(e Dependency, _ int) string { return e.String() }), ", ") + "]"
}
