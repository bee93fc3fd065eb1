package depset

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// QualifiedDependency is a dependency labelled with a qualifier: an IDE or POM
// scope, or an Ivy "source -> target" configuration string. "" means no qualifier.
type QualifiedDependency struct {
	Qualifier  string
	Dependency Dependency
}

func (q QualifiedDependency) String() string {
	if q.Qualifier == "" {
		return q.Dependency.String()
	}
	return q.Dependency.String() + " (" + q.Qualifier + ")"
}

// QualifiedDependencySet is a [DependencySet] whose entries carry qualifiers.
// It is normally produced by the derivation functions rather than built by hand.
type QualifiedDependencySet struct {
	entries    []QualifiedDependency
	exclusions []DependencyExclusion
	provider   VersionProvider
}

// OfSet lifts s into a qualified set with empty qualifiers.
func OfSet(s DependencySet) QualifiedDependencySet {
	return QualifiedDependencySet{
		entries: lo.Map(s.entries, func(d Dependency, _ int) QualifiedDependency {
			return QualifiedDependency{Dependency: d}
		}),
		exclusions: slices.Clone(s.exclusions),
		provider:   s.provider,
	}
}

// NewQualifiedDependencySet creates a qualified set from its parts.
func NewQualifiedDependencySet(entries []QualifiedDependency, exclusions []DependencyExclusion, provider VersionProvider) QualifiedDependencySet {
	return QualifiedDependencySet{
		entries:    slices.Clone(entries),
		exclusions: lo.Uniq(exclusions),
		provider:   provider,
	}
}

func (q QualifiedDependencySet) clone() QualifiedDependencySet {
	return QualifiedDependencySet{
		entries:    slices.Clone(q.entries),
		exclusions: slices.Clone(q.exclusions),
		provider:   q.provider,
	}
}

func (q QualifiedDependencySet) withEntries(entries []QualifiedDependency) QualifiedDependencySet {
	out := q.clone()
	out.entries = entries
	return out
}

// And returns a set with dep appended under qualifier.
func (q QualifiedDependencySet) And(qualifier string, dep Dependency) QualifiedDependencySet {
	out := q.clone()
	out.entries = append(out.entries, QualifiedDependency{Qualifier: qualifier, Dependency: dep})
	return out
}

// Entries returns a copy of the entries.
func (q QualifiedDependencySet) Entries() []QualifiedDependency {
	return slices.Clone(q.entries)
}

// Dependencies returns the dependencies without their qualifiers.
func (q QualifiedDependencySet) Dependencies() []Dependency {
	return lo.Map(q.entries, func(qd QualifiedDependency, _ int) Dependency { return qd.Dependency })
}

// Qualifiers returns the distinct non-empty qualifiers in order of appearance.
func (q QualifiedDependencySet) Qualifiers() []string {
	return lo.Uniq(lo.FilterMap(q.entries, func(qd QualifiedDependency, _ int) (string, bool) {
		return qd.Qualifier, qd.Qualifier != ""
	}))
}

// FindByQualifier returns the dependencies carrying any of the given qualifiers.
func (q QualifiedDependencySet) FindByQualifier(qualifiers ...string) []Dependency {
	return q.WithQualifiersOnly(qualifiers...).Dependencies()
}

// FindByModule returns the entries depending on moduleID.
func (q QualifiedDependencySet) FindByModule(moduleID coordinate.ModuleID) []QualifiedDependency {
	return lo.Filter(q.entries, func(qd QualifiedDependency, _ int) bool {
		cd, ok := qd.Dependency.(CoordinateDependency)
		return ok && cd.ModuleID() == moduleID
	})
}

// WithQualifiersOnly keeps the entries carrying any of the given qualifiers.
func (q QualifiedDependencySet) WithQualifiersOnly(qualifiers ...string) QualifiedDependencySet {
	return q.withEntries(lo.Filter(q.entries, func(qd QualifiedDependency, _ int) bool {
		return slices.Contains(qualifiers, qd.Qualifier)
	}))
}

// WithModuleIDsOnly keeps the coordinate entries of the given modules.
func (q QualifiedDependencySet) WithModuleIDsOnly(moduleIDs ...coordinate.ModuleID) QualifiedDependencySet {
	return q.withEntries(lo.Filter(q.entries, func(qd QualifiedDependency, _ int) bool {
		cd, ok := qd.Dependency.(CoordinateDependency)
		return ok && slices.Contains(moduleIDs, cd.ModuleID())
	}))
}

// Remove drops every entry structurally equal to dep, whatever its qualifier.
func (q QualifiedDependencySet) Remove(dep Dependency) QualifiedDependencySet {
	return q.withEntries(lo.Reject(q.entries, func(qd QualifiedDependency, _ int) bool {
		return Equal(qd.Dependency, dep)
	}))
}

// WithGlobalExclusions returns a set that also carries the given exclusions.
func (q QualifiedDependencySet) WithGlobalExclusions(exclusions ...DependencyExclusion) QualifiedDependencySet {
	out := q.clone()
	out.exclusions = lo.Uniq(append(out.exclusions, exclusions...))
	return out
}

// WithVersionProvider unions vp into the version provider, vp winning.
func (q QualifiedDependencySet) WithVersionProvider(vp VersionProvider) QualifiedDependencySet {
	out := q.clone()
	out.provider = out.provider.And(vp)
	return out
}

// ReplaceUnspecifiedVersionsWithProvider fills unspecified coordinate versions
// from the version provider.
func (q QualifiedDependencySet) ReplaceUnspecifiedVersionsWithProvider() QualifiedDependencySet {
	out := q.clone()
	for i, qd := range out.entries {
		if cd, ok := qd.Dependency.(CoordinateDependency); ok {
			out.entries[i].Dependency = cd.WithVersion(resolveVersion(cd, q.provider))
		}
	}
	return out
}

// AssertNoUnspecifiedVersion fails when a coordinate entry has no version, even
// after provider lookup.
func (q QualifiedDependencySet) AssertNoUnspecifiedVersion() error {
	return assertNoUnspecifiedVersion(q.Dependencies(), q.provider)
}

// WithResolvedBOMs expands the BOMs of the version provider through resolver.
func (q QualifiedDependencySet) WithResolvedBOMs(ctx context.Context, resolver BOMResolver) (QualifiedDependencySet, error) {
	vp, err := q.provider.WithResolvedBOMs(ctx, resolver)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	out := q.clone()
	out.provider = vp
	return out, nil
}

// ToDependencySet drops the qualifiers.
func (q QualifiedDependencySet) ToDependencySet() DependencySet {
	return DependencySet{
		entries:    q.Dependencies(),
		exclusions: slices.Clone(q.exclusions),
		provider:   q.provider,
	}
}

// GlobalExclusions returns a copy of the global exclusions.
func (q QualifiedDependencySet) GlobalExclusions() []DependencyExclusion {
	return slices.Clone(q.exclusions)
}

// VersionProvider returns the version provider.
func (q QualifiedDependencySet) VersionProvider() VersionProvider {
	return q.provider
}

// Len returns the number of entries.
func (q QualifiedDependencySet) Len() int {
	return len(q.entries)
}

// IsEmpty returns true when the set has no entries.
func (q QualifiedDependencySet) IsEmpty() bool {
	return len(q.entries) == 0
}

func (q QualifiedDependencySet) String() string {
	return "[" + strings.Join(lo.Map(q.entries, func(qd QualifiedDependency, _ int) string { return qd.String() }), ", ") + "]"
}
