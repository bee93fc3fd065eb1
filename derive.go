package depset

import (
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// IDE and POM scope labels.
const (
	ScopeCompile  = "compile"
	ScopeRuntime  = "runtime"
	ScopeProvided = "provided"
	ScopeTest     = "test"
)

// Ivy target configurations.
const (
	IvyArchivesMaster  = "archives(master)"
	IvyCompileDefault  = "compile(default)"
	IvyRuntimeDefault  = "runtime(default)"
	IvyTestDefault     = "test(default)"
	ivyConfigSeparator = ", "
)

// IvyTargetConfigurations returns the target configurations implied by an
// explicit transitivity hint, nil for [TransitivityUnspecified].
func IvyTargetConfigurations(t Transitivity) []string {
	switch t {
	case TransitivityNone:
		return []string{IvyArchivesMaster}
	case TransitivityCompile:
		return []string{IvyArchivesMaster, IvyCompileDefault}
	case TransitivityRuntime:
		return []string{IvyArchivesMaster, IvyRuntimeDefault}
	}
	return nil
}

// presence records on which phase sets a dependency was declared.
type presence int

const (
	presentInCompile presence = iota // compile only
	presentInRuntime                 // runtime only
	presentInBoth
	presentInTestOnly
)

// ivySource returns the Ivy source configurations and their default targets.
func (p presence) ivySource() (string, []string) {
	switch p {
	case presentInCompile:
		return "compile", []string{IvyArchivesMaster, IvyCompileDefault}
	case presentInRuntime:
		return "runtime", []string{IvyArchivesMaster, IvyRuntimeDefault}
	case presentInBoth:
		return "compile,runtime", []string{IvyArchivesMaster, IvyCompileDefault, IvyRuntimeDefault}
	default:
		return "test", []string{IvyArchivesMaster, IvyCompileDefault, IvyRuntimeDefault, IvyTestDefault}
	}
}

func (p presence) ideScope() string {
	switch p {
	case presentInCompile:
		return ScopeProvided
	case presentInRuntime:
		return ScopeRuntime
	case presentInBoth:
		return ScopeCompile
	default:
		return ScopeTest
	}
}

func (p presence) mavenScope() string {
	switch p {
	case presentInCompile:
		return ScopeProvided
	case presentInRuntime:
		return ScopeRuntime
	default:
		return ScopeCompile
	}
}

// classified is a normalised dependency with the phases it was declared in.
type classified struct {
	dep      Dependency
	presence presence
}

// classification is the outcome of the two-stage merge shared by the derivations.
type classification struct {
	entries []classified
	merged  DependencySet
}

// classify merges compile with runtime, then the result with test, normalises
// the final union and tells for each entry where it came from.
func classify(compile, runtime, test DependencySet, strategy coordinate.ConflictStrategy, cfg *deriveConfig) (classification, error) {
	prod := compile.Merge(runtime)
	all := prod.Union.Merge(test)

	merged, err := all.Union.Normalised(strategy)
	if err != nil {
		return classification{}, err
	}

	entries := make([]classified, 0, merged.Len())
	for _, dep := range merged.entries {
		var p presence
		switch {
		case !prod.Union.ContainsIdentity(dep):
			p = presentInTestOnly
		case prod.AbsentFromRight.ContainsIdentity(dep):
			p = presentInCompile
		case prod.AbsentFromLeft.ContainsIdentity(dep):
			p = presentInRuntime
		default:
			p = presentInBoth
		}
		entries = append(entries, classified{dep: dep, presence: p})
	}

	cfg.log().Debug("classified dependencies",
		"compile", compile.Len(), "runtime", runtime.Len(), "test", test.Len(),
		"normalised", len(entries), "strategy", strategy.String())
	return classification{entries: entries, merged: merged}, nil
}

// withResolvedVersion substitutes the provider version of an unversioned coordinate dependency.
func withResolvedVersion(dep Dependency, vp VersionProvider) Dependency {
	if cd, ok := dep.(CoordinateDependency); ok {
		return cd.WithVersion(resolveVersion(cd, vp))
	}
	return dep
}

// ComputeIDEDependencies derives IDE classpath scopes from the three phase sets.
//
// A dependency found only through test is "test", one declared for compile but
// not runtime is "provided", one declared for runtime but not compile is
// "runtime" and one declared on both is "compile". Versions are resolved from the
// union of the three version providers. With [WithStrictVersions] an unresolved
// version is an error.
func ComputeIDEDependencies(compile, runtime, test DependencySet, strategy coordinate.ConflictStrategy, opts ...Option) (QualifiedDependencySet, error) {
	cfg, err := newDeriveConfig(opts...)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	c, err := classify(compile, runtime, test, strategy, cfg)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	if cfg.strictVersions {
		if err := c.merged.AssertNoUnspecifiedVersion(); err != nil {
			return QualifiedDependencySet{}, err
		}
	}

	entries := make([]QualifiedDependency, 0, len(c.entries))
	for _, e := range c.entries {
		scope := e.presence.ideScope()
		dep := withResolvedVersion(e.dep, c.merged.provider)
		cfg.log().Debug("ide scope", "dependency", dep.String(), "scope", scope)
		entries = append(entries, QualifiedDependency{Qualifier: scope, Dependency: dep})
	}
	return NewQualifiedDependencySet(entries, c.merged.exclusions, c.merged.provider), nil
}

// ComputeIvyPublishDependencies derives Ivy "source -> targets" configuration
// strings for publishing. Only coordinate dependencies are published and every
// one of them must have a version after provider lookup.
//
// The source side follows the same classification as [ComputeIDEDependencies];
// an explicit transitivity hint replaces the default targets with
// [IvyTargetConfigurations].
func ComputeIvyPublishDependencies(compile, runtime, test DependencySet, strategy coordinate.ConflictStrategy, opts ...Option) (QualifiedDependencySet, error) {
	cfg, err := newDeriveConfig(opts...)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	c, err := classify(compile, runtime, test, strategy, cfg)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	if err := c.merged.AssertNoUnspecifiedVersion(); err != nil {
		return QualifiedDependencySet{}, err
	}

	var entries []QualifiedDependency
	for _, e := range c.entries {
		cd, ok := e.dep.(CoordinateDependency)
		if !ok {
			continue
		}
		source, targets := e.presence.ivySource()
		if hint := IvyTargetConfigurations(cd.Transitivity()); hint != nil {
			targets = hint
		}
		config := source + " -> " + strings.Join(targets, ivyConfigSeparator)
		entries = append(entries, QualifiedDependency{
			Qualifier:  config,
			Dependency: cd.WithVersion(resolveVersion(cd, c.merged.provider)),
		})
	}
	return NewQualifiedDependencySet(entries, c.merged.exclusions, c.merged.provider), nil
}

// ComputeMavenPublishDependencies derives POM scopes for publishing: "compile"
// for dependencies on both sets, "runtime" for runtime only and "provided" for
// compile only. Only coordinate dependencies are published and every one of them
// must have a version after provider lookup.
func ComputeMavenPublishDependencies(compile, runtime DependencySet, strategy coordinate.ConflictStrategy, opts ...Option) (QualifiedDependencySet, error) {
	cfg, err := newDeriveConfig(opts...)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	c, err := classify(compile, runtime, DependencySet{}, strategy, cfg)
	if err != nil {
		return QualifiedDependencySet{}, err
	}
	if err := c.merged.AssertNoUnspecifiedVersion(); err != nil {
		return QualifiedDependencySet{}, err
	}

	var entries []QualifiedDependency
	for _, e := range c.entries {
		cd, ok := e.dep.(CoordinateDependency)
		if !ok {
			continue
		}
		entries = append(entries, QualifiedDependency{
			Qualifier:  e.presence.mavenScope(),
			Dependency: cd.WithVersion(resolveVersion(cd, c.merged.provider)),
		})
	}
	return NewQualifiedDependencySet(entries, c.merged.exclusions, c.merged.provider), nil
}
