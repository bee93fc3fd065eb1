// Package depset declares, combines and qualifies library dependencies of a
// Java-ecosystem build and derives the dependency views a build needs from them.
//
// # Model
//
// A [DependencySet] is an ordered list of [Dependency] values together with a set
// of global exclusions and a [VersionProvider]. A dependency is one of three
// closed variants:
//
//   - [CoordinateDependency]: a module coordinate plus a [Transitivity] hint
//   - [FileDependency]: one or more local files
//   - [ComputedDependency]: the output of another build
//
// Every value is immutable; each operation returns a new value so sets can be
// shared between goroutines without locking.
//
// # Derivations
//
// A build declares one set per phase (compile, runtime, test). The derivation
// functions merge the three sets and recover why each dependency is present:
//
//	qs, err := depset.ComputeIDEDependencies(compile, runtime, test, coordinate.TakeHighest)
//	for _, qd := range qs.Entries() {
//	    fmt.Println(qd.Qualifier, qd.Dependency)
//	}
//
// [ComputeIvyPublishDependencies] and [ComputeMavenPublishDependencies] produce
// publish configuration strings and POM scopes from the same comparison.
//
// # Version Pins
//
// Dependencies may be declared without a version. The set's [VersionProvider]
// fills them in, and bill-of-materials imports are expanded through a
// [BOMResolver], the only place where this package delegates I/O.
//
// # Logging
//
// The package is silent by default. Pass [WithLogger] to derivation functions to
// receive debug output through log/slog.
package depset
