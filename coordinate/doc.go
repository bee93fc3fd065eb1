// Package coordinate provides immutable identity types for Java-ecosystem artifacts.
//
// All types in this package are comparable values. Every "mutator" returns a new
// value and never modifies the receiver, so values can be shared freely between
// goroutines and used as map keys.
//
// # Types
//
// The main types are:
//   - [Version]: an opaque version string with snapshot/dynamic detection and Maven-style ordering
//   - [ModuleID]: a group:name pair (e.g., "com.google.guava:guava")
//   - [ArtifactSpecification]: classifier(s) and type selecting artifacts of a module
//   - [Coordinate]: ModuleID + Version + ArtifactSpecification
//   - [ConflictStrategy]: policy for reconciling two versions of the same module
//
// # Description Grammar
//
// Coordinates are parsed from colon-separated descriptions. Exactly six shapes are accepted:
//
//	group:name
//	group:name:version
//	group:name:classifiers:version
//	group:name:classifiers:type:version
//	group:name:classifiers:type:
//	group:name:classifiers:
//
// Trailing empty fields are dropped before counting fields, so the shape is
// decided by the number of separators together with the number of remaining fields.
// Classifiers are comma separated; an empty classifier token stands for the
// default (unclassified) artifact.
package coordinate
