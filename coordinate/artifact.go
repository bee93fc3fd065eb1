package coordinate

import "strings"

// DefaultType is the artifact type assumed when none is specified.
const DefaultType = "jar"

// ArtifactSpecification selects which artifact(s) of a module are targeted.
//
// The classifier holds a comma separated list where an empty token means the
// default (unclassified) artifact. The zero value is [MainArtifact].
type ArtifactSpecification struct {
	classifier string
	typ        string
}

// MainArtifact targets the main artifact: default classifier, default type.
var MainArtifact = ArtifactSpecification{}

// NewArtifactSpecification creates an ArtifactSpecification from a comma separated
// classifier list and a type. Blank inputs mean default.
func NewArtifactSpecification(classifiers, typ string) ArtifactSpecification {
	tokens := strings.Split(classifiers, ",")
	for i, t := range tokens {
		tokens[i] = strings.TrimSpace(t)
	}
	joined := strings.Join(tokens, ",")
	if strings.Trim(joined, ",") == "" {
		joined = ""
	}
	return ArtifactSpecification{classifier: joined, typ: strings.TrimSpace(typ)}
}

// Classifier returns the raw comma separated classifier list ("" for default).
func (a ArtifactSpecification) Classifier() string {
	return a.classifier
}

// Classifiers returns the individual classifiers, nil for the default classifier.
// An empty element stands for the default artifact alongside classified ones.
func (a ArtifactSpecification) Classifiers() []string {
	if a.classifier == "" {
		return nil
	}
	return strings.Split(a.classifier, ",")
}

// Type returns the declared type, "" when unspecified.
func (a ArtifactSpecification) Type() string {
	return a.typ
}

// TypeOrDefault returns the declared type or "jar".
func (a ArtifactSpecification) TypeOrDefault() string {
	if a.typ == "" {
		return DefaultType
	}
	return a.typ
}

// IsMainArtifact returns true for the default classifier with unspecified type.
func (a ArtifactSpecification) IsMainArtifact() bool {
	return a == MainArtifact
}

// String returns "classifier:type" with empty parts kept, or "" for the main artifact.
func (a ArtifactSpecification) String() string {
	if a.IsMainArtifact() {
		return ""
	}
	if a.typ == "" {
		return a.classifier
	}
	return a.classifier + ":" + a.typ
}
