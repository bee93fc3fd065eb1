package depset

// MergeResult is the three-way partition produced by [DependencySet.Merge].
type MergeResult struct {
	// Union holds the left entries followed by the right entries the left side lacks.
	Union DependencySet

	// AbsentFromLeft holds the right entries whose identity is not on the left.
	AbsentFromLeft DependencySet

	// AbsentFromRight holds the left entries whose identity is not on the right.
	AbsentFromRight DependencySet
}

// Merge compares s (left) with other (right) by dependency identity.
//
// A coordinate entry present on both sides is kept once from the left, with the
// broadest transitivity of the pair. When the right side declares it at another
// version, the right entry is kept too so that normalisation can resolve the
// conflict. Exclusions and version providers are unioned into the result sets.
func (s DependencySet) Merge(other DependencySet) MergeResult {
	leftByID := groupByIdentity(s.entries)
	rightByID := groupByIdentity(other.entries)

	var union, absentFromLeft, absentFromRight []Dependency
	for _, e := range s.entries {
		matches, ok := rightByID[identityOf(e)]
		if !ok {
			absentFromRight = append(absentFromRight, e)
			union = append(union, e)
			continue
		}
		union = append(union, widenTransitivity(e, matches))
	}
	for _, e := range other.entries {
		matches, ok := leftByID[identityOf(e)]
		if !ok {
			absentFromLeft = append(absentFromLeft, e)
			union = appendUnique(union, e)
			continue
		}
		cd, isCoordinate := e.(CoordinateDependency)
		if isCoordinate && !sameVersionAsAny(cd, matches) {
			union = appendUnique(union, widenTransitivity(cd, matches))
		}
	}

	template := s.WithGlobalExclusions(other.exclusions...).WithVersionProvider(other.provider)
	return MergeResult{
		Union:           template.withEntries(union),
		AbsentFromLeft:  template.withEntries(absentFromLeft),
		AbsentFromRight: template.withEntries(absentFromRight),
	}
}

func (s DependencySet) withEntries(entries []Dependency) DependencySet {
	out := s.clone()
	out.entries = entries
	return out
}

func groupByIdentity(entries []Dependency) map[identity][]Dependency {
	groups := make(map[identity][]Dependency)
	for _, e := range entries {
		key := identityOf(e)
		groups[key] = append(groups[key], e)
	}
	return groups
}

// widenTransitivity raises the transitivity of a coordinate entry to the
// broadest one among matches. Other variants are returned unchanged.
func widenTransitivity(e Dependency, matches []Dependency) Dependency {
	cd, ok := e.(CoordinateDependency)
	if !ok {
		return e
	}
	t := cd.Transitivity()
	for _, m := range matches {
		if other, ok := m.(CoordinateDependency); ok {
			t = MaxTransitivity(t, other.Transitivity())
		}
	}
	return cd.WithTransitivity(t)
}

func sameVersionAsAny(cd CoordinateDependency, matches []Dependency) bool {
	for _, m := range matches {
		if other, ok := m.(CoordinateDependency); ok && other.Version() == cd.Version() {
			return true
		}
	}
	return false
}

func appendUnique(entries []Dependency, e Dependency) []Dependency {
	for _, existing := range entries {
		if Equal(existing, e) {
			return entries
		}
	}
	return append(entries, e)
}
