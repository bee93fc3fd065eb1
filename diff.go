package depset

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// ModuleChange represents an added or removed module in a set diff.
type ModuleChange struct {
	// Module is the module identity ("group:name").
	Module string `json:"module" yaml:"module"`

	// Version is the module version, "" when unspecified.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// ModuleUpgrade represents a version change for a module present in both sets.
type ModuleUpgrade struct {
	// Module is the module identity ("group:name").
	Module string `json:"module" yaml:"module"`

	// OldVersion is the version in the old set.
	OldVersion string `json:"old_version" yaml:"old_version"`

	// NewVersion is the version in the new set.
	NewVersion string `json:"new_version" yaml:"new_version"`
}

// SetDiff describes how the resolved module versions of two dependency sets differ.
//
// Example usage:
//
//	before, _ := oldDecl.Compile().Normalised(coordinate.TakeHighest)
//	after, _ := newDecl.Compile().Normalised(coordinate.TakeHighest)
//	diff := depset.Diff(before, after)
//	if !diff.IsEmpty() {
//	    fmt.Printf("%d added, %d removed, %d upgraded, %d downgraded\n",
//	        len(diff.Added), len(diff.Removed), len(diff.Upgraded), len(diff.Downgraded))
//	}
type SetDiff struct {
	// Added contains modules present in new but not in old.
	Added []ModuleChange `json:"added,omitempty" yaml:"added,omitempty"`

	// Removed contains modules present in old but not in new.
	Removed []ModuleChange `json:"removed,omitempty" yaml:"removed,omitempty"`

	// Upgraded contains modules where the new version is higher.
	Upgraded []ModuleUpgrade `json:"upgraded,omitempty" yaml:"upgraded,omitempty"`

	// Downgraded contains modules where the new version is lower.
	Downgraded []ModuleUpgrade `json:"downgraded,omitempty" yaml:"downgraded,omitempty"`
}

// IsEmpty returns true if there are no differences between the sets.
func (d *SetDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Upgraded) == 0 &&
		len(d.Downgraded) == 0
}

// TotalChanges returns the total number of changes (added + removed + upgraded + downgraded).
func (d *SetDiff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Upgraded) + len(d.Downgraded)
}

// Diff computes the difference between the coordinate modules of two sets.
//
// Versions are taken after provider lookup; when a module is declared more than
// once the first declaration counts, so normalise both sets first for
// conflict-resolved input. Versions are compared with [coordinate.Version.Compare],
// so "1.10" is an upgrade over "1.9". Results are sorted by module.
func Diff(old, new DependencySet) *SetDiff {
	diff := &SetDiff{}

	oldModules := moduleVersions(old)
	newModules := moduleVersions(new)

	// Find added and upgraded/downgraded
	for id, newVersion := range newModules {
		oldVersion, existedBefore := oldModules[id]
		if !existedBefore {
			diff.Added = append(diff.Added, ModuleChange{Module: id.String(), Version: newVersion.String()})
			continue
		}
		change := ModuleUpgrade{Module: id.String(), OldVersion: oldVersion.String(), NewVersion: newVersion.String()}
		if c := newVersion.Compare(oldVersion); c > 0 {
			diff.Upgraded = append(diff.Upgraded, change)
		} else if c < 0 {
			diff.Downgraded = append(diff.Downgraded, change)
		}
	}

	// Find removed
	for id, oldVersion := range oldModules {
		if _, existsNow := newModules[id]; !existsNow {
			diff.Removed = append(diff.Removed, ModuleChange{Module: id.String(), Version: oldVersion.String()})
		}
	}

	sortModuleChanges(diff.Added)
	sortModuleChanges(diff.Removed)
	sortModuleUpgrades(diff.Upgraded)
	sortModuleUpgrades(diff.Downgraded)

	return diff
}

// moduleVersions maps each coordinate module to its first resolved version.
func moduleVersions(s DependencySet) map[coordinate.ModuleID]coordinate.Version {
	out := make(map[coordinate.ModuleID]coordinate.Version)
	for _, cd := range s.CoordinateDependencies() {
		if _, ok := out[cd.ModuleID()]; !ok {
			out[cd.ModuleID()] = resolveVersion(cd, s.provider)
		}
	}
	return out
}

func sortModuleChanges(changes []ModuleChange) {
	slices.SortFunc(changes, func(a, b ModuleChange) int {
		return strings.Compare(a.Module, b.Module)
	})
}

func sortModuleUpgrades(upgrades []ModuleUpgrade) {
	slices.SortFunc(upgrades, func(a, b ModuleUpgrade) int {
		return strings.Compare(a.Module, b.Module)
	})
}
