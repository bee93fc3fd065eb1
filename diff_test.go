package depset

import (
	"reflect"
	"testing"
)

func TestDiff_EmptyInputs(t *testing.T) {
	diff := Diff(DependencySet{}, DependencySet{})
	if diff == nil {
		t.Fatal("Diff returned nil")
	}
	if !diff.IsEmpty() {
		t.Errorf("Diff(empty, empty) = %+v, want empty", diff)
	}
}

func TestDiff_Identical(t *testing.T) {
	s := MustOfCoordinates("a:a:1.0.0", "b:b:2.0.0")

	diff := Diff(s, s)

	if !diff.IsEmpty() {
		t.Errorf("Expected empty diff for identical sets, got %+v", diff)
	}
	if diff.TotalChanges() != 0 {
		t.Errorf("TotalChanges() = %d, want 0", diff.TotalChanges())
	}
}

func TestDiff_AddedRemoved(t *testing.T) {
	old := MustOfCoordinates("a:a:1.0", "z:z:1.0")
	new := MustOfCoordinates("a:a:1.0", "c:c:3.0", "b:b:2.0")

	diff := Diff(old, new)

	wantAdded := []ModuleChange{{Module: "b:b", Version: "2.0"}, {Module: "c:c", Version: "3.0"}}
	if !reflect.DeepEqual(diff.Added, wantAdded) {
		t.Errorf("Added = %+v, want %+v", diff.Added, wantAdded)
	}
	wantRemoved := []ModuleChange{{Module: "z:z", Version: "1.0"}}
	if !reflect.DeepEqual(diff.Removed, wantRemoved) {
		t.Errorf("Removed = %+v, want %+v", diff.Removed, wantRemoved)
	}
	if diff.TotalChanges() != 3 {
		t.Errorf("TotalChanges() = %d, want 3", diff.TotalChanges())
	}
}

func TestDiff_UpgradedDowngraded(t *testing.T) {
	old := MustOfCoordinates("a:a:1.9", "b:b:2.0", "c:c:1.0-SNAPSHOT")
	new := MustOfCoordinates("a:a:1.10", "b:b:1.5", "c:c:1.0")

	diff := Diff(old, new)

	wantUp := []ModuleUpgrade{
		{Module: "a:a", OldVersion: "1.9", NewVersion: "1.10"},
		{Module: "c:c", OldVersion: "1.0-SNAPSHOT", NewVersion: "1.0"},
	}
	if !reflect.DeepEqual(diff.Upgraded, wantUp) {
		t.Errorf("Upgraded = %+v, want %+v", diff.Upgraded, wantUp)
	}
	wantDown := []ModuleUpgrade{{Module: "b:b", OldVersion: "2.0", NewVersion: "1.5"}}
	if !reflect.DeepEqual(diff.Downgraded, wantDown) {
		t.Errorf("Downgraded = %+v, want %+v", diff.Downgraded, wantDown)
	}
}

func TestDiff_EquivalentVersionsIgnored(t *testing.T) {
	diff := Diff(MustOfCoordinates("a:a:1.0"), MustOfCoordinates("a:a:1.0.0"))
	if !diff.IsEmpty() {
		t.Errorf("Diff(1.0, 1.0.0) = %+v, want empty", diff)
	}
}

func TestDiff_UsesVersionProvider(t *testing.T) {
	vp, err := VersionProviderOf("a:a:2.0")
	if err != nil {
		t.Fatal(err)
	}
	old := MustOfCoordinates("a:a:1.0")
	new := MustOfCoordinates("a:a").WithVersionProvider(vp)

	diff := Diff(old, new)
	if len(diff.Upgraded) != 1 || diff.Upgraded[0].NewVersion != "2.0" {
		t.Errorf("Upgraded = %+v, want a:a 1.0 -> 2.0", diff.Upgraded)
	}
}
