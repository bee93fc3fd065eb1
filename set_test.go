package depset

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// descriptions renders the entries of s for comparison.
func descriptions(s DependencySet) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.String())
	}
	return out
}

func TestDependencySet_AndMinus(t *testing.T) {
	a := MustCoordinateDependency("a:a:1.0", TransitivityUnspecified)
	b := MustCoordinateDependency("b:b:1.0", TransitivityUnspecified)
	c := MustCoordinateDependency("c:c:1.0", TransitivityUnspecified)

	s := Of(a, b).And(c).AndFiles("lib/x.jar")
	want := []string{"a:a:1.0", "b:b:1.0", "c:c:1.0", "files(lib/x.jar)"}
	if got := descriptions(s); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	minus := s.Minus(b, NewFileDependency("lib/x.jar"))
	want = []string{"a:a:1.0", "c:c:1.0"}
	if got := descriptions(minus); !reflect.DeepEqual(got, want) {
		t.Errorf("Minus entries = %v, want %v", got, want)
	}

	// Minus is structural: another transitivity is a different entry.
	if got := s.Minus(a.WithTransitivity(TransitivityNone)).Len(); got != 4 {
		t.Errorf("Minus(other transitivity).Len() = %d, want 4", got)
	}

	if got := s.MinusModule(coordinate.MustModuleID("c", "c")); got.ContainsIdentity(c) {
		t.Errorf("MinusModule(c:c) still contains c:c: %v", got)
	}

	// Receiver is unchanged.
	if s.Len() != 4 {
		t.Errorf("original set modified: %v", s)
	}
}

func TestDependencySet_AndCoordinate(t *testing.T) {
	s, err := DependencySet{}.AndCoordinate("g:n:1.0", TransitivityRuntime)
	if err != nil {
		t.Fatalf("AndCoordinate unexpected error: %v", err)
	}
	cd, ok := s.Get(coordinate.MustModuleID("g", "n"))
	if !ok {
		t.Fatal("Get(g:n) not found")
	}
	if cd.Transitivity() != TransitivityRuntime || cd.Version().String() != "1.0" {
		t.Errorf("Get(g:n) = %s", cd)
	}

	if _, err := s.AndCoordinate("g:n:a:b:c:d", TransitivityNone); !errors.Is(err, ErrMalformedDescriptor) {
		t.Errorf("AndCoordinate(malformed) error = %v, want ErrMalformedDescriptor", err)
	}
}

func TestDependencySet_AndSetUnionsExclusionsAndProviders(t *testing.T) {
	left := MustOfCoordinates("a:a").
		WithGlobalExclusions(MustExclusion("x:x")).
		WithVersionProvider(NewVersionProvider().With(coordinate.MustModuleID("a", "a"), coordinate.NewVersion("1.0")))
	right := MustOfCoordinates("b:b").
		WithGlobalExclusions(MustExclusion("x:x"), MustExclusion("y:y")).
		WithVersionProvider(NewVersionProvider().With(coordinate.MustModuleID("a", "a"), coordinate.NewVersion("2.0")))

	got := left.AndSet(right)
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
	if n := len(got.GlobalExclusions()); n != 2 {
		t.Errorf("GlobalExclusions() has %d entries, want 2", n)
	}
	if v := got.VersionProvider().VersionOfOrUnspecified(coordinate.MustModuleID("a", "a")); v.String() != "2.0" {
		t.Errorf("provider a:a = %q, want 2.0 (right wins)", v)
	}
	if !got.IsExcluded(coordinate.MustParse("y:y:1.0")) {
		t.Error("IsExcluded(y:y) = false, want true")
	}
}

func TestDependencySet_WithTransitivity(t *testing.T) {
	s := MustOfCoordinates("a:a:1.0", "b:b:1.0").AndFiles("x.jar").WithTransitivity(TransitivityNone)
	for _, cd := range s.CoordinateDependencies() {
		if cd.Transitivity() != TransitivityNone {
			t.Errorf("%s transitivity = %v, want none", cd, cd.Transitivity())
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestNormalised(t *testing.T) {
	tests := []struct {
		name     string
		set      DependencySet
		strategy coordinate.ConflictStrategy
		want     []string
	}{
		{
			name:     "take highest keeps first position",
			set:      MustOfCoordinates("a:a:1.0", "b:b:1.0", "a:a:3.0", "a:a:2.0"),
			strategy: coordinate.TakeHighest,
			want:     []string{"a:a:3.0", "b:b:1.0"},
		},
		{
			name:     "take lowest",
			set:      MustOfCoordinates("a:a:2.0", "a:a:1.0", "a:a:3.0"),
			strategy: coordinate.TakeLowest,
			want:     []string{"a:a:1.0"},
		},
		{
			name:     "take first",
			set:      MustOfCoordinates("a:a:2.0", "a:a:1.0", "a:a:3.0"),
			strategy: coordinate.TakeFirst,
			want:     []string{"a:a:2.0"},
		},
		{
			name:     "unspecified loses",
			set:      MustOfCoordinates("a:a", "a:a:1.5"),
			strategy: coordinate.TakeFirst,
			want:     []string{"a:a:1.5"},
		},
		{
			name:     "release beats snapshot",
			set:      MustOfCoordinates("a:a:2.0-SNAPSHOT", "a:a:1.0"),
			strategy: coordinate.TakeHighest,
			want:     []string{"a:a:1.0"},
		},
		{
			name:     "classifiers stay separate entries",
			set:      MustOfCoordinates("a:a:1.0", "a:a:sources:2.0"),
			strategy: coordinate.TakeHighest,
			want:     []string{"a:a:2.0", "a:a:sources:2.0"},
		},
		{
			name:     "fail tolerates identical versions",
			set:      MustOfCoordinates("a:a:1.0", "a:a:1.0"),
			strategy: coordinate.FailOnConflict,
			want:     []string{"a:a:1.0"},
		},
		{
			name:     "fail keeps the release over a snapshot",
			set:      MustOfCoordinates("g:n:1.0", "g:n:2.0-SNAPSHOT"),
			strategy: coordinate.FailOnConflict,
			want:     []string{"g:n:1.0"},
		},
		{
			name:     "fail keeps the release declared after a snapshot",
			set:      MustOfCoordinates("g:n:2.0-SNAPSHOT", "g:n:1.0"),
			strategy: coordinate.FailOnConflict,
			want:     []string{"g:n:1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.set.Normalised(tt.strategy)
			if err != nil {
				t.Fatalf("Normalised(%s) unexpected error: %v", tt.strategy, err)
			}
			if d := descriptions(got); !reflect.DeepEqual(d, tt.want) {
				t.Errorf("Normalised(%s) = %v, want %v", tt.strategy, d, tt.want)
			}
		})
	}
}

func TestNormalised_MergesTransitivity(t *testing.T) {
	s := Of(
		MustCoordinateDependency("a:a:1.0", TransitivityNone),
		MustCoordinateDependency("a:a:2.0", TransitivityRuntime),
	)
	got, err := s.Normalised(coordinate.TakeHighest)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a:a:2.0 [runtime]"}
	if d := descriptions(got); !reflect.DeepEqual(d, want) {
		t.Errorf("Normalised = %v, want %v", d, want)
	}
}

func TestNormalised_OneEntryPerModuleAtMaximum(t *testing.T) {
	versions := []string{"1.2", "1.10", "1.9", "1.10-rc1", "0.9"}
	var descs []string
	for _, v := range versions {
		descs = append(descs, "m:m:"+v)
	}
	got, err := MustOfCoordinates(descs...).Normalised(coordinate.TakeHighest)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Fatalf("Normalised has %d entries, want 1: %v", got.Len(), got)
	}
	if v := got.CoordinateDependencies()[0].Version().String(); v != "1.10" {
		t.Errorf("Normalised version = %q, want 1.10", v)
	}
}

func TestNormalised_FailOnConflict(t *testing.T) {
	_, err := MustOfCoordinates("g:n:1.0", "g:n:2.0").Normalised(coordinate.FailOnConflict)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("Normalised error = %v, want ErrVersionConflict", err)
	}
	var conflict *coordinate.VersionConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error should be a *VersionConflictError, got %T", err)
	}
	for _, want := range []string{"g:n", "1.0", "2.0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestAssertNoUnspecifiedVersion(t *testing.T) {
	vp, err := VersionProviderOf("b:b:1.0")
	if err != nil {
		t.Fatal(err)
	}
	s := MustOfCoordinates("a:a", "b:b", "c:c:1.0", "d:d", "a:a").AndFiles("x.jar").WithVersionProvider(vp)

	err = s.AssertNoUnspecifiedVersion()
	if !errors.Is(err, ErrUnspecifiedVersion) {
		t.Fatalf("AssertNoUnspecifiedVersion() = %v, want ErrUnspecifiedVersion", err)
	}
	var unspecified *coordinate.UnspecifiedVersionError
	if !errors.As(err, &unspecified) {
		t.Fatalf("error should be a *UnspecifiedVersionError, got %T", err)
	}
	var got []string
	for _, m := range unspecified.Modules {
		got = append(got, m.String())
	}
	if want := []string{"a:a", "d:d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("unspecified modules = %v, want %v", got, want)
	}

	if err := MustOfCoordinates("c:c:1.0").AssertNoUnspecifiedVersion(); err != nil {
		t.Errorf("AssertNoUnspecifiedVersion() on versioned set = %v, want nil", err)
	}
}

func TestToResolvedModuleVersions(t *testing.T) {
	vp, err := VersionProviderOf("a:a:2.0", "b:b:9.9")
	if err != nil {
		t.Fatal(err)
	}
	s := MustOfCoordinates("a:a", "b:b:1.0", "c:c").WithVersionProvider(vp)

	got := s.ToResolvedModuleVersions()
	want := []string{"a:a:2.0", "b:b:1.0", "c:c"}
	if d := descriptions(got); !reflect.DeepEqual(d, want) {
		t.Errorf("ToResolvedModuleVersions() = %v, want %v", d, want)
	}

	resolved := s.ResolvedVersions()
	if resolved.Len() != 2 {
		t.Errorf("ResolvedVersions().Len() = %d, want 2", resolved.Len())
	}
	if v := resolved.VersionOfOrUnspecified(coordinate.MustModuleID("b", "b")); v.String() != "1.0" {
		t.Errorf("ResolvedVersions b:b = %q, want 1.0", v)
	}
}
