package depset

import (
	"context"
	"reflect"
	"testing"

	"github.com/albertocavalcante/go-depset/coordinate"
)

func TestQualifiedDependencySet_Queries(t *testing.T) {
	a := MustCoordinateDependency("a:a:1.0", TransitivityUnspecified)
	b := MustCoordinateDependency("b:b", TransitivityUnspecified)
	f := NewFileDependency("x.jar")

	q := QualifiedDependencySet{}.
		And(ScopeCompile, a).
		And(ScopeTest, b).
		And(ScopeCompile, f).
		And("", MustCoordinateDependency("c:c:1.0", TransitivityUnspecified))

	if got, want := q.Qualifiers(), []string{ScopeCompile, ScopeTest}; !reflect.DeepEqual(got, want) {
		t.Errorf("Qualifiers() = %v, want %v", got, want)
	}
	if got := q.FindByQualifier(ScopeCompile); len(got) != 2 || !Equal(got[0], a) || !Equal(got[1], f) {
		t.Errorf("FindByQualifier(compile) = %v", got)
	}
	if got := q.WithQualifiersOnly(ScopeTest, ScopeCompile).Len(); got != 3 {
		t.Errorf("WithQualifiersOnly(test, compile).Len() = %d, want 3", got)
	}
	if got := q.WithModuleIDsOnly(coordinate.MustModuleID("a", "a"), coordinate.MustModuleID("c", "c")); got.Len() != 2 {
		t.Errorf("WithModuleIDsOnly(a, c) = %v", got)
	}
	if got := q.Remove(f); got.Len() != 3 || q.Len() != 4 {
		t.Errorf("Remove(f) = %v, original %v", got, q)
	}
	if got := q.FindByModule(coordinate.MustModuleID("b", "b")); len(got) != 1 || got[0].Qualifier != ScopeTest {
		t.Errorf("FindByModule(b:b) = %v", got)
	}
}

func TestQualifiedDependencySet_Versions(t *testing.T) {
	q := OfSet(MustOfCoordinates("a:a", "b:b:1.0")).WithVersionProvider(mustProvider(t, "a:a:2.0"))
	if err := q.AssertNoUnspecifiedVersion(); err != nil {
		t.Errorf("AssertNoUnspecifiedVersion() = %v, want nil", err)
	}

	replaced := q.ReplaceUnspecifiedVersionsWithProvider()
	want := []string{"|a:a:2.0", "|b:b:1.0"}
	if got := qualified(replaced); !reflect.DeepEqual(got, want) {
		t.Errorf("ReplaceUnspecifiedVersionsWithProvider() = %v, want %v", got, want)
	}

	if err := OfSet(MustOfCoordinates("z:z")).AssertNoUnspecifiedVersion(); err == nil {
		t.Error("AssertNoUnspecifiedVersion() expected error for z:z")
	}
}

func TestQualifiedDependencySet_RoundTrip(t *testing.T) {
	s := MustOfCoordinates("a:a:1.0").
		WithGlobalExclusions(MustExclusion("x:x")).
		WithVersionProvider(mustProvider(t, "a:a:1.0"))

	back := OfSet(s).ToDependencySet()
	if !reflect.DeepEqual(descriptions(back), descriptions(s)) {
		t.Errorf("ToDependencySet() = %v, want %v", back, s)
	}
	if len(back.GlobalExclusions()) != 1 || back.VersionProvider().Len() != 1 {
		t.Errorf("ToDependencySet() lost exclusions or provider: %v", back)
	}
}

func TestQualifiedDependencySet_WithResolvedBOMs(t *testing.T) {
	q := OfSet(MustOfCoordinates("a:a")).
		WithVersionProvider(NewVersionProvider().WithBOM(coordinate.MustParse("g:bom::pom:1.0")))

	got, err := q.WithResolvedBOMs(context.Background(), StaticBOMResolver{"g:bom:1.0": mustProvider(t, "a:a:3.0")})
	if err != nil {
		t.Fatal(err)
	}
	if err := got.AssertNoUnspecifiedVersion(); err != nil {
		t.Errorf("AssertNoUnspecifiedVersion() after BOM = %v", err)
	}
	if err := q.AssertNoUnspecifiedVersion(); err == nil {
		t.Error("receiver should still lack a version for a:a")
	}
}
