package depset

import (
	"testing"

	"github.com/albertocavalcante/go-depset/coordinate"
)

func TestEqualAndSameIdentity(t *testing.T) {
	guava := MustCoordinateDependency("com.google.guava:guava:23.0", TransitivityNone)

	tests := []struct {
		name         string
		a, b         Dependency
		wantEqual    bool
		wantIdentity bool
	}{
		{"same coordinate", guava, MustCoordinateDependency("com.google.guava:guava:23.0", TransitivityNone), true, true},
		{"other transitivity", guava, guava.WithTransitivity(TransitivityRuntime), false, true},
		{"other version", guava, guava.WithVersion(coordinate.NewVersion("24.0")), false, true},
		{"other classifier", guava, MustCoordinateDependency("com.google.guava:guava:sources:23.0", TransitivityNone), false, false},
		{"other module", guava, MustCoordinateDependency("com.google.guava:failureaccess:23.0", TransitivityNone), false, false},
		{"same files", NewFileDependency("a.jar", "b.jar"), NewFileDependency("a.jar", "b.jar"), true, true},
		{"files order", NewFileDependency("a.jar", "b.jar"), NewFileDependency("b.jar", "a.jar"), false, false},
		{"same computed", NewComputedDependency("core", "core/", "out.jar"), NewComputedDependency("core", "core/", "out.jar"), true, true},
		{"computed project dir", NewComputedDependency("core", "core/", "out.jar"), NewComputedDependency("core", "", "out.jar"), false, false},
		{"variants differ", NewFileDependency("a.jar"), NewComputedDependency("a.jar", ""), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.wantEqual {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.wantEqual)
			}
			if got := SameIdentity(tt.a, tt.b); got != tt.wantIdentity {
				t.Errorf("SameIdentity(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.wantIdentity)
			}
		})
	}
}

func TestFileDependency_Immutable(t *testing.T) {
	paths := []string{"a.jar"}
	d := NewFileDependency(paths...)
	paths[0] = "changed.jar"
	d.Paths()[0] = "changed.jar"

	if got := d.Paths()[0]; got != "a.jar" {
		t.Errorf("Paths()[0] = %q, want a.jar", got)
	}
}

func TestCoordinateDependency_String(t *testing.T) {
	d := MustCoordinateDependency("g:n:1.0", TransitivityUnspecified)
	if d.String() != "g:n:1.0" {
		t.Errorf("String() = %q, want g:n:1.0", d)
	}
	if got := d.WithTransitivity(TransitivityCompile).String(); got != "g:n:1.0 [compile]" {
		t.Errorf("String() = %q, want %q", got, "g:n:1.0 [compile]")
	}
}

func TestParseCoordinateDependency_Malformed(t *testing.T) {
	if _, err := ParseCoordinateDependency("guava", TransitivityNone); err == nil {
		t.Error("ParseCoordinateDependency(guava) expected error")
	}
}

func TestTransitivity(t *testing.T) {
	tests := []struct {
		in   string
		want Transitivity
	}{
		{"", TransitivityUnspecified},
		{"none", TransitivityNone},
		{"Compile", TransitivityCompile},
		{" RUNTIME ", TransitivityRuntime},
	}
	for _, tt := range tests {
		got, err := ParseTransitivity(tt.in)
		if err != nil {
			t.Errorf("ParseTransitivity(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTransitivity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTransitivity("test"); err == nil {
		t.Error("ParseTransitivity(test) expected error")
	}
	if got := MaxTransitivity(TransitivityRuntime, TransitivityNone); got != TransitivityRuntime {
		t.Errorf("MaxTransitivity(runtime, none) = %v", got)
	}
	if got := MaxTransitivity(TransitivityUnspecified, TransitivityNone); got != TransitivityNone {
		t.Errorf("MaxTransitivity(unspecified, none) = %v", got)
	}
}

func TestParseExclusion(t *testing.T) {
	tests := []struct {
		desc    string
		target  string
		matches bool
	}{
		{"g:n", "g:n:1.0", true},
		{"g:n", "g:n:linux:1.0", true},
		{"g:n", "g:other:1.0", false},
		{"g:n:linux", "g:n:linux:1.0", true},
		{"g:n:linux", "g:n:1.0", false},
		{"g:n:linux:zip", "g:n:linux:zip:1.0", true},
		{"g:n:linux:zip", "g:n:linux:1.0", false},
		{"g:n::jar", "g:n:1.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.desc+"/"+tt.target, func(t *testing.T) {
			e, err := ParseExclusion(tt.desc)
			if err != nil {
				t.Fatalf("ParseExclusion(%q) unexpected error: %v", tt.desc, err)
			}
			if got := e.Matches(coordinate.MustParse(tt.target)); got != tt.matches {
				t.Errorf("ParseExclusion(%q).Matches(%s) = %v, want %v", tt.desc, tt.target, got, tt.matches)
			}
		})
	}

	for _, bad := range []string{"", "g", "g:n:c:t:x", ":n"} {
		if _, err := ParseExclusion(bad); err == nil {
			t.Errorf("ParseExclusion(%q) expected error", bad)
		}
	}
}
