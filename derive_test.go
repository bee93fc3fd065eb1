package depset

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// qualified renders each entry of a qualified set as "qualifier|dependency".
func qualified(q QualifiedDependencySet) []string {
	var out []string
	for _, qd := range q.Entries() {
		out = append(out, qd.Qualifier+"|"+qd.Dependency.String())
	}
	return out
}

func TestComputeIDEDependencies_ScopeBoundaries(t *testing.T) {
	tests := []struct {
		name                   string
		compile, runtime, test DependencySet
		want                   []string
	}{
		{
			name:    "compile only is provided",
			compile: MustOfCoordinates("a:a:1.0"),
			want:    []string{"provided|a:a:1.0"},
		},
		{
			name:    "runtime only is runtime",
			runtime: MustOfCoordinates("a:a:1.0"),
			want:    []string{"runtime|a:a:1.0"},
		},
		{
			name:    "both is compile",
			compile: MustOfCoordinates("a:a:1.0"),
			runtime: MustOfCoordinates("a:a:1.0"),
			want:    []string{"compile|a:a:1.0"},
		},
		{
			name: "test only is test",
			test: MustOfCoordinates("a:a:1.0"),
			want: []string{"test|a:a:1.0"},
		},
		{
			name:    "test does not demote prod",
			compile: MustOfCoordinates("a:a:1.0"),
			test:    MustOfCoordinates("a:a:1.0", "t:t:1.0"),
			want:    []string{"provided|a:a:1.0", "test|t:t:1.0"},
		},
		{
			name:    "versions differ across phases",
			compile: MustOfCoordinates("a:a:1.0"),
			runtime: MustOfCoordinates("a:a:2.0"),
			want:    []string{"compile|a:a:2.0"},
		},
		{
			name:    "file dependencies are classified too",
			compile: Of(NewFileDependency("lib/api.jar")),
			runtime: Of(NewFileDependency("lib/impl.jar")),
			want:    []string{"provided|files(lib/api.jar)", "runtime|files(lib/impl.jar)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeIDEDependencies(tt.compile, tt.runtime, tt.test, coordinate.TakeHighest)
			if err != nil {
				t.Fatalf("ComputeIDEDependencies() unexpected error: %v", err)
			}
			if q := qualified(got); !reflect.DeepEqual(q, tt.want) {
				t.Errorf("ComputeIDEDependencies() = %v, want %v", q, tt.want)
			}
		})
	}
}

func TestComputeIDEDependencies_CompileOnlyScenario(t *testing.T) {
	got, err := ComputeIDEDependencies(MustOfCoordinates("a:a:1.0"), DependencySet{}, DependencySet{}, coordinate.FailOnConflict)
	if err != nil {
		t.Fatal(err)
	}
	entries := got.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Qualifier != ScopeProvided {
		t.Errorf("qualifier = %q, want %q", entries[0].Qualifier, ScopeProvided)
	}
	if entries[0].Dependency.String() != "a:a:1.0" {
		t.Errorf("dependency = %s, want a:a:1.0", entries[0].Dependency)
	}
}

func TestComputeIDEDependencies_TransitivityMergedAcrossPhases(t *testing.T) {
	compile := Of(MustCoordinateDependency("com.google.guava:guava:23.0", TransitivityNone))
	runtime := Of(
		MustCoordinateDependency("org.postgresql:postgresql:42.2.19", TransitivityUnspecified),
		MustCoordinateDependency("com.google.guava:guava:23.0", TransitivityRuntime),
	)

	got, err := ComputeIDEDependencies(compile, runtime, DependencySet{}, coordinate.TakeHighest)
	if err != nil {
		t.Fatal(err)
	}

	guava := got.FindByModule(coordinate.MustModuleID("com.google.guava", "guava"))
	if len(guava) != 1 {
		t.Fatalf("guava entries = %v, want exactly one", guava)
	}
	if guava[0].Qualifier != ScopeCompile {
		t.Errorf("guava qualifier = %q, want %q", guava[0].Qualifier, ScopeCompile)
	}
	cd := guava[0].Dependency.(CoordinateDependency)
	if cd.Transitivity() != TransitivityRuntime {
		t.Errorf("guava transitivity = %v, want runtime", cd.Transitivity())
	}

	pg := got.FindByModule(coordinate.MustModuleID("org.postgresql", "postgresql"))
	if len(pg) != 1 || pg[0].Qualifier != ScopeRuntime {
		t.Errorf("postgresql = %v, want one runtime entry", pg)
	}
}

func TestComputeIDEDependencies_ResolvesVersionsFromMergedProvider(t *testing.T) {
	compile := MustOfCoordinates("a:a").WithVersionProvider(mustProvider(t, "a:a:1.0"))
	test := MustOfCoordinates("t:t").WithVersionProvider(mustProvider(t, "t:t:3.0", "a:a:2.0"))

	got, err := ComputeIDEDependencies(compile, DependencySet{}, test, coordinate.TakeHighest)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"provided|a:a:2.0", "test|t:t:3.0"}
	if q := qualified(got); !reflect.DeepEqual(q, want) {
		t.Errorf("ComputeIDEDependencies() = %v, want %v", q, want)
	}
}

func TestComputeIDEDependencies_StrictVersions(t *testing.T) {
	compile := MustOfCoordinates("a:a")

	if _, err := ComputeIDEDependencies(compile, DependencySet{}, DependencySet{}, coordinate.TakeHighest); err != nil {
		t.Errorf("lenient derivation unexpected error: %v", err)
	}
	_, err := ComputeIDEDependencies(compile, DependencySet{}, DependencySet{}, coordinate.TakeHighest, WithStrictVersions())
	if !errors.Is(err, ErrUnspecifiedVersion) {
		t.Errorf("strict derivation error = %v, want ErrUnspecifiedVersion", err)
	}
}

func TestComputeIDEDependencies_Conflict(t *testing.T) {
	_, err := ComputeIDEDependencies(MustOfCoordinates("g:n:1.0"), MustOfCoordinates("g:n:2.0"), DependencySet{}, coordinate.FailOnConflict)
	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("error = %v, want ErrVersionConflict", err)
	}
}

func TestComputeIDEDependencies_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ComputeIDEDependencies(MustOfCoordinates("a:a:1.0"), DependencySet{}, DependencySet{}, coordinate.TakeHighest, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("scope=provided")) {
		t.Errorf("debug log missing scope: %s", buf.String())
	}
}

func TestComputeIvyPublishDependencies(t *testing.T) {
	compile := MustOfCoordinates("c:compile-only:1.0", "b:both:1.0").AndFiles("lib/local.jar")
	runtime := MustOfCoordinates("r:runtime-only:1.0", "b:both:1.0")
	test := MustOfCoordinates("t:test-only:1.0")

	got, err := ComputeIvyPublishDependencies(compile, runtime, test, coordinate.TakeHighest)
	if err != nil {
		t.Fatalf("ComputeIvyPublishDependencies() unexpected error: %v", err)
	}
	want := []string{
		"compile -> archives(master), compile(default)|c:compile-only:1.0",
		"compile,runtime -> archives(master), compile(default), runtime(default)|b:both:1.0",
		"runtime -> archives(master), runtime(default)|r:runtime-only:1.0",
		"test -> archives(master), compile(default), runtime(default), test(default)|t:test-only:1.0",
	}
	if q := qualified(got); !reflect.DeepEqual(q, want) {
		t.Errorf("ComputeIvyPublishDependencies() =\n%v\nwant\n%v", q, want)
	}
}

func TestComputeIvyPublishDependencies_TransitivityOverridesTargets(t *testing.T) {
	tests := []struct {
		transitivity Transitivity
		want         string
	}{
		{TransitivityNone, "compile -> archives(master)"},
		{TransitivityCompile, "compile -> archives(master), compile(default)"},
		{TransitivityRuntime, "compile -> archives(master), runtime(default)"},
	}
	for _, tt := range tests {
		t.Run(tt.transitivity.String(), func(t *testing.T) {
			compile := Of(MustCoordinateDependency("a:a:1.0", tt.transitivity))
			got, err := ComputeIvyPublishDependencies(compile, DependencySet{}, DependencySet{}, coordinate.TakeHighest)
			if err != nil {
				t.Fatal(err)
			}
			if q := got.Entries()[0].Qualifier; q != tt.want {
				t.Errorf("qualifier = %q, want %q", q, tt.want)
			}
		})
	}
}

func TestComputeIvyPublishDependencies_RequiresVersions(t *testing.T) {
	compile := MustOfCoordinates("a:a", "b:b:1.0")
	_, err := ComputeIvyPublishDependencies(compile, DependencySet{}, MustOfCoordinates("t:t"), coordinate.TakeHighest)
	var unspecified *coordinate.UnspecifiedVersionError
	if !errors.As(err, &unspecified) {
		t.Fatalf("error = %v, want *UnspecifiedVersionError", err)
	}
	if len(unspecified.Modules) != 2 {
		t.Errorf("unspecified modules = %v, want a:a and t:t", unspecified.Modules)
	}

	// Provider pins satisfy the check.
	compile = compile.WithVersionProvider(mustProvider(t, "a:a:1.0", "t:t:1.0"))
	if _, err := ComputeIvyPublishDependencies(compile, DependencySet{}, MustOfCoordinates("t:t"), coordinate.TakeHighest); err != nil {
		t.Errorf("with provider unexpected error: %v", err)
	}
}

func TestComputeMavenPublishDependencies(t *testing.T) {
	compile := MustOfCoordinates("c:c:1.0", "b:b:1.0").AndFiles("x.jar")
	runtime := MustOfCoordinates("r:r", "b:b:1.0").WithVersionProvider(mustProvider(t, "r:r:2.0"))

	got, err := ComputeMavenPublishDependencies(compile, runtime, coordinate.TakeHighest)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"provided|c:c:1.0", "compile|b:b:1.0", "runtime|r:r:2.0"}
	if q := qualified(got); !reflect.DeepEqual(q, want) {
		t.Errorf("ComputeMavenPublishDependencies() = %v, want %v", q, want)
	}

	if _, err := ComputeMavenPublishDependencies(MustOfCoordinates("a:a"), DependencySet{}, coordinate.TakeHighest); !errors.Is(err, ErrUnspecifiedVersion) {
		t.Errorf("error = %v, want ErrUnspecifiedVersion", err)
	}
}

func TestIvyTargetConfigurations(t *testing.T) {
	if got := IvyTargetConfigurations(TransitivityUnspecified); got != nil {
		t.Errorf("IvyTargetConfigurations(unspecified) = %v, want nil", got)
	}
	want := []string{IvyArchivesMaster, IvyCompileDefault}
	if got := IvyTargetConfigurations(TransitivityCompile); !reflect.DeepEqual(got, want) {
		t.Errorf("IvyTargetConfigurations(compile) = %v, want %v", got, want)
	}
}
