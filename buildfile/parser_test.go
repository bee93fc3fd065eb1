package buildfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
)

func entries(s depset.DependencySet) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.String())
	}
	return out
}

func mustParse(t *testing.T, content string) *ParseResult {
	t.Helper()
	result, err := ParseContent("deps.star", []byte(content))
	if err != nil {
		t.Fatalf("ParseContent() unexpected error: %v", err)
	}
	return result
}

func TestParseContent(t *testing.T) {
	result := mustParse(t, `
# Dependencies of the service.
GUAVA_VERSION = "23.0"
TEST_LIBS = [
    "junit:junit:4.13",
    "org.mockito:mockito-core:2.10.0",
]

compile("com.google.guava:guava:" + GUAVA_VERSION, transitivity = "none")
compile_only("org.projectlombok:lombok:1.18.30")
runtime_only("org.postgresql:postgresql", transitivity = "runtime")
test(TEST_LIBS)
file("libs/a.jar", "libs/b.jar", scope = "compile_only")

version("org.postgresql:postgresql:42.2.19")
bom("org.junit:junit-bom::pom:5.10.0")
exclude("commons-logging:commons-logging", "g:n:sources")
`)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Err())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	d := result.Declarations
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"regular", entries(d.Regular()), []string{"com.google.guava:guava:23.0 [none]"}},
		{"compile_only", entries(d.CompileOnly()), []string{"org.projectlombok:lombok:1.18.30", "files(libs/a.jar, libs/b.jar)"}},
		{"runtime_only", entries(d.RuntimeOnly()), []string{"org.postgresql:postgresql [runtime]"}},
		{"test", entries(d.Test()), []string{"junit:junit:4.13", "org.mockito:mockito-core:2.10.0"}},
	}
	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	vp := d.VersionProvider()
	if v := vp.VersionOfOrUnspecified(coordinate.MustModuleID("org.postgresql", "postgresql")); v.String() != "42.2.19" {
		t.Errorf("postgresql pin = %q, want 42.2.19", v)
	}
	if len(vp.BOMs()) != 1 {
		t.Errorf("BOMs() = %v, want one", vp.BOMs())
	}
	if n := len(d.GlobalExclusions()); n != 2 {
		t.Errorf("GlobalExclusions() has %d entries, want 2", n)
	}
}

func TestParseContent_SharedListVariable(t *testing.T) {
	result := mustParse(t, `
COMMON = ["g:a:1.0", "g:b:1.0", "g:c:1.0"]
PROD = COMMON + ["g:prod:1.0"]
TESTS = COMMON + ["g:test:1.0"]

compile(PROD)
test(TESTS)
`)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Err())
	}

	d := result.Declarations
	if got, want := entries(d.Regular()), []string{"g:a:1.0", "g:b:1.0", "g:c:1.0", "g:prod:1.0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("regular = %v, want %v", got, want)
	}
	if got, want := entries(d.Test()), []string{"g:a:1.0", "g:b:1.0", "g:c:1.0", "g:test:1.0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("test = %v, want %v", got, want)
	}
}

func TestParseContent_Diagnostics(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantErrors   []string
		wantWarnings []string
		sentinel     error
	}{
		{
			name:       "malformed coordinate",
			content:    `compile("guava")`,
			wantErrors: []string{"deps.star:1:1: compile:"},
			sentinel:   coordinate.ErrMalformedDescriptor,
		},
		{
			name:       "bad transitivity",
			content:    `compile("g:n:1.0", transitivity = "sometimes")`,
			wantErrors: []string{"unknown transitivity"},
		},
		{
			name:       "version without version",
			content:    "\nversion(\"g:n\")",
			wantErrors: []string{"deps.star:2:1: version: g:n has no version"},
			sentinel:   coordinate.ErrUnspecifiedVersion,
		},
		{
			name:       "missing argument",
			content:    `test()`,
			wantErrors: []string{"test: missing coordinate argument"},
		},
		{
			name:       "unbound name",
			content:    `test(LIBS)`,
			wantErrors: []string{"argument must be a string", "test: missing coordinate argument"},
		},
		{
			name:       "bad scope",
			content:    `file("a.jar", scope = "provided")`,
			wantErrors: []string{"unknown bucket"},
		},
		{
			name:       "bad exclusion",
			content:    `exclude("g")`,
			wantErrors: []string{"exclude:"},
			sentinel:   coordinate.ErrMalformedDescriptor,
		},
		{
			name:         "unknown call and argument",
			content:      "provided(\"g:n:1.0\")\ncompile(\"g:n:1.0\", optional = True)",
			wantWarnings: []string{"unknown call provided()", `compile: ignoring unknown argument "optional"`},
		},
		{
			name:         "unsupported assignment",
			content:      `X = 1`,
			wantWarnings: []string{"ignoring assignment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustParse(t, tt.content)
			checkMessages(t, "error", result.Errors, tt.wantErrors)
			checkMessages(t, "warning", result.Warnings, tt.wantWarnings)
			if tt.sentinel != nil && !errors.Is(result.Err(), tt.sentinel) {
				t.Errorf("Err() = %v, want it to wrap %v", result.Err(), tt.sentinel)
			}
		})
	}
}

func checkMessages(t *testing.T, kind string, got []*ParseError, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d %ss %v, want %d", len(got), kind, got, len(want))
	}
	for i, w := range want {
		if !strings.Contains(got[i].Error(), w) {
			t.Errorf("%s[%d] = %q, want it to contain %q", kind, i, got[i].Error(), w)
		}
	}
}

func TestParseContent_SyntaxError(t *testing.T) {
	_, err := ParseContent("deps.star", []byte(`compile("g:n:1.0"`))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseContent() error = %v, want *ParseError", err)
	}
	if !strings.Contains(perr.Error(), "syntax error") {
		t.Errorf("error = %q, want syntax error", perr)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.star")
	if err := os.WriteFile(path, []byte(`test("junit:junit:4.13")`), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() unexpected error: %v", err)
	}
	if got := result.Declarations.Test().Len(); got != 1 {
		t.Errorf("Test().Len() = %d, want 1", got)
	}
	if result.Err() != nil {
		t.Errorf("Err() = %v, want nil", result.Err())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.star")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want ErrNotExist", err)
	}
}
