package declfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
)

const (
	headerPrefix   = "=="
	commentPrefix  = "#"
	versionsHeader = "versions"
	bomType        = "pom"
)

// LineError reports a malformed line of a text declaration file.
type LineError struct {
	Line int    // 1-based
	Text string // trimmed line content
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseTextFile reads and parses a text declaration file.
func ParseTextFile(path string) (*Declarations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open declarations: %w", err)
	}
	defer f.Close()

	d, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseText parses text declarations held in memory.
func ParseText(content string) (*Declarations, error) {
	return ParseReader(strings.NewReader(content))
}

// ParseReader parses text declarations from r. Parsing stops at the first
// malformed line, reported as a *LineError.
func ParseReader(r io.Reader) (*Declarations, error) {
	d := &Declarations{}
	section := Regular
	inVersions := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		if strings.HasPrefix(line, headerPrefix) {
			name := normalizeName(strings.Trim(line, "= \t"))
			inVersions = name == versionsHeader
			if b, err := ParseBucket(name); err == nil {
				section = b
			} else {
				section = Regular
			}
			continue
		}

		c, err := coordinate.Parse(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Text: line, Err: err}
		}

		if !inVersions {
			d.Add(section, depset.NewCoordinateDependency(c, depset.TransitivityUnspecified))
			continue
		}
		if c.Version().IsUnspecified() {
			return nil, &LineError{Line: lineNo, Text: line,
				Err: fmt.Errorf("version pin of %s: %w", c.ModuleID(), coordinate.ErrUnspecifiedVersion)}
		}
		if c.ArtifactSpecification().Type() == bomType {
			d.ImportBOM(c)
		} else {
			d.Pin(c.ModuleID(), c.Version())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}
	return d, nil
}
