package buildfile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bazelbuild/buildtools/build"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/coordinate"
	"github.com/albertocavalcante/go-depset/declfile"
	"github.com/albertocavalcante/go-depset/internal/buildutil"
)

// ParseResult contains the declarations and any diagnostics.
type ParseResult struct {
	Declarations *declfile.Declarations
	Errors       []*ParseError
	Warnings     []*ParseError
}

// HasErrors returns true if there were parse errors.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err joins the parse errors, nil if there are none.
func (r *ParseResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Parser parses dependency description files.
type Parser struct {
	filename string
	vars     buildutil.Vars
	decl     *declfile.Declarations
	errors   []*ParseError
	warnings []*ParseError
}

// dependency call name -> bucket
var dependencyCalls = map[string]declfile.Bucket{
	"compile":      declfile.Regular,
	"compile_only": declfile.CompileOnly,
	"runtime_only": declfile.RuntimeOnly,
	"test":         declfile.Test,
}

// ParseFile reads and parses a description file from disk.
func ParseFile(filename string) (*ParseResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseContent(filename, data)
}

// ParseContent parses description content from bytes. A syntax error is
// returned as error; semantic problems are reported in the result.
func ParseContent(filename string, content []byte) (*ParseResult, error) {
	p := &Parser{
		filename: filename,
		vars:     buildutil.Vars{},
		decl:     &declfile.Declarations{},
	}
	return p.parse(content)
}

func (p *Parser) parse(content []byte) (*ParseResult, error) {
	raw, err := build.ParseDefault(p.filename, content)
	if err != nil {
		return nil, &ParseError{
			Pos:     Position{Filename: p.filename},
			Message: fmt.Sprintf("syntax error: %v", err),
			Wrapped: err,
		}
	}

	for _, stmt := range raw.Stmt {
		p.parseStatement(stmt)
	}

	return &ParseResult{
		Declarations: p.decl,
		Errors:       p.errors,
		Warnings:     p.warnings,
	}, nil
}

func (p *Parser) parseStatement(expr build.Expr) {
	if _, ok := expr.(*build.CommentBlock); ok {
		return
	}
	if _, ok := expr.(*build.AssignExpr); ok {
		if !p.vars.Bind(expr) {
			p.addWarning(p.position(expr), "ignoring assignment: only strings and lists of strings can be bound")
		}
		return
	}

	call, ok := expr.(*build.CallExpr)
	if !ok {
		p.addWarning(p.position(expr), "ignoring unsupported statement")
		return
	}

	pos := p.position(call)
	name := buildutil.FuncName(call)
	if bucket, ok := dependencyCalls[name]; ok {
		p.parseDependencies(call, bucket, pos)
		return
	}
	switch name {
	case "file":
		p.parseFile(call, pos)
	case "version":
		p.parseVersion(call, pos)
	case "bom":
		p.parseBOM(call, pos)
	case "exclude":
		p.parseExclude(call, pos)
	default:
		p.addWarning(pos, "ignoring unknown call %s()", name)
	}
}

// parseDependencies handles compile/compile_only/runtime_only/test.
func (p *Parser) parseDependencies(call *build.CallExpr, bucket declfile.Bucket, pos Position) {
	name := buildutil.FuncName(call)
	p.checkKeywords(call, name, "transitivity")

	transitivity := depset.TransitivityUnspecified
	if s, ok := p.vars.StringArg(call, "transitivity"); ok {
		t, err := depset.ParseTransitivity(s)
		if err != nil {
			p.addErrorWrap(pos, err, "%s: %v", name, err)
			return
		}
		transitivity = t
	} else if buildutil.Keyword(call, "transitivity") != nil {
		p.addError(pos, "%s: transitivity must be a string", name)
		return
	}

	descriptions := p.positionalStrings(call, name)
	if len(descriptions) == 0 {
		p.addError(pos, "%s: missing coordinate argument", name)
		return
	}
	for _, desc := range descriptions {
		dep, err := depset.ParseCoordinateDependency(desc, transitivity)
		if err != nil {
			p.addErrorWrap(pos, err, "%s: %v", name, err)
			continue
		}
		p.decl.Add(bucket, dep)
	}
}

func (p *Parser) parseFile(call *build.CallExpr, pos Position) {
	p.checkKeywords(call, "file", "scope")

	bucket := declfile.Regular
	if s, ok := p.vars.StringArg(call, "scope"); ok {
		b, err := declfile.ParseBucket(s)
		if err != nil {
			p.addErrorWrap(pos, err, "file: %v", err)
			return
		}
		bucket = b
	}

	paths := p.positionalStrings(call, "file")
	if len(paths) == 0 {
		p.addError(pos, "file: missing path argument")
		return
	}
	p.decl.Add(bucket, depset.NewFileDependency(paths...))
}

func (p *Parser) parseVersion(call *build.CallExpr, pos Position) {
	p.checkKeywords(call, "version")
	for _, desc := range p.positionalStrings(call, "version") {
		c, ok := p.versionedCoordinate(desc, "version", pos)
		if ok {
			p.decl.Pin(c.ModuleID(), c.Version())
		}
	}
}

func (p *Parser) parseBOM(call *build.CallExpr, pos Position) {
	p.checkKeywords(call, "bom")
	for _, desc := range p.positionalStrings(call, "bom") {
		c, ok := p.versionedCoordinate(desc, "bom", pos)
		if ok {
			p.decl.ImportBOM(c)
		}
	}
}

func (p *Parser) parseExclude(call *build.CallExpr, pos Position) {
	p.checkKeywords(call, "exclude")
	for _, desc := range p.positionalStrings(call, "exclude") {
		e, err := depset.ParseExclusion(desc)
		if err != nil {
			p.addErrorWrap(pos, err, "exclude: %v", err)
			continue
		}
		p.decl.Exclude(e)
	}
}

func (p *Parser) versionedCoordinate(desc, fn string, pos Position) (coordinate.Coordinate, bool) {
	c, err := coordinate.Parse(desc)
	if err != nil {
		p.addErrorWrap(pos, err, "%s: %v", fn, err)
		return coordinate.Coordinate{}, false
	}
	if c.Version().IsUnspecified() {
		p.addErrorWrap(pos, coordinate.ErrUnspecifiedVersion, "%s: %s has no version", fn, desc)
		return coordinate.Coordinate{}, false
	}
	return c, true
}

// positionalStrings collects every positional argument as strings, reporting
// arguments that are not strings, lists of strings or bound names.
func (p *Parser) positionalStrings(call *build.CallExpr, fn string) []string {
	var result []string
	for _, arg := range buildutil.Positional(call) {
		values, ok := p.vars.Strings(arg)
		if !ok {
			p.addError(p.position(arg), "%s: argument must be a string, a list of strings or a bound name", fn)
			continue
		}
		result = append(result, values...)
	}
	return result
}

func (p *Parser) checkKeywords(call *build.CallExpr, fn string, allowed ...string) {
	for _, name := range buildutil.KeywordNames(call) {
		if !slices.Contains(allowed, name) {
			p.addWarning(p.position(call), "%s: ignoring unknown argument %q", fn, name)
		}
	}
}

func (p *Parser) position(expr build.Expr) Position {
	start, _ := expr.Span()
	return Position{
		Filename: p.filename,
		Line:     start.Line,
		Column:   start.LineRune,
	}
}

func (p *Parser) addError(pos Position, format string, args ...any) {
	p.addErrorWrap(pos, nil, format, args...)
}

func (p *Parser) addErrorWrap(pos Position, wrapped error, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		Wrapped: wrapped,
	})
}

func (p *Parser) addWarning(pos Position, format string, args ...any) {
	p.warnings = append(p.warnings, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}
