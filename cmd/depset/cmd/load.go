package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/buildfile"
	"github.com/albertocavalcante/go-depset/coordinate"
	"github.com/albertocavalcante/go-depset/declfile"
)

var starlarkExtensions = []string{".star", ".bzl"}

// loadDeclarations picks the parser from the path: a directory of jars, a
// Starlark file, or a flat text file.
func loadDeclarations(ctx context.Context, path string) (*declfile.Declarations, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case info.IsDir():
		return declfile.ParseDir(path)
	case lo.Contains(starlarkExtensions, filepath.Ext(path)):
		result, err := buildfile.ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, w := range result.Warnings {
			slog.WarnContext(ctx, "declaration warning", "warning", w.Error())
		}
		if err := result.Err(); err != nil {
			return nil, err
		}
		return result.Declarations, nil
	default:
		return declfile.ParseTextFile(path)
	}
}

// phases holds the three derivation inputs of one declaration file.
type phases struct {
	compile depset.DependencySet
	runtime depset.DependencySet
	test    depset.DependencySet
}

// loadPhases loads declarations and, when a BOM file is configured, expands the imported BOMs.
func (o *globalOptions) loadPhases(ctx context.Context, path string) (phases, error) {
	d, err := loadDeclarations(ctx, path)
	if err != nil {
		return phases{}, err
	}
	p := phases{compile: d.Compile(), runtime: d.Runtime(), test: d.Test()}

	if len(d.VersionProvider().BOMs()) == 0 {
		return p, nil
	}
	if o.bomFile == "" {
		slog.WarnContext(ctx, "BOM imports left unresolved, pass --boms to expand them", "boms", len(d.VersionProvider().BOMs()))
		return p, nil
	}

	resolver, err := o.bomResolver()
	if err != nil {
		return phases{}, err
	}
	for _, s := range []*depset.DependencySet{&p.compile, &p.runtime, &p.test} {
		if *s, err = s.WithResolvedBOMs(ctx, resolver); err != nil {
			return phases{}, err
		}
	}
	hits, misses := resolver.Stats()
	slog.DebugContext(ctx, "bom cache", "hits", hits, "misses", misses)
	return p, nil
}

// bomResolver reads --boms: a mapping from BOM coordinate to the coordinates it
// pins. Entries of type pom are nested BOM imports.
func (o *globalOptions) bomResolver() (*depset.CachingBOMResolver, error) {
	data, err := os.ReadFile(o.bomFile)
	if err != nil {
		return nil, fmt.Errorf("read BOM file: %w", err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode BOM file %s: %w", o.bomFile, err)
	}

	static := make(depset.StaticBOMResolver, len(raw))
	for key, pins := range raw {
		bom, err := coordinate.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("BOM file %s: %w", o.bomFile, err)
		}
		vp := depset.NewVersionProvider()
		for _, pin := range pins {
			c, err := coordinate.Parse(pin)
			if err != nil {
				return nil, fmt.Errorf("BOM %s: %w", key, err)
			}
			if c.Version().IsUnspecified() {
				return nil, fmt.Errorf("BOM %s pin %s: %w", key, pin, coordinate.ErrUnspecifiedVersion)
			}
			if c.ArtifactSpecification().Type() == "pom" {
				vp = vp.WithBOM(c)
			} else {
				vp = vp.With(c.ModuleID(), c.Version())
			}
		}
		static[bom.ModuleID().String()+":"+bom.Version().String()] = vp
	}

	return depset.NewCachingBOMResolver(static, o.cfg.BOMCacheSize)
}
