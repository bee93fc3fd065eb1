package depset

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/albertocavalcante/go-depset/coordinate"
)

// VersionProvider maps modules to pinned versions and lists imported BOMs.
//
// Module order is the order of first insertion. The zero value is an empty
// provider. Every operation returns a new provider.
type VersionProvider struct {
	ids      []coordinate.ModuleID
	versions map[coordinate.ModuleID]coordinate.Version
	boms     []coordinate.Coordinate
}

// NewVersionProvider returns an empty provider.
func NewVersionProvider() VersionProvider {
	return VersionProvider{}
}

// VersionProviderOf builds a provider from "group:name:version" descriptions.
func VersionProviderOf(descriptions ...string) (VersionProvider, error) {
	vp := NewVersionProvider()
	for _, d := range descriptions {
		c, err := coordinate.Parse(d)
		if err != nil {
			return VersionProvider{}, err
		}
		if c.Version().IsUnspecified() {
			return VersionProvider{}, fmt.Errorf("version pin %q: %w", d, ErrUnspecifiedVersion)
		}
		vp = vp.With(c.ModuleID(), c.Version())
	}
	return vp, nil
}

func (vp VersionProvider) clone() VersionProvider {
	return VersionProvider{
		ids:      slices.Clone(vp.ids),
		versions: maps.Clone(vp.versions),
		boms:     slices.Clone(vp.boms),
	}
}

// With returns a provider pinning moduleID to v, replacing any previous pin.
func (vp VersionProvider) With(moduleID coordinate.ModuleID, v coordinate.Version) VersionProvider {
	out := vp.clone()
	if out.versions == nil {
		out.versions = make(map[coordinate.ModuleID]coordinate.Version)
	}
	if _, ok := out.versions[moduleID]; !ok {
		out.ids = append(out.ids, moduleID)
	}
	out.versions[moduleID] = v
	return out
}

// WithBOM returns a provider that also imports the given bill of materials.
func (vp VersionProvider) WithBOM(bom coordinate.Coordinate) VersionProvider {
	out := vp.clone()
	if !slices.Contains(out.boms, bom) {
		out.boms = append(out.boms, bom)
	}
	return out
}

// And returns the union of both providers. Pins from other override pins for
// the same module; BOM lists are concatenated without duplicates.
func (vp VersionProvider) And(other VersionProvider) VersionProvider {
	out := vp.clone()
	for _, id := range other.ids {
		out = out.With(id, other.versions[id])
	}
	out.boms = lo.Uniq(append(out.boms, other.boms...))
	return out
}

// VersionOf returns the pinned version of moduleID.
func (vp VersionProvider) VersionOf(moduleID coordinate.ModuleID) (coordinate.Version, bool) {
	v, ok := vp.versions[moduleID]
	return v, ok
}

// VersionOfOrUnspecified returns the pinned version of moduleID or [coordinate.Unspecified].
func (vp VersionProvider) VersionOfOrUnspecified(moduleID coordinate.ModuleID) coordinate.Version {
	return vp.versions[moduleID]
}

// ModuleIDs returns the pinned modules in insertion order.
func (vp VersionProvider) ModuleIDs() []coordinate.ModuleID {
	return slices.Clone(vp.ids)
}

// BOMs returns the imported bills of materials.
func (vp VersionProvider) BOMs() []coordinate.Coordinate {
	return slices.Clone(vp.boms)
}

// Len returns the number of pinned modules.
func (vp VersionProvider) Len() int {
	return len(vp.ids)
}

// IsEmpty returns true when there are neither pins nor BOMs.
func (vp VersionProvider) IsEmpty() bool {
	return len(vp.ids) == 0 && len(vp.boms) == 0
}

// WithResolvedBOMs expands every imported BOM through resolver. Pins found in the
// BOMs are added after the explicit pins and never override them; earlier BOMs
// win over later ones. BOMs imported by BOMs are expanded too. The returned
// provider has no BOMs left.
func (vp VersionProvider) WithResolvedBOMs(ctx context.Context, resolver BOMResolver) (VersionProvider, error) {
	if len(vp.boms) == 0 {
		return vp, nil
	}
	out := vp.clone()
	out.boms = nil

	seen := make(map[coordinate.Coordinate]bool)
	queue := slices.Clone(vp.boms)
	for len(queue) > 0 {
		bom := queue[0]
		queue = queue[1:]
		if seen[bom] {
			continue
		}
		seen[bom] = true

		if err := ctx.Err(); err != nil {
			return VersionProvider{}, err
		}
		pins, err := resolver.ResolveBOM(ctx, bom)
		if err != nil {
			return VersionProvider{}, fmt.Errorf("%w: %s: %w", ErrBOMResolution, bom, err)
		}
		for _, id := range pins.ids {
			if _, ok := out.versions[id]; !ok {
				out = out.With(id, pins.versions[id])
			}
		}
		queue = append(queue, pins.boms...)
	}
	return out, nil
}

func (vp VersionProvider) String() string {
	s := lo.Map(vp.ids, func(id coordinate.ModuleID, _ int) string {
		return id.String() + ":" + vp.versions[id].String()
	})
	return fmt.Sprint(s)
}
