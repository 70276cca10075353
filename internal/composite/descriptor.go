// Package composite turns ordered lists of co-registered bands into 3-band
// RGB visualization products. Each compositor encodes one fixed recipe;
// descriptors carry the identity and required inputs of a named recipe.
package composite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polarview/satcomp/internal/raster"
	"github.com/polarview/satcomp/internal/types"
)

var (
	// ErrBandCount is returned when a recipe receives the wrong number of
	// input bands.
	ErrBandCount = errors.New("unexpected number of bands")
	// ErrNotImplemented is returned when a bare descriptor is asked to
	// compose; only concrete recipes can.
	ErrNotImplemented = errors.New("composite recipe not implemented")
	// ErrUnknownCompositor is returned for descriptor tags no builder is
	// registered for.
	ErrUnknownCompositor = errors.New("unknown compositor")
)

// Prerequisite identifies one required input band, either by center
// wavelength (µm) or by channel name. Position in the descriptor's list
// maps to the recipe's argument position.
type Prerequisite struct {
	Name          string
	Wavelength    float64
	HasWavelength bool
}

func (p Prerequisite) String() string {
	if p.HasWavelength {
		return strconv.FormatFloat(p.Wavelength, 'g', -1, 64)
	}
	return p.Name
}

// ParsePrerequisites splits a comma-separated prerequisite string. Each
// token is taken as a wavelength when it parses as a float, else as a
// channel name.
func ParsePrerequisites(s string) []Prerequisite {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]Prerequisite, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if w, err := strconv.ParseFloat(token, 64); err == nil {
			out = append(out, Prerequisite{Wavelength: w, HasWavelength: true})
			continue
		}
		out = append(out, Prerequisite{Name: token})
	}
	return out
}

// Descriptor names a composite recipe and the bands it needs, in order.
// Its metadata is overlaid last when a recipe merges band metadata, so
// descriptor-level values win.
type Descriptor struct {
	Name          string
	Tag           string
	Prerequisites []Prerequisite
	Meta          types.Metadata
}

// NewDescriptor builds a descriptor from a comma-separated prerequisite
// string. defaults populate metadata options the descriptor does not
// already set.
func NewDescriptor(name, tag, prerequisites string, defaults map[string]any) Descriptor {
	meta := types.Metadata{
		Name:  name,
		Extra: map[string]any{"compositor": tag},
	}
	for k, v := range defaults {
		if _, ok := meta.Extra[k]; !ok {
			meta.Extra[k] = v
		}
	}
	return Descriptor{
		Name:          name,
		Tag:           tag,
		Prerequisites: ParsePrerequisites(prerequisites),
		Meta:          meta,
	}
}

// Compose on a bare descriptor always fails; concrete recipes embed
// Descriptor and override it.
func (d Descriptor) Compose(bands []types.Band) (*Result, error) {
	return nil, fmt.Errorf("%w: composite %q (tag %q)", ErrNotImplemented, d.Name, d.Tag)
}

// Result is a composed product: a band-first stack plus merged metadata.
type Result struct {
	Data *raster.Stack
	Meta types.Metadata
}

// Compositor evaluates one recipe over an ordered list of input bands.
type Compositor interface {
	Compose(bands []types.Band) (*Result, error)
}
