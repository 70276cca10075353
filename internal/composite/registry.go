package composite

import (
	"fmt"
	"sort"
	"sync"

	"github.com/polarview/satcomp/internal/sunzen"
)

// Deps carries the collaborators recipes may need. Norm is only required
// by sun-correcting recipes.
type Deps struct {
	Norm *sunzen.Normalizer
}

// Builder instantiates the compositor for one descriptor.
type Builder func(d Descriptor, deps Deps) (Compositor, error)

var (
	buildersMu sync.RWMutex
	builders   = map[string]Builder{
		"rgb": func(d Descriptor, _ Deps) (Compositor, error) {
			return NewRGB(d), nil
		},
		"sun_corrected_rgb": func(d Descriptor, deps Deps) (Compositor, error) {
			if deps.Norm == nil {
				return nil, fmt.Errorf("compositor %q needs a sun zenith normalizer", d.Tag)
			}
			return NewSunCorrected(d, deps.Norm), nil
		},
		"airmass": func(d Descriptor, _ Deps) (Compositor, error) {
			return NewAirmass(d), nil
		},
		"convection": func(d Descriptor, _ Deps) (Compositor, error) {
			return NewConvection(d), nil
		},
		"dust": func(d Descriptor, _ Deps) (Compositor, error) {
			return NewDust(d), nil
		},
	}
)

// Register adds a builder for a compositor tag. Registering an existing
// tag replaces it.
func Register(tag string, b Builder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	builders[tag] = b
}

// Tags lists the registered compositor tags, sorted.
func Tags() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	out := make([]string, 0, len(builders))
	for tag := range builders {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// New dispatches on the descriptor's compositor tag.
func New(d Descriptor, deps Deps) (Compositor, error) {
	buildersMu.RLock()
	b, ok := builders[d.Tag]
	buildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (composite %q)", ErrUnknownCompositor, d.Tag, d.Name)
	}
	return b(d, deps)
}
