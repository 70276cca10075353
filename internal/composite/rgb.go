package composite

import (
	"fmt"

	"github.com/polarview/satcomp/internal/raster"
	"github.com/polarview/satcomp/internal/types"
)

// RGB is the base recipe: stack exactly three bands in input order and
// merge their metadata. All other recipes reduce their inputs to three
// channels and delegate here.
type RGB struct {
	Descriptor
}

func NewRGB(d Descriptor) *RGB {
	return &RGB{Descriptor: d}
}

func (c *RGB) Compose(bands []types.Band) (*Result, error) {
	if len(bands) != 3 {
		return nil, fmt.Errorf("%w: expected 3, got %d", ErrBandCount, len(bands))
	}
	data, err := raster.StackGrids(bands[0].Grid, bands[1].Grid, bands[2].Grid)
	if err != nil {
		return nil, fmt.Errorf("composite %q: %w", c.Name, err)
	}

	// Band 0 first, later bands overwrite, the descriptor's own metadata
	// overwrites everything.
	meta := bands[0].Meta.Merge(bands[1].Meta).Merge(bands[2].Meta).Merge(c.Meta)

	// Per-band fields are not well defined for a three-band product.
	meta.WavelengthRange = nil
	meta.Units = ""

	sensors := types.NewSensorSet()
	for _, band := range bands {
		sensors = sensors.Union(band.Meta.Sensor)
	}
	if len(sensors) == 0 {
		sensors = nil
	}
	meta.Sensor = sensors
	meta.Mode = "RGB"

	return &Result{Data: data, Meta: meta}, nil
}
