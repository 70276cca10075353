package composite

import (
	"fmt"

	"github.com/polarview/satcomp/internal/raster"
	"github.com/polarview/satcomp/internal/types"
)

// The fixed-formula recipes below derive three channels by band
// differences and delegate stacking to RGB. Display calibration ranges
// (e.g. -25 to 0 K on the airmass red channel) are documentation for the
// downstream renderer; no clamping happens here.

func sub(name string, a, b types.Band) (types.Band, error) {
	g, err := raster.Sub(a.Grid, b.Grid)
	if err != nil {
		return types.Band{}, fmt.Errorf("composite %q: %w", name, err)
	}
	return types.Band{Grid: g, Meta: a.Meta.Clone()}, nil
}

// Airmass is the classic airmass RGB:
//
//	R: WV6.2 - WV7.3
//	G: IR9.7 - IR10.8
//	B: WV6.2
type Airmass struct {
	RGB
}

func NewAirmass(d Descriptor) *Airmass {
	return &Airmass{RGB: RGB{Descriptor: d}}
}

func (c *Airmass) Compose(bands []types.Band) (*Result, error) {
	if len(bands) != 4 {
		return nil, fmt.Errorf("%w: expected 4, got %d", ErrBandCount, len(bands))
	}
	r, err := sub(c.Name, bands[0], bands[1])
	if err != nil {
		return nil, err
	}
	g, err := sub(c.Name, bands[2], bands[3])
	if err != nil {
		return nil, err
	}
	b := types.Band{Grid: bands[0].Grid, Meta: bands[0].Meta}
	return c.RGB.Compose([]types.Band{r, g, b})
}

// Convection is the severe convection RGB:
//
//	R: WV6.2 - WV7.3
//	G: IR3.9 - IR10.8
//	B: NIR1.6 - VIS0.6
type Convection struct {
	RGB
}

func NewConvection(d Descriptor) *Convection {
	return &Convection{RGB: RGB{Descriptor: d}}
}

func (c *Convection) Compose(bands []types.Band) (*Result, error) {
	if len(bands) != 6 {
		return nil, fmt.Errorf("%w: expected 6, got %d", ErrBandCount, len(bands))
	}
	r, err := sub(c.Name, bands[3], bands[4])
	if err != nil {
		return nil, err
	}
	g, err := sub(c.Name, bands[2], bands[5])
	if err != nil {
		return nil, err
	}
	b, err := sub(c.Name, bands[1], bands[0])
	if err != nil {
		return nil, err
	}
	return c.RGB.Compose([]types.Band{r, g, b})
}

// Dust is the dust RGB:
//
//	R: IR12.0 - IR10.8
//	G: IR10.8 - IR8.7
//	B: IR10.8
type Dust struct {
	RGB
}

func NewDust(d Descriptor) *Dust {
	return &Dust{RGB: RGB{Descriptor: d}}
}

func (c *Dust) Compose(bands []types.Band) (*Result, error) {
	if len(bands) != 3 {
		return nil, fmt.Errorf("%w: expected 3, got %d", ErrBandCount, len(bands))
	}
	r, err := sub(c.Name, bands[2], bands[1])
	if err != nil {
		return nil, err
	}
	g, err := sub(c.Name, bands[1], bands[0])
	if err != nil {
		return nil, err
	}
	b := types.Band{Grid: bands[1].Grid, Meta: bands[1].Meta}
	return c.RGB.Compose([]types.Band{r, g, b})
}
