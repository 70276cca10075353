package composite

import (
	"fmt"

	"github.com/polarview/satcomp/internal/sunzen"
	"github.com/polarview/satcomp/internal/types"
)

// SunCorrected is the RGB recipe with solar-zenith normalization applied
// to reflective bands first. Only bands in "%" units are corrected; all
// others pass through untouched.
type SunCorrected struct {
	RGB
	norm *sunzen.Normalizer
}

func NewSunCorrected(d Descriptor, norm *sunzen.Normalizer) *SunCorrected {
	return &SunCorrected{RGB: RGB{Descriptor: d}, norm: norm}
}

func (c *SunCorrected) Compose(bands []types.Band) (*Result, error) {
	corrected := make([]types.Band, len(bands))
	copy(corrected, bands)
	for i, band := range corrected {
		if band.Meta.Units != "%" {
			continue
		}
		nb, err := c.norm.Apply(band)
		if err != nil {
			return nil, fmt.Errorf("composite %q: sun correction of band %q: %w", c.Name, band.Meta.Name, err)
		}
		corrected[i] = nb
	}
	return c.RGB.Compose(corrected)
}
