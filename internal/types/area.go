package types

import (
	"fmt"

	"github.com/polarview/satcomp/internal/raster"
)

// Area describes the geolocation of a band: a stable identity plus matched
// longitude/latitude sampling grids. Projection math lives with the
// collaborator that builds areas, not here.
type Area interface {
	Name() string
	Lonlats() (lons, lats *raster.Grid, err error)
}

// LonlatArea is an Area backed by precomputed lon/lat grids.
type LonlatArea struct {
	name string
	lons *raster.Grid
	lats *raster.Grid
}

func NewLonlatArea(name string, lons, lats *raster.Grid) (*LonlatArea, error) {
	if name == "" {
		return nil, fmt.Errorf("types: area name is empty")
	}
	if lons.Rows() != lats.Rows() || lons.Cols() != lats.Cols() {
		return nil, fmt.Errorf("types: lon grid %dx%d does not match lat grid %dx%d",
			lons.Rows(), lons.Cols(), lats.Rows(), lats.Cols())
	}
	return &LonlatArea{name: name, lons: lons, lats: lats}, nil
}

func (a *LonlatArea) Name() string { return a.name }

func (a *LonlatArea) Lonlats() (*raster.Grid, *raster.Grid, error) {
	return a.lons, a.lats, nil
}
