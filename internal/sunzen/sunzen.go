// Package sunzen corrects reflective bands for illumination geometry by
// dividing out the cosine of the solar zenith angle. Angle grids are
// expensive, so they are cached for the life of the process keyed by
// acquisition time and area.
package sunzen

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/polarview/satcomp/internal/pkg/envutil"
	"github.com/polarview/satcomp/internal/pkg/logger"
	"github.com/polarview/satcomp/internal/raster"
	"github.com/polarview/satcomp/internal/types"
)

// Cosine-of-zenith values below ~0.035 sit beyond ~88° zenith angle; the
// correction blows up near the terminator, so such cells are masked.
// Bounds are inclusive.
const (
	minCosZenith = 0.035
	maxCosZenith = 1.0
)

// cacheMaxEntriesEnv bounds the angle cache (oldest entry evicted first).
// Unset or 0 keeps the cache unbounded.
const cacheMaxEntriesEnv = "SATCOMP_SUNZEN_CACHE_MAX_ENTRIES"

// CosZenithFunc computes the cosine of the solar zenith angle at t for
// every cell of the lon/lat grids. Supplied by the ephemeris collaborator.
type CosZenithFunc func(t time.Time, lons, lats *raster.Grid) (*raster.Grid, error)

type cacheKey struct {
	startUnixNano int64
	area          string
}

// Normalizer divides band values by cos(solar zenith angle), memoizing the
// angle grid per (start time, area name). Safe for concurrent use.
type Normalizer struct {
	fn         CosZenithFunc
	log        *logger.Logger
	maxEntries int

	group singleflight.Group

	mu    sync.Mutex
	cache map[cacheKey]*raster.Grid
	order []cacheKey
}

func NewNormalizer(fn CosZenithFunc, log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{
		fn:         fn,
		log:        log.With("service", "SunZenithNormalizer"),
		maxEntries: envutil.Int(cacheMaxEntriesEnv, 0),
		cache:      make(map[cacheKey]*raster.Grid),
	}
}

// Apply returns a new band whose values are the input divided by
// cos(solar zenith angle) at each cell. Cells are masked where the input
// was masked or where the cosine falls outside [0.035, 1]. Metadata is
// carried over untouched.
func (n *Normalizer) Apply(band types.Band) (types.Band, error) {
	if band.Meta.StartTime.IsZero() {
		return types.Band{}, fmt.Errorf("%w: start_time", types.ErrMissingMetadata)
	}
	if band.Meta.Area == nil {
		return types.Band{}, fmt.Errorf("%w: area", types.ErrMissingMetadata)
	}

	coszen, err := n.cosZenith(band.Meta.StartTime, band.Meta.Area)
	if err != nil {
		return types.Band{}, err
	}
	out, err := raster.Div(band.Grid, coszen)
	if err != nil {
		return types.Band{}, fmt.Errorf("sunzen: band does not match area grid: %w", err)
	}
	return types.Band{Grid: out, Meta: band.Meta.Clone()}, nil
}

func (n *Normalizer) cosZenith(start time.Time, area types.Area) (*raster.Grid, error) {
	key := cacheKey{startUnixNano: start.UnixNano(), area: area.Name()}

	n.mu.Lock()
	if g, ok := n.cache[key]; ok {
		n.mu.Unlock()
		return g, nil
	}
	n.mu.Unlock()

	// Collapse concurrent computations of the same key; both callers get
	// the one result.
	flightKey := fmt.Sprintf("%d/%s", key.startUnixNano, key.area)
	v, err, _ := n.group.Do(flightKey, func() (any, error) {
		lons, lats, err := area.Lonlats()
		if err != nil {
			return nil, fmt.Errorf("sunzen: lonlats for area %q: %w", area.Name(), err)
		}
		n.log.Debug("computing sun zenith angles", "start_time", start, "area", area.Name())
		raw, err := n.fn(start, lons, lats)
		if err != nil {
			return nil, fmt.Errorf("sunzen: cos zenith for area %q: %w", area.Name(), err)
		}
		g := raw.MaskOutside(minCosZenith, maxCosZenith)
		n.store(key, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*raster.Grid), nil
}

func (n *Normalizer) store(key cacheKey, g *raster.Grid) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.cache[key]; ok {
		return
	}
	if n.maxEntries > 0 {
		for len(n.cache) >= n.maxEntries {
			oldest := n.order[0]
			n.order = n.order[1:]
			delete(n.cache, oldest)
		}
	}
	n.cache[key] = g
	n.order = append(n.order, key)
}

// CacheLen reports the number of cached angle grids.
func (n *Normalizer) CacheLen() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cache)
}
