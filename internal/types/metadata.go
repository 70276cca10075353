package types

import (
	"errors"
	"time"

	"github.com/polarview/satcomp/internal/raster"
)

// ErrMissingMetadata is returned when an operation needs a metadata field
// (start time, area) the caller did not supply. This is a caller
// configuration error, never retried.
var ErrMissingMetadata = errors.New("missing required metadata")

// Metadata is the acquisition context attached to a band. Named fields
// cover the keys this module interprets; anything else rides along in
// Extra and follows the same merge rules.
type Metadata struct {
	Name            string
	StartTime       time.Time
	Area            Area
	Units           string
	Sensor          SensorSet
	WavelengthRange *[2]float64
	Mode            string
	Extra           map[string]any
}

// Merge overlays o on top of m and returns the result: fields set in o win,
// fields unset in o keep m's value. Extra keys overwrite one by one.
// Neither receiver nor argument is modified.
func (m Metadata) Merge(o Metadata) Metadata {
	out := m.Clone()
	if o.Name != "" {
		out.Name = o.Name
	}
	if !o.StartTime.IsZero() {
		out.StartTime = o.StartTime
	}
	if o.Area != nil {
		out.Area = o.Area
	}
	if o.Units != "" {
		out.Units = o.Units
	}
	if len(o.Sensor) > 0 {
		out.Sensor = o.Sensor.Clone()
	}
	if o.WavelengthRange != nil {
		wr := *o.WavelengthRange
		out.WavelengthRange = &wr
	}
	if o.Mode != "" {
		out.Mode = o.Mode
	}
	if len(o.Extra) > 0 {
		if out.Extra == nil {
			out.Extra = make(map[string]any, len(o.Extra))
		}
		for k, v := range o.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Clone returns a copy that shares no mutable state with the receiver.
// Area is a shared reference; areas are immutable by contract.
func (m Metadata) Clone() Metadata {
	out := m
	out.Sensor = m.Sensor.Clone()
	if m.WavelengthRange != nil {
		wr := *m.WavelengthRange
		out.WavelengthRange = &wr
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Band is one channel's measurement grid plus its acquisition metadata.
type Band struct {
	Grid *raster.Grid
	Meta Metadata
}
