package composite

import (
	"errors"
	"testing"
	"time"

	"github.com/polarview/satcomp/internal/raster"
	"github.com/polarview/satcomp/internal/types"
)

func band(t *testing.T, name string, fill float64, meta types.Metadata) types.Band {
	t.Helper()
	g, err := raster.FromValues(2, 2, []float64{fill, fill, fill, fill})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	meta.Name = name
	return types.Band{Grid: g, Meta: meta}
}

func TestRGB_StacksInInputOrder(t *testing.T) {
	c := NewRGB(NewDescriptor("overview", "rgb", "0.635,0.85,10.8", nil))

	res, err := c.Compose([]types.Band{
		band(t, "vis006", 1, types.Metadata{}),
		band(t, "vis008", 2, types.Metadata{}),
		band(t, "ir108", 3, types.Metadata{}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if res.Data.Bands() != 3 || res.Data.Rows() != 2 || res.Data.Cols() != 2 {
		t.Fatalf("shape = %dx%dx%d, want 3x2x2", res.Data.Bands(), res.Data.Rows(), res.Data.Cols())
	}
	for i, want := range []float64{1, 2, 3} {
		if got := res.Data.At(i, 0, 0); got != want {
			t.Fatalf("band %d = %v, want %v", i, got, want)
		}
	}
	if res.Meta.Mode != "RGB" {
		t.Fatalf("Mode = %q, want RGB", res.Meta.Mode)
	}
}

func TestRGB_RejectsWrongBandCount(t *testing.T) {
	c := NewRGB(NewDescriptor("overview", "rgb", "", nil))
	two := []types.Band{
		band(t, "a", 1, types.Metadata{}),
		band(t, "b", 2, types.Metadata{}),
	}
	if _, err := c.Compose(two); !errors.Is(err, ErrBandCount) {
		t.Fatalf("2 bands: got %v", err)
	}
	four := append(two,
		band(t, "c", 3, types.Metadata{}),
		band(t, "d", 4, types.Metadata{}))
	if _, err := c.Compose(four); !errors.Is(err, ErrBandCount) {
		t.Fatalf("4 bands: got %v", err)
	}
	if _, err := c.Compose(four[:3]); err != nil {
		t.Fatalf("3 bands must succeed: %v", err)
	}
}

func TestRGB_MetadataMergePrecedence(t *testing.T) {
	t2 := time.Date(2015, 6, 1, 12, 30, 0, 0, time.UTC)
	c := NewRGB(NewDescriptor("overview", "rgb", "", map[string]any{"stretch": "linear"}))

	res, err := c.Compose([]types.Band{
		band(t, "b0", 1, types.Metadata{Extra: map[string]any{"calibration": "b0", "origin": "b0"}}),
		band(t, "b1", 2, types.Metadata{Extra: map[string]any{"calibration": "b1"}}),
		band(t, "b2", 3, types.Metadata{StartTime: t2, Extra: map[string]any{"calibration": "b2"}}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Last band wins across colliding band keys.
	if res.Meta.Extra["calibration"] != "b2" {
		t.Fatalf("calibration = %v, want b2", res.Meta.Extra["calibration"])
	}
	if res.Meta.Extra["origin"] != "b0" {
		t.Fatalf("non-colliding keys must survive: %#v", res.Meta.Extra)
	}
	if !res.Meta.StartTime.Equal(t2) {
		t.Fatalf("StartTime = %v", res.Meta.StartTime)
	}
	// The descriptor's own metadata wins over every band.
	if res.Meta.Name != "overview" {
		t.Fatalf("Name = %q, want descriptor name", res.Meta.Name)
	}
	if res.Meta.Extra["compositor"] != "rgb" || res.Meta.Extra["stretch"] != "linear" {
		t.Fatalf("descriptor metadata missing: %#v", res.Meta.Extra)
	}
}

func TestRGB_DropsPerBandFields(t *testing.T) {
	wr := [2]float64{0.56, 0.71}
	c := NewRGB(NewDescriptor("overview", "rgb", "", nil))

	res, err := c.Compose([]types.Band{
		band(t, "b0", 1, types.Metadata{Units: "%", WavelengthRange: &wr}),
		band(t, "b1", 2, types.Metadata{Units: "%"}),
		band(t, "b2", 3, types.Metadata{Units: "K"}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if res.Meta.Units != "" || res.Meta.WavelengthRange != nil {
		t.Fatalf("units/wavelength range must be dropped: %#v", res.Meta)
	}
}

func TestRGB_SensorAggregation(t *testing.T) {
	c := NewRGB(NewDescriptor("overview", "rgb", "", nil))

	// Two bands agree, one has no sensor: collapses to a single name.
	res, err := c.Compose([]types.Band{
		band(t, "b0", 1, types.Metadata{Sensor: types.NewSensorSet("seviri")}),
		band(t, "b1", 2, types.Metadata{Sensor: types.NewSensorSet("seviri")}),
		band(t, "b2", 3, types.Metadata{}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got, ok := res.Meta.Sensor.Single(); !ok || got != "seviri" {
		t.Fatalf("Sensor = %#v, want single seviri", res.Meta.Sensor)
	}

	// Two distinct sensors stay a set of two.
	res, err = c.Compose([]types.Band{
		band(t, "b0", 1, types.Metadata{Sensor: types.NewSensorSet("seviri")}),
		band(t, "b1", 2, types.Metadata{Sensor: types.NewSensorSet("avhrr")}),
		band(t, "b2", 3, types.Metadata{}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if names := res.Meta.Sensor.Names(); len(names) != 2 || names[0] != "avhrr" || names[1] != "seviri" {
		t.Fatalf("Sensor = %#v", res.Meta.Sensor)
	}

	// No sensors anywhere: field stays empty.
	res, err = c.Compose([]types.Band{
		band(t, "b0", 1, types.Metadata{}),
		band(t, "b1", 2, types.Metadata{}),
		band(t, "b2", 3, types.Metadata{}),
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if res.Meta.Sensor != nil {
		t.Fatalf("Sensor = %#v, want nil", res.Meta.Sensor)
	}
}

func TestRGB_DoesNotMutateInputs(t *testing.T) {
	c := NewRGB(NewDescriptor("overview", "rgb", "", nil))
	b0 := band(t, "b0", 1, types.Metadata{Units: "K"})
	b1 := band(t, "b1", 2, types.Metadata{})
	b2 := band(t, "b2", 3, types.Metadata{})

	if _, err := c.Compose([]types.Band{b0, b1, b2}); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if b0.Grid.At(0, 0) != 1 || b0.Meta.Units != "K" {
		t.Fatalf("input band mutated: %#v", b0.Meta)
	}
}
