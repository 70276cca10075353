package types

import "sort"

// SensorSet is the set of instrument names a band (or composite) was
// measured by. Always set-valued; rendering a single sensor as a bare
// string is a presentation concern, see Single.
type SensorSet map[string]struct{}

func NewSensorSet(names ...string) SensorSet {
	s := make(SensorSet, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s SensorSet) Add(name string) {
	if name != "" {
		s[name] = struct{}{}
	}
}

// Union returns a new set holding the members of both sets.
func (s SensorSet) Union(o SensorSet) SensorSet {
	out := make(SensorSet, len(s)+len(o))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range o {
		out[n] = struct{}{}
	}
	return out
}

// Names returns the members in sorted order.
func (s SensorSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Single returns the sole member when the set has exactly one.
func (s SensorSet) Single() (string, bool) {
	if len(s) != 1 {
		return "", false
	}
	for n := range s {
		return n, true
	}
	return "", false
}

func (s SensorSet) Clone() SensorSet {
	if s == nil {
		return nil
	}
	out := make(SensorSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}
