package env

import (
	"maps"
	"os"
	"slices"
)

// Source is a read-only string mapping. Missing keys yield "".
type Source interface {
	Lookup(key string) string
}

// ProcessSource reads the environment of the running process.
type ProcessSource struct{}

// Lookup returns the process environment value for key.
func (ProcessSource) Lookup(key string) string {
	return os.Getenv(key)
}

// MapSource is an immutable mapping copied at construction.
type MapSource struct {
	values map[string]string
}

// NewMapSource copies values into a new MapSource.
func NewMapSource(values map[string]string) MapSource {
	return MapSource{values: maps.Clone(values)}
}

// Lookup returns the value stored for key, or "" when absent.
func (m MapSource) Lookup(key string) string {
	return m.values[key]
}

// Keys returns the sorted keys of the mapping.
func (m MapSource) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// Len reports the number of entries.
func (m MapSource) Len() int {
	return len(m.values)
}

// Merge layers sources left to right; later entries win.
func Merge(sources ...MapSource) MapSource {
	out := make(map[string]string)
	for _, src := range sources {
		maps.Copy(out, src.values)
	}
	return MapSource{values: out}
}
