package env

// Resolver looks keys up in the process source, then the build source.
// A nil source is unavailable in the current execution context.
// The zero value has no sources and always returns the default.
type Resolver struct {
	process Source
	build   Source
}

// NewResolver returns a Resolver over the given sources. Either may be nil.
func NewResolver(process, build Source) *Resolver {
	return &Resolver{
		process: process,
		build:   build,
	}
}

// Resolve returns the first non-empty value for key, checking the process
// source before the build source. When neither has one it returns the first
// defaultValue, or "" if none was supplied.
func (r *Resolver) Resolve(key string, defaultValue ...string) string {
	if r != nil {
		if v := lookup(r.process, key); v != "" {
			return v
		}
		if v := lookup(r.build, key); v != "" {
			return v
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func lookup(src Source, key string) string {
	if src == nil {
		return ""
	}
	return src.Lookup(key)
}
