package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several token stores
// can share one Redis database without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "store:marketing:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResolutionKey generates a prefixed resolution key.
func (k *ScopedKeyer) ResolutionKey(sources any, fallbacks, overrides map[string]any, options any) string {
	return k.prefix + k.inner.ResolutionKey(sources, fallbacks, overrides, options)
}
