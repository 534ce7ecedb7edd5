package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when one Redis instance backs several workspaces: each workspace
// gets its own cache namespace.
//
// Example usage:
//
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:acme:")
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

// ComposeKey generates a prefixed key for composed-view caching.
func (k *ScopedKeyer) ComposeKey(snapshotHash, viewHash string) string {
	return k.prefix + k.inner.ComposeKey(snapshotHash, viewHash)
}

// RenderKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) RenderKey(composeHash, format string) string {
	return k.prefix + k.inner.RenderKey(composeHash, format)
}
