package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple tenants of a shared
// backend (the server's redis instance) get separate namespaces.
//
// Example usage:
//
//	// Per-library keys on the server
//	libKeyer := NewScopedKeyer(NewDefaultKeyer(), "lib:acme:")
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

// ExportKey generates a prefixed key for generated export code.
func (k *ScopedKeyer) ExportKey(closureHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(closureHash, opts)
}
