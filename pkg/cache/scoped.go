package cache

// ScopedKeyer wraps a Keyer with a prefix so that independent users of one
// backend cannot read each other's entries.
//
//	// Entries written by one server instance group
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "xmlmerge:v1:")
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

// MergeKey generates a prefixed merge key.
func (k *ScopedKeyer) MergeKey(documentHash, scriptHash string, opts MergeKeyOpts) string {
	return k.prefix + k.inner.MergeKey(documentHash, scriptHash, opts)
}
