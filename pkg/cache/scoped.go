package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend.
//
//	tenant := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey implements Keyer.
func (k *ScopedKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(documentHash, opts)
}
