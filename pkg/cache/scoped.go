package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis or Mongo backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// OperationKey generates a prefixed operation key.
func (k *ScopedKeyer) OperationKey(op string, payload any) (string, error) {
	key, err := k.inner.OperationKey(op, payload)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(matrixHash string, opts RenderKeyOpts) (string, error) {
	key, err := k.inner.RenderKey(matrixHash, opts)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}
