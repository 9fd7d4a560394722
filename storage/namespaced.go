package storage

import "context"

// Namespaced prefixes every key, giving each browser session its own slice of the key space
type Namespaced struct {
	inner  Storage
	prefix string
}

// NewNamespaced wraps inner so that keys become "<namespace>:<key>"
func NewNamespaced(inner Storage, namespace string) *Namespaced {
	return &Namespaced{inner: inner, prefix: namespace + ":"}
}

var _ Storage = (*Namespaced)(nil)

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}
