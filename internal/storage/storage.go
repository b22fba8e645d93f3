// Package storage is the client-local persistence boundary of the storefront:
// a small string-keyed blob store standing in for the browser's local storage.
package storage

import "context"

// Store reads and writes opaque values under fixed keys. Callers own
// serialization; a missing key surfaces as domain.ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
