package repository

import "context"

// KVStore is the key-value backend the repositories persist JSON blobs in.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
