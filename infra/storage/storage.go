package storage

import (
	"context"
	"errors"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the object storage contract used by the validation job.
// List returns an empty slice, not an error, when nothing exists under prefix.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
