package rental

import (
	"context"
	"io"
)

// Source abstracts where a CSV table comes from (local file, HTTP endpoint).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory dataset store must satisfy.
type Store interface {
	Save(ds Dataset)
	Current() (Dataset, error)
}
