package ports

import (
	"context"

	"reglookup/domain/lookup"
)

// TableSource yields a fresh snapshot of the registration table on every call.
// Row 0 of the returned table is the header. Timeouts are the source's concern.
type TableSource interface {
	Fetch(ctx context.Context) (lookup.Table, error)

	// Describe names the backing dataset for logs and health checks
	Describe() string
}

// RecordFinder resolves a registration number against a TableSource
type RecordFinder interface {
	Lookup(ctx context.Context, key string) (lookup.Result, error)
}
