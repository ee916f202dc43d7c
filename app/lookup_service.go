package app

import (
	"context"
	"log"
	"time"

	"reglookup/domain/lookup"
	"reglookup/internal/errors"
	"reglookup/ports"
)

// LookupService resolves registration numbers: fetch the table, then find the row.
// The table is fetched fresh for every call.
type LookupService struct {
	source ports.TableSource
}

var _ ports.RecordFinder = (*LookupService)(nil)

// NewLookupService creates a lookup service over source
func NewLookupService(source ports.TableSource) *LookupService {
	return &LookupService{source: source}
}

// Source returns the table source backing the service
func (s *LookupService) Source() ports.TableSource {
	return s.source
}

// Lookup fetches the table and finds key in it. The key is used as given.
// A fetch failure is returned as a SourceUnavailable error and no lookup is
// attempted; a missing key is a NotFound result, never an error.
func (s *LookupService) Lookup(ctx context.Context, key string) (lookup.Result, error) {
	startTime := time.Now()

	table, err := s.source.Fetch(ctx)
	if err != nil {
		log.Printf("[LookupService] fetch from %s failed after %s [%s]: %v",
			s.source.Describe(), time.Since(startTime).Round(time.Millisecond), errors.GetCode(err), err)
		return lookup.NotFound(), errors.SourceUnavailable(s.source.Describe(), err)
	}

	result := lookup.Find(table, key)

	outcome := "not found"
	if result.Found {
		outcome = "found"
	}
	log.Printf("[LookupService] key=%q %s in %d data rows (%s)",
		key, outcome, len(table.DataRows()), time.Since(startTime).Round(time.Millisecond))

	return result, nil
}

// Inspect fetches the table and reports its header and data row count
func (s *LookupService) Inspect(ctx context.Context) (lookup.Header, int, error) {
	table, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, 0, errors.SourceUnavailable(s.source.Describe(), err)
	}
	return table.Header(), len(table.DataRows()), nil
}
