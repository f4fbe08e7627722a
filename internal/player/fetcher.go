package player

import (
	"context"
	"sync"
)

// DefaultConcurrency is the default number of in-flight segment fetches.
const DefaultConcurrency = 3

// FetchResult is the outcome of fetching one URI. Exactly one of Data and
// Err is set.
type FetchResult struct {
	Data []byte
	Err  error
}

// SegmentFetcher downloads an ordered list of URIs concurrently while
// preserving input order in the results.
type SegmentFetcher struct {
	transport   Transport
	concurrency int
}

// NewSegmentFetcher returns a fetcher that keeps at most concurrency fetches
// in flight. If concurrency <= 0, DefaultConcurrency is used.
func NewSegmentFetcher(transport Transport, concurrency int) *SegmentFetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &SegmentFetcher{transport: transport, concurrency: concurrency}
}

// Fetch downloads all uris and returns results aligned index-for-index with
// the input, regardless of completion order. Each worker writes only its own
// slot, so the pre-sized results slice needs no extra locking.
func (f *SegmentFetcher) Fetch(ctx context.Context, uris []string) []FetchResult {
	results := make([]FetchResult, len(uris))
	sem := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for i, uri := range uris {
		wg.Add(1)
		go func(i int, uri string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := f.transport.Fetch(ctx, uri)
			results[i] = FetchResult{Data: data, Err: err}
		}(i, uri)
	}

	wg.Wait()
	return results
}

// FirstError returns the lowest-index error in results, or nil if every
// fetch succeeded.
func FirstError(results []FetchResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
