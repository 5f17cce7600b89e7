package worker

import (
	"context"
	"sync"

	"github.com/KusmierczykHobbyPrjs/photos-organizer/pkg/filedate"
)

// Extractor dates one path
type Extractor interface {
	Extract(path string) (filedate.Result, error)
}

// Result is the outcome of dating one path
type Result struct {
	Path  string
	Date  filedate.Result
	Error error
}

// Pool dates files concurrently. Reading EXIF headers and stat calls
// dominate a run on large photo folders.
type Pool struct {
	extractor   Extractor
	concurrency int
}

// NewPool creates a new worker pool
func NewPool(extractor Extractor, concurrency int) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// Execute dates every path. Results come back in input order.
func (p *Pool) Execute(ctx context.Context, paths []string) ([]Result, error) {
	type job struct {
		index int
		path  string
	}

	jobs := make(chan job, len(paths))
	results := make([]Result, len(paths))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					results[j.index] = Result{Path: j.path, Error: ctx.Err()}
					continue
				default:
				}

				date, err := p.extractor.Extract(j.path)
				results[j.index] = Result{Path: j.path, Date: date, Error: err}
			}
		}()
	}

	// Send jobs
	for i, path := range paths {
		jobs <- job{index: i, path: path}
	}
	close(jobs)

	// Wait for workers to finish
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Cache serves dates computed ahead by a pool. Paths it has not seen are
// dated on demand.
type Cache struct {
	next    Extractor
	mu      sync.Mutex
	results map[string]Result
}

// Prefetch dates paths with the pool and returns a cache over the results
func (p *Pool) Prefetch(ctx context.Context, paths []string) (*Cache, error) {
	results, err := p.Execute(ctx, paths)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		next:    p.extractor,
		results: make(map[string]Result, len(results)),
	}
	for _, r := range results {
		c.results[r.Path] = r
	}
	return c, nil
}

func (c *Cache) Extract(path string) (filedate.Result, error) {
	c.mu.Lock()
	r, ok := c.results[path]
	c.mu.Unlock()
	if ok {
		return r.Date, r.Error
	}

	date, err := c.next.Extract(path)
	c.mu.Lock()
	c.results[path] = Result{Path: path, Date: date, Error: err}
	c.mu.Unlock()
	return date, err
}
