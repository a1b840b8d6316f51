package ecdsa

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// errStopped cancels the remaining workers after the first invalid record
// when StopOnFirstFailure is set.
var errStopped = errors.New("batch verification stopped at first failure")

// BatchConfig configures a BatchVerifier.
type BatchConfig struct {
	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// StopOnFirstFailure cancels the remaining work after the first invalid
	// record is seen.
	StopOnFirstFailure bool
}

// DefaultBatchConfig returns a sensible default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers:         0, // Auto-detect
		StopOnFirstFailure: false,
	}
}

// BatchResult summarizes a batch verification.
type BatchResult struct {
	Total   int   // Number of records submitted
	Checked int   // Number of records actually verified
	Valid   int   // Number of valid records
	Invalid []int // Indices of invalid records, ascending
	Stopped bool  // Whether StopOnFirstFailure ended the run early
}

// AllValid reports whether every submitted record was checked and valid.
func (r *BatchResult) AllValid() bool {
	return r.Checked == r.Total && len(r.Invalid) == 0
}

// BatchVerifier verifies many records in parallel.
type BatchVerifier struct {
	config BatchConfig
	log    *logrus.Entry
}

// NewBatchVerifier creates a verifier with the default configuration.
func NewBatchVerifier() *BatchVerifier {
	return &BatchVerifier{
		config: DefaultBatchConfig(),
		log:    logrus.StandardLogger().WithField("component", "batch-verify"),
	}
}

// WithConfig sets the configuration.
func (b *BatchVerifier) WithConfig(config BatchConfig) *BatchVerifier {
	b.config = config
	return b
}

// WithLogger sets the logger used for progress reporting.
func (b *BatchVerifier) WithLogger(log *logrus.Entry) *BatchVerifier {
	b.log = log
	return b
}

// Verify checks every record and reports which ones are invalid. A nil
// record counts as invalid. The returned error is non-nil only when ctx is
// cancelled.
//
// Args:
//   - ctx: Context for cancellation
//   - records: Records to verify
//
// Returns:
//   - Summary of the run, error if the context was cancelled
func (b *BatchVerifier) Verify(ctx context.Context, records []*Record) (*BatchResult, error) {
	numWorkers := b.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(records) && len(records) > 0 {
		numWorkers = len(records)
	}

	log := b.log.WithFields(logrus.Fields{
		"records": len(records),
		"workers": numWorkers,
	})
	log.Info("Starting batch verification")

	var (
		checked int64
		valid   int64
		mu      sync.Mutex
		invalid []int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	workChan := make(chan int, numWorkers*10)

	// Generate work
	eg.Go(func() error {
		defer close(workChan)
		for i := range records {
			select {
			case <-egCtx.Done():
				return nil
			case workChan <- i:
			}
		}
		return nil
	})

	for w := 0; w < numWorkers; w++ {
		eg.Go(func() error {
			for i := range workChan {
				if egCtx.Err() != nil {
					return nil
				}

				rec := records[i]
				ok := rec != nil && rec.Verify()
				atomic.AddInt64(&checked, 1)
				if ok {
					atomic.AddInt64(&valid, 1)
					continue
				}

				log.WithField("index", i).Debug("Invalid signature")
				mu.Lock()
				invalid = append(invalid, i)
				mu.Unlock()

				if b.config.StopOnFirstFailure {
					return errStopped
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	stopped := errors.Is(err, errStopped)
	if err != nil && !stopped {
		return nil, err
	}
	if !stopped && int(atomic.LoadInt64(&checked)) < len(records) && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sort.Ints(invalid)
	result := &BatchResult{
		Total:   len(records),
		Checked: int(atomic.LoadInt64(&checked)),
		Valid:   int(atomic.LoadInt64(&valid)),
		Invalid: invalid,
		Stopped: stopped,
	}

	log.WithFields(logrus.Fields{
		"checked": result.Checked,
		"valid":   result.Valid,
		"invalid": len(result.Invalid),
	}).Info("Batch verification finished")
	return result, nil
}
