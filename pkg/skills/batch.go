package skills

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/skillref/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds the goroutines used by QualifyBatch
const DefaultBatchConcurrency = 8

// BatchResult is the outcome of qualifying one raw input of a batch
type BatchResult struct {
	Output   []byte
	Modified bool
}

// QualifyBatch runs QualifyJSON over inputs concurrently and returns the
// results in input order. Entries that are not valid JSON are passed through
// unchanged and reported together in the returned error; the results are
// complete either way unless ctx is cancelled.
func (r *Resolver) QualifyBatch(ctx context.Context, inputs [][]byte, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(inputs))

	var (
		mu      sync.Mutex
		invalid *multierror.Error
	)

	err := telemetry.WithSpan(ctx, "skills.qualify_batch", func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		for i, raw := range inputs {
			i, raw := i, raw
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				if !gjson.ValidBytes(raw) {
					mu.Lock()
					invalid = multierror.Append(invalid, errors.Errorf("input %d is not valid JSON", i+1))
					mu.Unlock()
					results[i] = BatchResult{Output: raw}
					return nil
				}

				out, modified := r.QualifyJSON(gctx, raw)
				results[i] = BatchResult{Output: out, Modified: modified}
				return nil
			})
		}

		return g.Wait()
	}, attribute.Int("batch.size", len(inputs)))
	if err != nil {
		return results, errors.Wrap(err, "skill batch interrupted")
	}

	return results, invalid.ErrorOrNil()
}
