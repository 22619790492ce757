package transfer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/inodb/ortho-gaf/internal/assoc"
)

// WorkItem holds a parsed association ready for translation.
type WorkItem struct {
	Seq   int
	Assoc *assoc.Association
}

// WorkResult holds the translation output for a single association.
// Out is nil for unmapped subjects (expected attrition).
type WorkResult struct {
	Seq int
	Out *assoc.Association
	Err error
}

// ParallelTranslate translates work items using a pool of workers.
// TranslateOne clones before rewriting, so workers never share mutable
// record state; mapping and genes are read-only for the whole run.
// Results arrive in completion order; use OrderedCollect to consume
// them in sequence-number order. If workers is 0, runtime.NumCPU() is
// used.
func (t *Translator) ParallelTranslate(items <-chan WorkItem, mapping map[string]string, genes GeneLookup, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				out, err := t.TranslateOne(item.Assoc, mapping, genes)
				results <- WorkResult{Seq: item.Seq, Out: out, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are buffered in a pending map and emitted as
// soon as the next expected sequence number is available. Blocks until
// the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// TranslateParallel is the concurrent counterpart of Translate: same
// contract, same output ordering, using the given number of workers.
func (t *Translator) TranslateParallel(it Iterator, mapping map[string]string, genes GeneLookup, workers int) ([]*assoc.Association, error) {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			a, err := it.Next()
			if err != nil {
				readErr = fmt.Errorf("read association: %w", err)
				return
			}
			if a == nil {
				return
			}
			items <- WorkItem{Seq: seq, Assoc: a}
			seq++
		}
	}()

	results := t.ParallelTranslate(items, mapping, genes, workers)

	var out []*assoc.Association
	if err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			return r.Err
		}
		if r.Out != nil {
			out = append(out, r.Out)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if readErr != nil {
		return nil, readErr
	}

	return out, nil
}
