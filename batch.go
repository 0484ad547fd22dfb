package lingopack

import (
	"context"
	"sync"
)

// DefaultBatchWorkers is the worker count used by TranslateAll when none is
// given.
const DefaultBatchWorkers = 4

// TranslateAll translates texts concurrently through the facade, preserving
// input order. Each element follows the full Translate path, so the result is
// total like Translate itself: failed elements come back unchanged.
//
// Concurrent elements that need the same uninstalled pair are exactly the
// contended case the package cache is built for: one of them downloads, the
// rest pass through untranslated and succeed on a later call.
func (t *Translator) TranslateAll(ctx context.Context, texts []string, sourceDisplay, targetDisplay string, workers int) []string {
	results := make([]string, len(texts))
	if len(texts) == 0 {
		return results
	}

	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = t.Translate(ctx, texts[idx], sourceDisplay, targetDisplay)
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
