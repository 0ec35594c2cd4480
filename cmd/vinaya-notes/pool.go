package main

import (
	"context"
	"runtime"
	"sync"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
)

// resolvePoolSize converts a user-supplied worker count to an effective
// pool size. Prefetching is network-bound, so the auto size leans above
// the CPU count.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.NumCPU() * 2
	if n < 4 {
		n = 4
	}
	return n
}

// prefetch warms the response cache for a list of text uids with a fixed
// pool of workers. Rendering still fetches every text itself (and then
// hits the cache), so a prefetch failure is only a warning: the render
// pass retries the fetch and surfaces the real error with context.
func prefetch(ctx context.Context, client *corpus.Client, uids []string, workers int, warnf func(format string, args ...any)) {
	ch := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for uid := range ch {
				if _, err := client.Text(ctx, uid); err != nil {
					warnf("prefetching %s: %v", uid, err)
				}
			}
		}()
	}
	for _, uid := range uids {
		select {
		case ch <- uid:
		case <-ctx.Done():
			close(ch)
			wg.Wait()
			return
		}
	}
	close(ch)
	wg.Wait()
}
