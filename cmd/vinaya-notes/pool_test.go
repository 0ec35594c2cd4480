package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"testing"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(6); got != 6 {
		t.Errorf("resolvePoolSize(6) = %d, want the explicit value", got)
	}
	auto := resolvePoolSize(0)
	if auto < 4 {
		t.Errorf("resolvePoolSize(0) = %d, want at least 4", auto)
	}
	if want := runtime.NumCPU() * 2; auto != want && auto != 4 {
		t.Errorf("resolvePoolSize(0) = %d, want %d or the floor of 4", auto, want)
	}
}

func TestPrefetch(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path]++
		mu.Unlock()
		fmt.Fprint(w, `{"keys_order": ["x:1.1"]}`)
	}))
	defer srv.Close()

	client := corpus.NewClient(corpus.WithBaseURL(srv.URL), corpus.WithTranslator("brahmali"))
	uids := []string{"pli-tv-bu-vb-pj1", "pli-tv-bu-vb-pj2", "pli-tv-bu-vb-pj3"}
	prefetch(context.Background(), client, uids, 2, func(string, ...any) {})

	mu.Lock()
	defer mu.Unlock()
	for _, uid := range uids {
		path := "/api/bilarasuttas/" + uid + "/brahmali"
		if seen[path] != 1 {
			t.Errorf("uid %s fetched %d times, want 1", uid, seen[path])
		}
	}
}

func TestPrefetchWarnsOnFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := corpus.NewClient(corpus.WithBaseURL(srv.URL))
	var mu sync.Mutex
	warned := 0
	prefetch(context.Background(), client, []string{"a", "b"}, 2, func(string, ...any) {
		mu.Lock()
		warned++
		mu.Unlock()
	})
	if warned != 2 {
		t.Errorf("warned %d times, want 2 (failures are warnings, not errors)", warned)
	}
}

func TestPrefetchHonorsCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := corpus.NewClient(corpus.WithBaseURL(srv.URL))
	uids := make([]string, 100)
	for i := range uids {
		uids[i] = fmt.Sprintf("uid-%d", i)
	}
	// Must return rather than hang on a canceled context.
	prefetch(ctx, client, uids, 2, func(string, ...any) {})
}
