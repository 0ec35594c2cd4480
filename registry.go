package vinayanotes

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Registry owns the two process-wide accumulations of a generation run:
// the set of document names already written (collision detection) and the
// segment-identifier→path index other documents use for cross-linking.
// Both are append-only for the duration of a run. A mutex keeps the
// single-writer discipline even when callers prefetch concurrently;
// rendering itself stays sequential.
type Registry struct {
	mu       sync.Mutex
	reserved map[string]struct{}
	exact    map[string]string
	ranges   []segmentRange
}

type segmentRange struct {
	StartID string `json:"start"`
	EndID   string `json:"end,omitempty"`
	Path    string `json:"path"`

	uid        string
	start, end []int
}

// NewRegistry creates an empty registry for one generation run.
func NewRegistry() *Registry {
	return &Registry{
		reserved: make(map[string]struct{}),
		exact:    make(map[string]string),
	}
}

// Reserve claims a document name for this run. Names are compared
// case-insensitively, matching the case-insensitive filesystems the vault
// may land on. A name already claimed is a CollisionError and fatal to
// the run: corpus generation is all-or-nothing.
func (r *Registry) Reserve(name string) error {
	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.reserved[key]; dup {
		return &CollisionError{Name: name}
	}
	r.reserved[key] = struct{}{}
	return nil
}

// Record indexes a path under a segment identifier, or under an inclusive
// identifier range when endID is non-empty. Later lookups of any id inside
// the range resolve to path. An endID that does not parse as a dotted
// numeric segment of the same text uid restricts the entry to exact-match
// lookup; the entry is still exported.
func (r *Registry) Record(startID, endID, path string) {
	entry := segmentRange{StartID: startID, EndID: endID, Path: path}
	entry.uid, entry.start = splitSegmentID(startID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[startID] = path
	if endID != "" && endID != startID {
		if uid, end := splitSegmentID(endID); uid == entry.uid && entry.start != nil && end != nil {
			entry.end = end
		}
		r.exact[endID] = path
	}
	r.ranges = append(r.ranges, entry)
}

// Lookup resolves a segment identifier to a recorded path: exact match
// first, then containment in a recorded range of the same text uid.
func (r *Registry) Lookup(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path, ok := r.exact[id]; ok {
		return path, true
	}
	uid, seg := splitSegmentID(id)
	if seg == nil {
		return "", false
	}
	for _, entry := range r.ranges {
		if entry.uid != uid || entry.start == nil || entry.end == nil {
			continue
		}
		if compareSegments(entry.start, seg) <= 0 && compareSegments(seg, entry.end) <= 0 {
			return entry.Path, true
		}
	}
	return "", false
}

// WriteJSON exports the identifier→path index with paths made relative to
// base, for consumption by other vault-building modules.
func (r *Registry) WriteJSON(w io.Writer, base string) error {
	r.mu.Lock()
	out := make([]segmentRange, len(r.ranges))
	copy(out, r.ranges)
	r.mu.Unlock()

	for i := range out {
		if rel, err := filepath.Rel(base, out[i].Path); err == nil {
			out[i].Path = filepath.ToSlash(rel)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartID < out[j].StartID })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// splitSegmentID parses "pli-tv-bu-vb-pj1:8.1.3" into the text uid and
// the dotted numeric segment parts. A missing or non-numeric segment part
// yields a nil slice, which restricts that id to exact-match lookup.
func splitSegmentID(id string) (string, []int) {
	uid, seg, ok := strings.Cut(id, ":")
	if !ok {
		return id, nil
	}
	parts := strings.Split(seg, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return uid, nil
		}
		nums[i] = n
	}
	return uid, nums
}

// compareSegments orders dotted segment ids componentwise; a shorter id
// that prefixes a longer one sorts first ("2.1" < "2.1.1").
func compareSegments(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
