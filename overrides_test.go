package vinayanotes

import (
	"errors"
	"testing"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
)

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	data := []byte(`
definition_ranges:
  "pli-tv-bu-vb-ss2:2.1.4": "pli-tv-bu-vb-ss2:2.1.12"
root_text:
  "pli-tv-bu-vb-pc1:1.2": "replacement text"
reorders:
  - rule: pli-tv-bu-vb-ss4
    op: swap
    i: 11
    j: 12
`)
	o, err := LoadOverrides(data)
	if err != nil {
		t.Fatalf("LoadOverrides() unexpected error: %v", err)
	}
	if o.DefinitionRanges["pli-tv-bu-vb-ss2:2.1.4"] != "pli-tv-bu-vb-ss2:2.1.12" {
		t.Errorf("definition range not loaded: %v", o.DefinitionRanges)
	}
	if len(o.Reorders) != 1 || o.Reorders[0].Op != "swap" {
		t.Errorf("reorder not loaded: %v", o.Reorders)
	}

	// Unknown keys must be rejected, not ignored.
	if _, err := LoadOverrides([]byte("root_txt:\n  a: b\n")); err == nil {
		t.Error("LoadOverrides() accepted a misspelled key")
	}
}

func TestOverridesRootTextFor(t *testing.T) {
	t.Parallel()

	text := &corpus.Text{RootText: map[string]string{"x:1.1": "original"}}
	o := &Overrides{RootText: map[string]string{"x:1.1": "patched"}}

	if got := o.RootTextFor(text, "x:1.1"); got != "patched" {
		t.Errorf("RootTextFor() = %q, want the override", got)
	}
	if got := (&Overrides{}).RootTextFor(text, "x:1.1"); got != "original" {
		t.Errorf("RootTextFor() = %q, want the corpus text", got)
	}
	var nilO *Overrides
	if got := nilO.RootTextFor(text, "x:1.1"); got != "original" {
		t.Errorf("nil RootTextFor() = %q, want the corpus text", got)
	}
}

func defRefs(terms ...string) []corpus.DefinitionRef {
	refs := make([]corpus.DefinitionRef, len(terms))
	for i, term := range terms {
		refs[i] = corpus.DefinitionRef{TermKey: term}
	}
	return refs
}

func termKeys(refs []corpus.DefinitionRef) []string {
	keys := make([]string, len(refs))
	for i, r := range refs {
		keys[i] = r.TermKey
	}
	return keys
}

func TestOverridesApplyReorders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reorder Reorder
		in      []string
		want    []string
		wantErr bool
	}{
		{
			name:    "swap",
			reorder: Reorder{Rule: "r", Op: "swap", I: 0, J: 2},
			in:      []string{"a", "b", "c"},
			want:    []string{"c", "b", "a"},
		},
		{
			name:    "move pulls a later entry forward",
			reorder: Reorder{Rule: "r", Op: "move", I: 0, J: 2},
			in:      []string{"a", "b", "c", "d"},
			want:    []string{"c", "a", "b", "d"},
		},
		{
			name:    "delete",
			reorder: Reorder{Rule: "r", Op: "delete", I: 1},
			in:      []string{"a", "b", "c"},
			want:    []string{"a", "c"},
		},
		{
			name:    "swap out of range",
			reorder: Reorder{Rule: "r", Op: "swap", I: 0, J: 9},
			in:      []string{"a", "b"},
			wantErr: true,
		},
		{
			name:    "unknown op",
			reorder: Reorder{Rule: "r", Op: "rotate", I: 0},
			in:      []string{"a"},
			wantErr: true,
		},
		{
			name:    "other rule untouched",
			reorder: Reorder{Rule: "other", Op: "delete", I: 0},
			in:      []string{"a", "b"},
			want:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := &Overrides{Reorders: []Reorder{tt.reorder}}
			got, err := o.ApplyReorders("r", defRefs(tt.in...), nil)
			if tt.wantErr {
				if !errors.Is(err, ErrOverride) {
					t.Fatalf("ApplyReorders() error = %v, want ErrOverride", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyReorders() unexpected error: %v", err)
			}
			keys := termKeys(got)
			if len(keys) != len(tt.want) {
				t.Fatalf("ApplyReorders() = %v, want %v", keys, tt.want)
			}
			for i, w := range tt.want {
				if keys[i] != w {
					t.Errorf("ApplyReorders() = %v, want %v", keys, tt.want)
					break
				}
			}
		})
	}
}

func TestOverridesPeReference(t *testing.T) {
	t.Parallel()

	o := &Overrides{PeReferences: []PeReference{
		{Collection: "bu", Terms: []string{"alpha", "beta"}, SegmentID: "x:1.1"},
		{Collection: "bi", TermPrefix: "gam", SegmentID: "y:2.2"},
	}}

	tests := []struct {
		name       string
		collection string
		term       string
		want       string
		wantOK     bool
	}{
		{name: "exact term match", collection: "bu", term: "beta", want: "x:1.1", wantOK: true},
		{name: "prefix match", collection: "bi", term: "gamma", want: "y:2.2", wantOK: true},
		{name: "wrong collection", collection: "bi", term: "alpha", wantOK: false},
		{name: "unlisted term", collection: "bu", term: "delta", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := o.PeReference(tt.collection, tt.term)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PeReference(%q, %q) = (%q, %v), want (%q, %v)",
					tt.collection, tt.term, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOverridesApplyCommentFixes(t *testing.T) {
	t.Parallel()

	o := &Overrides{CommentFixes: []CommentFix{
		{Segment: "x:1.1", Search: "teh", Replace: "the"},
	}}

	text := &corpus.Text{CommentText: map[string]string{"x:1.1": "teh note"}}
	if err := o.ApplyCommentFixes(text); err != nil {
		t.Fatalf("ApplyCommentFixes() unexpected error: %v", err)
	}
	if text.CommentText["x:1.1"] != "the note" {
		t.Errorf("comment = %q, want %q", text.CommentText["x:1.1"], "the note")
	}

	// A fix whose search string is gone means the corpus moved: abort.
	stale := &corpus.Text{CommentText: map[string]string{"x:1.1": "already fixed"}}
	if err := o.ApplyCommentFixes(stale); !errors.Is(err, ErrOverride) {
		t.Fatalf("ApplyCommentFixes() error = %v, want ErrOverride", err)
	}

	// Texts without the segment are untouched.
	other := &corpus.Text{CommentText: map[string]string{"y:1.1": "unrelated"}}
	if err := o.ApplyCommentFixes(other); err != nil {
		t.Fatalf("ApplyCommentFixes() unexpected error: %v", err)
	}
}

func TestOverridesPredicates(t *testing.T) {
	t.Parallel()

	o := &Overrides{
		RawVariantSegments: []string{"x:2.1.9"},
		MultiLinkMarkers:   []string{"The terms"},
		FirstRefOnly:       []string{"pli-tv-bi-vb-pc8:2.1."},
	}

	if !o.RawVariantSegment("x:2.1.9") || o.RawVariantSegment("x:2.1.8") {
		t.Error("RawVariantSegment() membership wrong")
	}
	if !o.NeedsMultiLinks("The terms A and B both mean...") || o.NeedsMultiLinks("plain note") {
		t.Error("NeedsMultiLinks() marker detection wrong")
	}
	if !o.UseFirstRefOnly("pli-tv-bi-vb-pc8:2.1.7") || o.UseFirstRefOnly("pli-tv-bu-vb-pj1:1.1") {
		t.Error("UseFirstRefOnly() prefix match wrong")
	}

	var nilO *Overrides
	if nilO.RawVariantSegment("x") || nilO.NeedsMultiLinks("x") || nilO.UseFirstRefOnly("x") {
		t.Error("nil Overrides must report no overrides")
	}
}
