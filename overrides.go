package vinayanotes

import (
	"fmt"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/yamlutil"
)

// Overrides is the injectable corpus-correction table. The corpus is
// hand-made data with hand-made irregularities; rather than scatter
// special cases through the renderers, every known correction lives here
// and is applied at a named point of the pipeline. Each entry is written
// against a specific state of the corpus and fails loudly when the corpus
// moves out from under it.
type Overrides struct {
	// DefinitionRanges maps a defining term's segment id to the explicit
	// final segment of its definition, for definitions that contain nested
	// defining terms and so cannot be scanned by html shape alone.
	DefinitionRanges map[string]string `yaml:"definition_ranges"`

	// RootText replaces the root text of a segment entirely.
	RootText map[string]string `yaml:"root_text"`

	// Reorders fix definition lists whose corpus order disagrees with the
	// root text order the aligner walks. Applied after section scanning,
	// logged each time.
	Reorders []Reorder `yaml:"reorders"`

	// PeReferences resolve "…pe…" elisions inside definitions to the
	// segment where the elided passage is spelled out.
	PeReferences []PeReference `yaml:"pe_references"`

	// VariantLemmas substitute the printed lemma of a variant reading
	// whose published form does not occur in the root line.
	VariantLemmas []VariantLemma `yaml:"variant_lemmas"`

	// RawVariantSegments lists segments whose variant text cannot be
	// parsed into readings; their variant text is attached verbatim as a
	// line-end footnote instead.
	RawVariantSegments []string `yaml:"raw_variant_segments"`

	// CommentFixes patch translator-comment typos. The search string must
	// still be present or the run aborts.
	CommentFixes []CommentFix `yaml:"comment_fixes"`

	// MultiLinkMarkers are comment substrings marking notes that compare
	// several terms; every inline term in such a note gets a glossary link
	// instead of only the one nearest the appendix mention.
	MultiLinkMarkers []string `yaml:"multi_link_markers"`

	// NoteLinks are verbatim search/replace pairs applied to every
	// translator note, linking appendix mentions that carry no URL.
	NoteLinks []NoteLink `yaml:"note_links"`

	// FirstRefOnly lists segment-id prefixes whose documents are indexed
	// by their first segment only: a reordered definition list can leave
	// the final segment out of range order.
	FirstRefOnly []string `yaml:"first_ref_only"`
}

// Reorder is one explicit definition-list fix, keyed by the rule uid it
// applies to. Indexes refer to the scanned definition list.
type Reorder struct {
	Rule string `yaml:"rule"`
	Op   string `yaml:"op"` // "swap", "move" or "delete"
	I    int    `yaml:"i"`
	J    int    `yaml:"j,omitempty"`
}

// PeReference maps an elided definition to the segment that spells it
// out. Collection is "bu" or "bi"; the term matches either exactly
// (Terms) or by prefix (TermPrefix).
type PeReference struct {
	Collection string   `yaml:"collection"`
	Terms      []string `yaml:"terms,omitempty"`
	TermPrefix string   `yaml:"term_prefix,omitempty"`
	SegmentID  string   `yaml:"segment"`
}

// VariantLemma corrects the printed lemma of one variant reading.
type VariantLemma struct {
	Segment string `yaml:"segment"`
	Printed string `yaml:"printed"`
	Actual  string `yaml:"actual"`
}

// CommentFix is a per-segment comment_text patch.
type CommentFix struct {
	Segment string `yaml:"segment"`
	Search  string `yaml:"search"`
	Replace string `yaml:"replace"`
}

// NoteLink is a verbatim substitution applied to translator notes.
type NoteLink struct {
	Search  string `yaml:"search"`
	Replace string `yaml:"replace"`
}

// LoadOverrides parses an override table. Unknown keys are rejected so a
// misspelled correction cannot be silently ignored.
func LoadOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yamlutil.UnmarshalStrict(data, &o); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	return &o, nil
}

// RootTextFor returns the (possibly overridden) root text for key.
func (o *Overrides) RootTextFor(t *corpus.Text, key string) string {
	if o != nil {
		if repl, ok := o.RootText[key]; ok {
			return repl
		}
	}
	return t.RootText[key]
}

// ApplyReorders rewrites a scanned definition list per the fixes recorded
// for rule, logging each applied fix.
func (o *Overrides) ApplyReorders(rule string, refs []corpus.DefinitionRef, logf func(format string, args ...any)) ([]corpus.DefinitionRef, error) {
	if o == nil {
		return refs, nil
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	for _, r := range o.Reorders {
		if r.Rule != rule {
			continue
		}
		switch r.Op {
		case "swap":
			if r.I >= len(refs) || r.J >= len(refs) {
				return nil, fmt.Errorf("%w: %s swap %d,%d out of range (%d definitions)",
					ErrOverride, rule, r.I, r.J, len(refs))
			}
			refs[r.I], refs[r.J] = refs[r.J], refs[r.I]
			logf("reorder %s: swapped definitions %d and %d", rule, r.I, r.J)
		case "move":
			if r.I > len(refs) || r.J >= len(refs) {
				return nil, fmt.Errorf("%w: %s move %d,%d out of range (%d definitions)",
					ErrOverride, rule, r.I, r.J, len(refs))
			}
			moved := refs[r.J]
			refs = append(refs[:r.J], refs[r.J+1:]...)
			refs = append(refs[:r.I], append([]corpus.DefinitionRef{moved}, refs[r.I:]...)...)
			logf("reorder %s: moved definition %d to position %d", rule, r.J, r.I)
		case "delete":
			if r.I >= len(refs) {
				return nil, fmt.Errorf("%w: %s delete %d out of range (%d definitions)",
					ErrOverride, rule, r.I, len(refs))
			}
			refs = append(refs[:r.I], refs[r.I+1:]...)
			logf("reorder %s: deleted definition %d", rule, r.I)
		default:
			return nil, fmt.Errorf("%w: unknown reorder op %q for %s", ErrOverride, r.Op, rule)
		}
	}
	return refs, nil
}

// PeReference resolves an elided term of one collection ("bu" or "bi") to
// the segment id spelling it out.
func (o *Overrides) PeReference(collection, term string) (string, bool) {
	if o == nil {
		return "", false
	}
	for _, ref := range o.PeReferences {
		if ref.Collection != collection {
			continue
		}
		if ref.TermPrefix != "" && strings.HasPrefix(term, ref.TermPrefix) {
			return ref.SegmentID, true
		}
		for _, t := range ref.Terms {
			if t == term {
				return ref.SegmentID, true
			}
		}
	}
	return "", false
}

// VariantLemmaFor corrects the printed lemma of one variant at segment.
func (o *Overrides) VariantLemmaFor(segment, printed string) string {
	if o == nil {
		return printed
	}
	for _, l := range o.VariantLemmas {
		if l.Segment == segment && l.Printed == printed {
			return l.Actual
		}
	}
	return printed
}

// RawVariantSegment reports whether segment's variant text is attached
// verbatim instead of parsed.
func (o *Overrides) RawVariantSegment(segment string) bool {
	if o == nil {
		return false
	}
	for _, s := range o.RawVariantSegments {
		if s == segment {
			return true
		}
	}
	return false
}

// ApplyCommentFixes patches translator comments in place. A fix whose
// search string is gone means the upstream text changed; the run aborts
// so the fix can be reviewed rather than silently skipped.
func (o *Overrides) ApplyCommentFixes(t *corpus.Text) error {
	if o == nil {
		return nil
	}
	for _, fix := range o.CommentFixes {
		comment, ok := t.CommentText[fix.Segment]
		if !ok {
			continue
		}
		if !strings.Contains(comment, fix.Search) {
			return fmt.Errorf("%w: comment fix for %s no longer matches", ErrOverride, fix.Segment)
		}
		t.CommentText[fix.Segment] = strings.Replace(comment, fix.Search, fix.Replace, 1)
	}
	return nil
}

// NeedsMultiLinks reports whether note is a several-terms comparison note.
func (o *Overrides) NeedsMultiLinks(note string) bool {
	if o == nil {
		return false
	}
	for _, marker := range o.MultiLinkMarkers {
		if strings.Contains(note, marker) {
			return true
		}
	}
	return false
}

// UseFirstRefOnly reports whether a document ending at endRef should be
// indexed by its first segment only.
func (o *Overrides) UseFirstRefOnly(endRef string) bool {
	if o == nil {
		return false
	}
	for _, prefix := range o.FirstRefOnly {
		if strings.HasPrefix(endRef, prefix) {
			return true
		}
	}
	return false
}
