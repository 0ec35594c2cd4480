package vinayanotes

import (
	"fmt"
	"strings"
)

// Variant is a variant reading attached to one token, rendered "A → B":
// the original as printed, then the replacement form. A Variant with an
// empty Reading carries unparseable variant text verbatim.
type Variant struct {
	Original string
	Reading  string
}

func (v Variant) String() string {
	if v.Reading == "" {
		return v.Original
	}
	return v.Original + " → " + v.Reading
}

// Span is a located hyperlink: a word range plus the destination emitted
// when the range closes. Spans handed to Weave never overlap and are
// sorted ascending by (line, start); Resolve guarantees both.
type Span struct {
	Loc  Location
	Dest string
}

// Markup supplies the rendering-target glyphs. The weaver's contract is
// about where markers go and in what order, not their literal syntax.
type Markup interface {
	// LinkOpen is emitted immediately before a span's first token.
	LinkOpen() string
	// LinkClose is emitted immediately after a span's last token, as one
	// atomic unit carrying the destination.
	LinkClose(dest string) string
	// FootnoteRef is the standard footnote marker.
	FootnoteRef(n int) string
	// InlineFootnoteRef is the marker used inside an open link span, where
	// the standard form would be absorbed into the link text.
	InlineFootnoteRef(n int) string
}

// Footnotes is the single per-document footnote counter. Every marker
// emitted anywhere in a document consumes the next value, so numbering is
// 1-based, contiguous, and strictly increasing in emission order.
type Footnotes struct {
	notes []string
}

// Add records a footnote body and returns its 1-based number.
func (f *Footnotes) Add(text string) int {
	f.notes = append(f.notes, text)
	return len(f.notes)
}

// Len returns how many footnotes have been recorded.
func (f *Footnotes) Len() int { return len(f.notes) }

// Notes returns the recorded bodies in numbering order.
func (f *Footnotes) Notes() []string { return f.notes }

// Weave re-walks the root text word by word and returns one rendered
// string per line, with link and footnote markers embedded.
//
// Two independent annotation systems share the token stream. Links: a
// marker opens when the cursor enters a span and closes, with its
// destination, right after the span's last token. Footnotes: a token
// carrying a variant reading gets a marker straight after its printed
// form: the inline superscript form while a link is open (a standard
// marker before the link-close would be swallowed by the destination
// syntax) and the standard form otherwise. When a span's closing token
// itself carries a variant, the footnote marker goes strictly after the
// link-close: nothing may interpose between linked text and its
// destination.
//
// At most one span is open at a time; a span still open when the text
// ends is ErrOpenSpan (resolver output inside the supplied text makes
// this a checked invariant rather than an expected failure).
func Weave(root RootText, spans []Span, variants map[Position]Variant, fns *Footnotes, m Markup) ([]string, error) {
	lines := make([]string, len(root))
	k := 0 // next span to open
	inside := false
	for i, line := range root {
		var b strings.Builder
		for j, tok := range line {
			if !inside && k < len(spans) && spans[k].Loc.Line == i && spans[k].Loc.Start == j {
				b.WriteString(m.LinkOpen())
				inside = true
			}

			b.WriteString(tok.Text)

			variant, hasVariant := variants[Position{Line: i, Index: j}]
			n := 0
			if hasVariant {
				n = fns.Add(variant.String())
			}

			if inside && spans[k].Loc.End == j {
				b.WriteString(m.LinkClose(spans[k].Dest))
				inside = false
				k++
				if hasVariant {
					// After the close, the destination is already out;
					// the standard form is safe again.
					b.WriteString(m.FootnoteRef(n))
				}
			} else if hasVariant {
				if inside {
					b.WriteString(m.InlineFootnoteRef(n))
				} else {
					b.WriteString(m.FootnoteRef(n))
				}
			}

			if j < len(line)-1 {
				b.WriteByte(' ')
			}
		}
		lines[i] = b.String()
	}
	if inside || k < len(spans) {
		return nil, fmt.Errorf("%w: span %d of %d at line %d",
			ErrOpenSpan, k+1, len(spans), spans[k].Loc.Line)
	}
	return lines, nil
}
