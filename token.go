package vinayanotes

import (
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/pali"
)

// Token is one word of root text. Text is the printed form, preserved
// verbatim for output; Key is the normalized comparison form used only
// for equality during search.
type Token struct {
	Text string
	Key  string
}

// NewToken derives the comparison key for a printed word.
func NewToken(text string) Token {
	return Token{Text: text, Key: pali.Key(text)}
}

// Line is one root-text segment split into words. Line identity is
// positional, never content-addressed.
type Line []Token

// RootText is the ordered lines of one rendering unit, one per underlying
// translation segment. It is built once per unit and treated as immutable
// for the duration of alignment and weaving.
type RootText []Line

// Tokenize splits segment text into tokens. Em dashes glue words together
// in the corpus ("kathinaṁ—atthataṁ"), so a space is forced after each one
// before splitting on whitespace.
func Tokenize(text string) Line {
	words := strings.Fields(strings.ReplaceAll(text, "—", "— "))
	line := make(Line, len(words))
	for i, w := range words {
		line[i] = NewToken(w)
	}
	return line
}

// Phrase is a defining term's root-language rendering plus its opaque
// payload: the segment id the term came from and the segment ids of its
// definition body. Phrases arrive in corpus reading order.
type Phrase struct {
	Tokens   []Token
	Ref      string
	Segments []string
}

// Text returns the printed form of the phrase, space-joined.
func (p Phrase) Text() string {
	return tokensText(p.Tokens)
}

// Location is a word range inside a RootText: line index plus start and
// end token indexes, end inclusive.
type Location struct {
	Line  int
	Start int
	End   int
}

// Overlaps reports whether two locations share a line and their index
// ranges intersect.
func (l Location) Overlaps(o Location) bool {
	if l.Line != o.Line {
		return false
	}
	if l.Start > o.Start {
		l, o = o, l
	}
	return l.End >= o.Start
}

// Position addresses a single token of a RootText.
type Position struct {
	Line  int
	Index int
}

func tokensText(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

func tokensKey(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Key
	}
	return strings.Join(parts, " ")
}
