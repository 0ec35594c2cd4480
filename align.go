package vinayanotes

import (
	"errors"
	"fmt"
)

// Align locates each phrase inside root, one Location per phrase in input
// order. A cursor advances past every match, so a repeated phrase resolves
// to its next distinct occurrence rather than re-matching from the start:
// occurrences are claimed in corpus order and the scan stays linear in the
// size of the root text.
//
// A phrase that cannot be found before the root text ends yields an
// AlignmentError naming the phrase and the exhausted range. Whether that
// means a transcription mismatch or a genuinely absent term is the
// caller's policy; here it always aborts the run.
func Align(phrases []Phrase, root RootText) ([]Location, error) {
	locs := make([]Location, 0, len(phrases))
	line, offset := 0, 0
	for _, p := range phrases {
		if len(p.Tokens) == 0 {
			return nil, fmt.Errorf("%w: term at %s", ErrEmptyPhrase, p.Ref)
		}
		startLine := line
		l, o := line, offset
		for {
			if l >= len(root) {
				return nil, &AlignmentError{
					Phrase:   p.Text(),
					Ref:      p.Ref,
					FromLine: startLine,
					ToLine:   len(root),
				}
			}
			idx, err := FindTokens(p.Tokens, root[l], o)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					return nil, err
				}
				l, o = l+1, 0
				continue
			}
			loc := Location{Line: l, Start: idx, End: idx + len(p.Tokens) - 1}
			locs = append(locs, loc)
			line, offset = l, loc.End+1
			break
		}
	}
	return locs, nil
}
