package vinayanotes

import (
	"fmt"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
)

// parseVariants builds the weaver's variant map for a key run. The corpus
// packs a line's variant readings into one string, "original → reading"
// pairs separated by "; " (some texts use " | "); a fragment without the
// arrow is a continuation of the previous reading's note. Each reading's
// original is located in the line with the sequence matcher, and the
// marker attaches to the first token of the match.
//
// Segments listed as raw in the overrides do not parse; their variant
// text attaches verbatim to the line's last token instead.
func (s *Service) parseVariants(t *corpus.Text, keys []string, root RootText) (map[Position]Variant, error) {
	variants := make(map[Position]Variant)
	for i, key := range keys {
		raw, ok := t.VariantText[key]
		if !ok {
			continue
		}
		line := root[i]
		if len(line) == 0 {
			continue
		}
		if s.overrides.RawVariantSegment(key) {
			variants[Position{Line: i, Index: len(line) - 1}] = Variant{Original: strings.TrimSpace(raw)}
			continue
		}
		readings, err := splitVariantText(key, raw)
		if err != nil {
			return nil, err
		}
		for _, r := range readings {
			original := s.overrides.VariantLemmaFor(key, r[0])
			idx, err := FindTokens(Tokenize(original), line, 0)
			if err != nil {
				return nil, fmt.Errorf("%w: %q not in root line at %s", ErrVariantParse, original, key)
			}
			variants[Position{Line: i, Index: idx}] = Variant{Original: original, Reading: r[1]}
		}
	}
	return variants, nil
}

// splitVariantText splits one segment's variant string into
// [original, reading] pairs.
func splitVariantText(key, raw string) ([][2]string, error) {
	fragments := strings.Split(strings.ReplaceAll(strings.TrimSpace(raw), " | ", "; "), "; ")
	var joined []string
	for _, frag := range fragments {
		if strings.Contains(frag, " → ") {
			joined = append(joined, frag)
			continue
		}
		if len(joined) == 0 {
			return nil, fmt.Errorf("%w: %q at %s has no reading to continue", ErrVariantParse, frag, key)
		}
		joined[len(joined)-1] += "; " + frag
	}
	readings := make([][2]string, len(joined))
	for i, v := range joined {
		original, reading, _ := strings.Cut(v, " → ")
		if strings.Contains(reading, " → ") {
			return nil, fmt.Errorf("%w: %q at %s splits into more than two parts", ErrVariantParse, v, key)
		}
		readings[i] = [2]string{original, reading}
	}
	return readings, nil
}
