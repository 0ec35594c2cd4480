package vinayanotes

import "fmt"

// FindTokens returns the index of the first occurrence of needle inside
// haystack at or after start, comparing tokens by their Key (the printed
// form plays no part in matching). Returns ErrEmptyPhrase for an empty
// needle and ErrNotFound, naming the needle and searched range, when the
// haystack is exhausted without a match.
func FindTokens(needle, haystack []Token, start int) (int, error) {
	if len(needle) == 0 {
		return 0, ErrEmptyPhrase
	}
	if start < 0 {
		start = 0
	}
	last := len(haystack) - len(needle)
	for i := start; i <= last; i++ {
		if haystack[i].Key != needle[0].Key {
			continue
		}
		if tokensMatch(haystack[i:i+len(needle)], needle) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in tokens %d..%d",
		ErrNotFound, tokensText(needle), start, len(haystack))
}

func tokensMatch(a, b []Token) bool {
	for i := range b {
		if a[i].Key != b[i].Key {
			return false
		}
	}
	return true
}
