package vinayanotes

import "fmt"

// Disambiguate assigns one display label per entry. The label is the
// entry's normalized phrase text; when the same normalized text occurs at
// more than one unique location, ordinal suffixes keep the labels
// distinct: the first occurrence is retroactively relabeled "P (1)" at the
// moment the second ("P (2)") is discovered, and later occurrences get
// "P (3)", "P (4)", and so on. A phrase that occurs once keeps its bare
// label: the suffix must never show on a lone occurrence, which is why
// the relabel happens lazily instead of eagerly.
//
// Labels are stable identifiers usable as file or section names; mapping
// away characters a filesystem rejects is the document assembler's job.
func Disambiguate(entries []Entry, root RootText) []string {
	labels := make([]string, len(entries))
	next := make(map[string]int)    // normalized text -> next ordinal
	firstAt := make(map[string]int) // normalized text -> index of first label
	for i, e := range entries {
		phrase := tokensKey(root[e.Loc.Line][e.Loc.Start : e.Loc.End+1])
		n, seen := next[phrase]
		if !seen {
			labels[i] = phrase
			next[phrase] = 2
			firstAt[phrase] = i
			continue
		}
		if n == 2 {
			labels[firstAt[phrase]] = phrase + " (1)"
		}
		labels[i] = fmt.Sprintf("%s (%d)", phrase, n)
		next[phrase] = n + 1
	}
	return labels
}
