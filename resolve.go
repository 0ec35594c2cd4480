package vinayanotes

// Entry groups every phrase whose location resolved to one surviving
// word range. A consumer renders this as "one definition entry may gloss
// several originally-separate term occurrences".
type Entry struct {
	Loc     Location
	Phrases []Phrase
}

// Resolve collapses located phrases into ordered unique entries. A
// location overlapping the immediately preceding accepted one is folded
// into that entry's phrase list instead of opening its own. Checking only
// backward against the last entry is sufficient: Align produces locations
// in monotonically non-decreasing cursor order, so overlap can only occur
// with the previous entry.
//
// locs and phrases are parallel slices as returned by Align; every phrase
// lands in exactly one entry.
func Resolve(locs []Location, phrases []Phrase) []Entry {
	entries := make([]Entry, 0, len(locs))
	for i, loc := range locs {
		if n := len(entries); n > 0 && loc.Overlaps(entries[n-1].Loc) {
			entries[n-1].Phrases = append(entries[n-1].Phrases, phrases[i])
			continue
		}
		entries = append(entries, Entry{Loc: loc, Phrases: []Phrase{phrases[i]}})
	}
	return entries
}
