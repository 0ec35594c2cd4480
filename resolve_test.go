package vinayanotes

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		locs    []Location
		phrases []Phrase
		// wantSizes is the phrase count per resulting entry, in order.
		wantSizes []int
	}{
		{
			name:      "no locations",
			wantSizes: []int{},
		},
		{
			name: "disjoint locations stay separate",
			locs: []Location{
				{Line: 0, Start: 0, End: 1},
				{Line: 0, Start: 3, End: 4},
				{Line: 1, Start: 0, End: 0},
			},
			phrases:   phrases("a b", "d e", "f"),
			wantSizes: []int{1, 1, 1},
		},
		{
			name: "overlapping location folds into the previous entry",
			locs: []Location{
				{Line: 0, Start: 0, End: 2},
				{Line: 0, Start: 2, End: 3},
			},
			phrases:   phrases("a b c", "c d"),
			wantSizes: []int{2},
		},
		{
			// Folding does not extend the accepted location, so a location
			// overlapping only the folded one starts a new entry.
			name: "overlap is checked against the accepted location only",
			locs: []Location{
				{Line: 0, Start: 0, End: 2},
				{Line: 0, Start: 1, End: 3},
				{Line: 0, Start: 3, End: 5},
			},
			phrases:   phrases("a b c", "b c d", "d e f"),
			wantSizes: []int{2, 1},
		},
		{
			name: "same range on another line is a new entry",
			locs: []Location{
				{Line: 0, Start: 0, End: 1},
				{Line: 1, Start: 0, End: 1},
			},
			phrases:   phrases("a b", "a b"),
			wantSizes: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries := Resolve(tt.locs, tt.phrases)
			if len(entries) != len(tt.wantSizes) {
				t.Fatalf("Resolve() = %d entries, want %d", len(entries), len(tt.wantSizes))
			}
			total := 0
			for i, e := range entries {
				if len(e.Phrases) != tt.wantSizes[i] {
					t.Errorf("entry %d has %d phrases, want %d", i, len(e.Phrases), tt.wantSizes[i])
				}
				total += len(e.Phrases)
			}
			if total != len(tt.phrases) {
				t.Errorf("%d phrases distributed, want %d (every phrase lands exactly once)",
					total, len(tt.phrases))
			}
		})
	}
}

func TestResolveKeepsFirstLocation(t *testing.T) {
	t.Parallel()

	locs := []Location{
		{Line: 0, Start: 2, End: 4},
		{Line: 0, Start: 4, End: 5},
	}
	entries := Resolve(locs, phrases("c d e", "e f"))
	if len(entries) != 1 {
		t.Fatalf("Resolve() = %d entries, want 1", len(entries))
	}
	if entries[0].Loc != locs[0] {
		t.Errorf("entry location = %+v, want the first accepted location %+v", entries[0].Loc, locs[0])
	}
}
