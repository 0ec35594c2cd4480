package corpus

import (
	"errors"
	"strings"
	"testing"
)

func definitionText() *Text {
	return &Text{
		KeysOrder: []string{
			"u:2.1.0", "u:2.1.1", "u:2.1.2", "u:2.1.3", "u:2.1.4", "u:2.1.5", "u:2.1.6",
		},
		TranslationText: map[string]string{
			"u:2.1.0": "Definitions",
		},
		RootText: map[string]string{
			"u:2.1.1": "Yo panāti:",
			"u:2.1.3": "Bhikkhūti:",
		},
		HTMLText: map[string]string{
			"u:2.1.0": "<section class='padabhajaniya'><h2>{}</h2>",
			"u:2.1.1": "<dt>{}</dt>",
			"u:2.1.2": "<dd>{}</dd>",
			"u:2.1.3": "<dt>{}</dt>",
			"u:2.1.4": "<dd>{}",
			"u:2.1.5": "{}</dd>",
			"u:2.1.6": "<p class='endsection'>{}</p></section>",
		},
	}
}

func TestDefinitionRefs(t *testing.T) {
	t.Parallel()

	refs, err := definitionText().DefinitionRefs(nil, nil)
	if err != nil {
		t.Fatalf("DefinitionRefs() unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("DefinitionRefs() = %d refs, want 2", len(refs))
	}
	if refs[0].TermKey != "u:2.1.1" || len(refs[0].DefinitionKeys) != 1 || refs[0].DefinitionKeys[0] != "u:2.1.2" {
		t.Errorf("ref 0 = %+v, want term u:2.1.1 defined by u:2.1.2", refs[0])
	}
	if refs[1].TermKey != "u:2.1.3" || len(refs[1].DefinitionKeys) != 2 {
		t.Errorf("ref 1 = %+v, want term u:2.1.3 with a two-segment definition", refs[1])
	}
}

func TestDefinitionRefsManualRange(t *testing.T) {
	t.Parallel()

	// The second term's definition nests another <dt>, so shape scanning
	// would stop early; an explicit final key carries the walk through.
	text := definitionText()
	text.HTMLText["u:2.1.4"] = "<dd><dt>{}</dt>"
	ranges := map[string]string{"u:2.1.3": "u:2.1.5"}

	refs, err := text.DefinitionRefs(ranges, nil)
	if err != nil {
		t.Fatalf("DefinitionRefs() unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("DefinitionRefs() = %d refs, want 2", len(refs))
	}
	got := refs[1].DefinitionKeys
	if len(got) != 2 || got[0] != "u:2.1.4" || got[1] != "u:2.1.5" {
		t.Errorf("manual range definition keys = %v, want [u:2.1.4 u:2.1.5]", got)
	}
}

func TestDefinitionRefsSkipsUndefinedTerm(t *testing.T) {
	t.Parallel()

	// A term immediately followed by another term has no definition body;
	// it is skipped with a warning and the scan resumes at the next term.
	text := &Text{
		KeysOrder: []string{"u:1.0", "u:1.1", "u:1.2", "u:1.3", "u:1.4"},
		TranslationText: map[string]string{
			"u:1.0": "Definitions",
		},
		RootText: map[string]string{
			"u:1.1": "Anupasampannoti:",
		},
		HTMLText: map[string]string{
			"u:1.0": "<section class='padabhajaniya'><h2>{}</h2>",
			"u:1.1": "<dt>{}</dt>",
			"u:1.2": "<dt>{}</dt>",
			"u:1.3": "<dd>{}</dd>",
			"u:1.4": "<p class='endsection'>{}</p></section>",
		},
	}

	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, format)
	}
	refs, err := text.DefinitionRefs(nil, warnf)
	if err != nil {
		t.Fatalf("DefinitionRefs() unexpected error: %v", err)
	}
	if len(refs) != 1 || refs[0].TermKey != "u:1.2" {
		t.Errorf("DefinitionRefs() = %+v, want only the defined term u:1.2", refs)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "skipping undefined term") {
			found = true
		}
	}
	if !found {
		t.Errorf("no skip warning issued; got %v", warnings)
	}
}

func TestDefinitionRefsNotADefinitionSection(t *testing.T) {
	t.Parallel()

	text := definitionText()
	text.TranslationText["u:2.1.0"] = "Origin story"
	_, err := text.DefinitionRefs(nil, nil)
	if !errors.Is(err, ErrSectionShape) {
		t.Fatalf("DefinitionRefs() error = %v, want ErrSectionShape", err)
	}
}

func TestFinalRulingKeys(t *testing.T) {
	t.Parallel()

	text := &Text{
		KeysOrder: []string{"u:3.4.0", "u:3.4.1", "u:3.4.2", "u:3.5.0"},
		TranslationText: map[string]string{
			"u:3.4.0": "Final ruling",
		},
		HTMLText: map[string]string{
			"u:3.4.0": "<h3>{}</h3>",
			"u:3.4.1": "<p class='rule'>{}",
			"u:3.4.2": "{}</p>",
			"u:3.5.0": "<h3>{}</h3>",
		},
	}

	keys, err := text.FinalRulingKeys()
	if err != nil {
		t.Fatalf("FinalRulingKeys() unexpected error: %v", err)
	}
	want := []string{"u:3.4.1", "u:3.4.2"}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("FinalRulingKeys() = %v, want %v", keys, want)
	}

	text.HTMLText["u:3.4.1"] = "<p>{}"
	if _, err := text.FinalRulingKeys(); !errors.Is(err, ErrSectionShape) {
		t.Fatalf("FinalRulingKeys() error = %v, want ErrSectionShape", err)
	}
}

func TestPatimokkhaRuleKeys(t *testing.T) {
	t.Parallel()

	text := &Text{
		KeysOrder: []string{"pm:10.0", "pm:10.1", "pm:10.2", "pm:11.0"},
		RootText: map[string]string{
			"pm:10.0": "Nissaggiya pācittiya 4. ",
		},
		HTMLText: map[string]string{
			"pm:10.0": "<h4>{}</h4>",
			"pm:10.1": "<p>{} ",
			"pm:10.2": "{}",
			"pm:11.0": "<h4>{}</h4>",
		},
	}

	keys, err := text.PatimokkhaRuleKeys("Nissaggiya pācittiya 4. ")
	if err != nil {
		t.Fatalf("PatimokkhaRuleKeys() unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "pm:10.1" || keys[1] != "pm:10.2" {
		t.Errorf("PatimokkhaRuleKeys() = %v, want [pm:10.1 pm:10.2]", keys)
	}
}

func TestPatimokkhaRuleKeysBadShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Text)
	}{
		{
			name:   "heading html is not a plain h4",
			mutate: func(tx *Text) { tx.HTMLText["pm:10.0"] = "<h4 class='x'>{}</h4>" },
		},
		{
			name:   "rule body ends in an unknown shape",
			mutate: func(tx *Text) { tx.HTMLText["pm:11.0"] = "<blockquote>{}</blockquote>" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text := &Text{
				KeysOrder: []string{"pm:10.0", "pm:10.1", "pm:11.0"},
				RootText: map[string]string{
					"pm:10.0": "Pārājika 1. ",
				},
				HTMLText: map[string]string{
					"pm:10.0": "<h4>{}</h4>",
					"pm:10.1": "<p>{} ",
					"pm:11.0": "<h4>{}</h4>",
				},
			}
			tt.mutate(text)
			if _, err := text.PatimokkhaRuleKeys("Pārājika 1. "); !errors.Is(err, ErrSectionShape) {
				t.Fatalf("PatimokkhaRuleKeys() error = %v, want ErrSectionShape", err)
			}
		})
	}
}
