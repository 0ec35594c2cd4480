package corpus

import (
	"errors"
	"testing"
)

func testText() *Text {
	return &Text{
		KeysOrder: []string{"uid:1.1", "uid:1.2", "uid:2.1", "uid:2.2"},
		RootText: map[string]string{
			"uid:1.1": "Nissaggiya pācittiya 4. ",
			"uid:1.2": "yo pana",
			"uid:2.1": "bhikkhu",
			"uid:2.2": "",
		},
		TranslationText: map[string]string{
			"uid:1.2": "If a monk",
			"uid:2.1": "Non-offenses",
			"uid:2.2": "Definitions",
		},
		HTMLText: map[string]string{
			"uid:1.1": "<h4>{}</h4>",
			"uid:1.2": "<p>{} ",
			"uid:2.1": "<p class='anapatti'>{}</p>",
			"uid:2.2": "<h3>{}</h3>",
		},
	}
}

func TestTextUID(t *testing.T) {
	t.Parallel()

	if got := testText().UID(); got != "uid" {
		t.Errorf("UID() = %q, want %q", got, "uid")
	}
	empty := &Text{}
	if got := empty.UID(); got != "" {
		t.Errorf("UID() on empty text = %q, want empty", got)
	}
}

func TestTextIndexOf(t *testing.T) {
	t.Parallel()

	text := testText()
	if got := text.IndexOf("uid:2.1"); got != 2 {
		t.Errorf("IndexOf() = %d, want 2", got)
	}
	if got := text.IndexOf("uid:9.9"); got != -1 {
		t.Errorf("IndexOf() on unknown key = %d, want -1", got)
	}
}

func TestKeysWhereHTMLContains(t *testing.T) {
	t.Parallel()

	text := testText()
	keys, err := text.KeysWhereHTMLContains("<p")
	if err != nil {
		t.Fatalf("KeysWhereHTMLContains() unexpected error: %v", err)
	}
	// Results must follow KeysOrder, not map iteration order.
	want := []string{"uid:1.2", "uid:2.1"}
	if len(keys) != len(want) {
		t.Fatalf("KeysWhereHTMLContains() = %v, want %v", keys, want)
	}
	for i, w := range want {
		if keys[i] != w {
			t.Errorf("key %d = %q, want %q", i, keys[i], w)
		}
	}

	_, err = text.KeysWhereHTMLContains("<table>")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("KeysWhereHTMLContains() error = %v, want ErrNoMatch", err)
	}
}

func TestKeyWhereTranslationContains(t *testing.T) {
	t.Parallel()

	text := testText()

	key, err := text.KeyWhereTranslationContains("non-offenses")
	if err != nil {
		t.Fatalf("KeyWhereTranslationContains() unexpected error: %v", err)
	}
	if key != "uid:2.1" {
		t.Errorf("KeyWhereTranslationContains() = %q, want %q (case-insensitive)", key, "uid:2.1")
	}

	text.TranslationText["uid:1.2"] = "Non-offenses too"
	_, err = text.KeyWhereTranslationContains("Non-offenses")
	if !errors.Is(err, ErrMultipleMatches) {
		t.Fatalf("KeyWhereTranslationContains() error = %v, want ErrMultipleMatches", err)
	}
}

func TestKeyWhereRootContains(t *testing.T) {
	t.Parallel()

	key, err := testText().KeyWhereRootContains("Nissaggiya pācittiya 4. ")
	if err != nil {
		t.Fatalf("KeyWhereRootContains() unexpected error: %v", err)
	}
	if key != "uid:1.1" {
		t.Errorf("KeyWhereRootContains() = %q, want %q", key, "uid:1.1")
	}
}
