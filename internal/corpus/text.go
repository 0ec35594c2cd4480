package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch reports a text search that hit nothing.
var ErrNoMatch = errors.New("no segment matches")

// ErrMultipleMatches reports a search that was expected to be unique but
// hit more than one segment.
var ErrMultipleMatches = errors.New("multiple segments match")

// Text is one segment-keyed text bundle as served by the bilara endpoint.
// The maps share a key space; KeysOrder carries the canonical segment
// order, which Go maps do not. Every traversal of the bundle must walk
// KeysOrder.
type Text struct {
	RootText        map[string]string `json:"root_text"`
	TranslationText map[string]string `json:"translation_text"`
	HTMLText        map[string]string `json:"html_text"`
	VariantText     map[string]string `json:"variant_text"`
	CommentText     map[string]string `json:"comment_text"`
	KeysOrder       []string          `json:"keys_order"`
}

// UID returns the text uid, taken from the first segment key.
func (t *Text) UID() string {
	if len(t.KeysOrder) == 0 {
		return ""
	}
	uid, _, _ := strings.Cut(t.KeysOrder[0], ":")
	return uid
}

// IndexOf returns the position of key in KeysOrder, or -1.
func (t *Text) IndexOf(key string) int {
	for i, k := range t.KeysOrder {
		if k == key {
			return i
		}
	}
	return -1
}

// keysWhere returns, in corpus order, every key whose entry in m contains
// needle case-insensitively.
func (t *Text) keysWhere(m map[string]string, needle string) ([]string, error) {
	folded := strings.ToLower(needle)
	var keys []string
	for _, k := range t.KeysOrder {
		if v, ok := m[k]; ok && strings.Contains(strings.ToLower(v), folded) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %q in %s through %s", ErrNoMatch,
			needle, t.KeysOrder[0], t.KeysOrder[len(t.KeysOrder)-1])
	}
	return keys, nil
}

func (t *Text) single(keys []string, err error, needle string) (string, error) {
	if err != nil {
		return "", err
	}
	if len(keys) > 1 {
		return "", fmt.Errorf("%w: %q at %s", ErrMultipleMatches, needle, strings.Join(keys, ", "))
	}
	return keys[0], nil
}

// KeysWhereHTMLContains returns every key whose html markup contains
// needle.
func (t *Text) KeysWhereHTMLContains(needle string) ([]string, error) {
	return t.keysWhere(t.HTMLText, needle)
}

// KeyWhereTranslationContains returns the unique key whose translation
// contains needle; more than one match is an error.
func (t *Text) KeyWhereTranslationContains(needle string) (string, error) {
	keys, err := t.keysWhere(t.TranslationText, needle)
	return t.single(keys, err, needle)
}

// KeyWhereRootContains returns the unique key whose root text contains
// needle; more than one match is an error.
func (t *Text) KeyWhereRootContains(needle string) (string, error) {
	keys, err := t.keysWhere(t.RootText, needle)
	return t.single(keys, err, needle)
}
