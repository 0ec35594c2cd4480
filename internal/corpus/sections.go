package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSectionShape reports corpus HTML that does not match the section
// structure the scanners rely on. The scanners are deliberately brittle:
// a shape change upstream should fail the run, not silently produce a
// wrong vault.
var ErrSectionShape = errors.New("unexpected section structure")

// DefinitionRef pairs a defining term's segment key with the keys of its
// definition body.
type DefinitionRef struct {
	TermKey        string
	DefinitionKeys []string
}

// definitionSectionStart marks the opening of a word-analysis section.
const definitionSectionStart = "<section class='padabhajaniya'><h2"

// DefinitionRefs scans the word-analysis sections of a rule text and
// returns its (term, definition-range) pairs in corpus order. ranges maps
// term keys to an explicit final definition key for the terms whose
// definitions contain nested defining terms; warnf receives progress
// warnings (trimmed multi-segment keyterms, skipped undefined terms).
//
// A rule can hold more than one definition section; all are scanned.
func (t *Text) DefinitionRefs(ranges map[string]string, warnf func(format string, args ...any)) ([]DefinitionRef, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	starts, err := t.KeysWhereHTMLContains(definitionSectionStart)
	if err != nil {
		return nil, err
	}
	var refs []DefinitionRef
	for _, start := range starts {
		section, err := t.definitionSection(start, ranges, warnf)
		if err != nil {
			return nil, err
		}
		refs = append(refs, section...)
	}
	return refs, nil
}

func (t *Text) definitionSection(start string, ranges map[string]string, warnf func(string, ...any)) ([]DefinitionRef, error) {
	if !strings.Contains(t.TranslationText[start], "Definitions") {
		return nil, fmt.Errorf("%w: %s is not a definition section", ErrSectionShape, start)
	}
	var refs []DefinitionRef
	key := start
	spot := t.IndexOf(start)
	for !strings.Contains(t.HTMLText[key], "</section>") {
		spot++
		key = t.KeysOrder[spot]
		if !strings.Contains(t.HTMLText[key], "<dt>{}") {
			// End of the definitions even before the section close.
			break
		}
		for !strings.Contains(t.HTMLText[key], "</dt>") {
			warnf("trimming long keyterm at %s", key)
			spot++
			key = t.KeysOrder[spot]
		}
		termKey := key
		var defKeys []string
		if finalKey, ok := ranges[termKey]; ok {
			for key != finalKey {
				spot++
				key = t.KeysOrder[spot]
				defKeys = append(defKeys, key)
			}
		} else {
			for !strings.Contains(t.HTMLText[key], "</dd>") {
				spot++
				key = t.KeysOrder[spot]
				defKeys = append(defKeys, key)
			}
			if !strings.Contains(t.HTMLText[defKeys[0]], "<dd>") {
				if strings.Contains(t.HTMLText[defKeys[0]], "<dt>") {
					warnf("skipping undefined term %q at %s", t.RootText[termKey], termKey)
					key = termKey
					spot = t.IndexOf(key)
					continue
				}
				return nil, fmt.Errorf("%w: unexpected html after %s: %s",
					ErrSectionShape, termKey, t.HTMLText[defKeys[0]])
			}
		}
		refs = append(refs, DefinitionRef{TermKey: termKey, DefinitionKeys: defKeys})
	}
	return refs, nil
}

// FinalRulingKeys returns the key run of the rule's final-ruling
// paragraph: the segment after the "Final ruling" heading through the
// paragraph close.
func (t *Text) FinalRulingKeys() ([]string, error) {
	heading, err := t.KeyWhereTranslationContains("Final ruling")
	if err != nil {
		return nil, err
	}
	// The ruling text starts at the sibling ".1" segment of the heading.
	key := heading[:len(heading)-1] + "1"
	if !strings.Contains(t.HTMLText[key], "<p class='rule'") {
		return nil, fmt.Errorf("%w: %s is not a rule paragraph", ErrSectionShape, key)
	}
	keys := []string{key}
	spot := t.IndexOf(key)
	for !strings.Contains(t.HTMLText[key], "</p>") {
		spot++
		key = t.KeysOrder[spot]
		keys = append(keys, key)
	}
	return keys, nil
}

// ruleBodyHTMLs are the html shapes a pātimokkha rule line can take;
// notRuleHTMLs are the shapes that legitimately terminate one. Anything
// else is a scan error.
var ruleBodyHTMLs = map[string]bool{
	"<p>{}</p>": true,
	"<p>{} ":    true,
	"<p>{}":     true,
	"{} ":       true,
	"{}":        true,
	"{}</p>":    true,
}

var notRuleHTMLs = map[string]bool{
	"<hr><p>{} ":                   true,
	"<hr><p>{}":                    true,
	"<h4>{}</h4>":                  true,
	"<p class='endsection'>{}</p>": true,
}

// PatimokkhaRuleKeys locates one rule inside a pātimokkha text by its
// heading ("Nissaggiya pācittiya 4. ") and returns the keys of the rule
// body that follows.
func (t *Text) PatimokkhaRuleKeys(ruleHeading string) ([]string, error) {
	header, err := t.KeyWhereRootContains(ruleHeading)
	if err != nil {
		return nil, err
	}
	if t.HTMLText[header] != "<h4>{}</h4>" {
		return nil, fmt.Errorf("%w: unexpected html for heading %s: %s",
			ErrSectionShape, header, t.HTMLText[header])
	}
	spot := t.IndexOf(header) + 1
	key := t.KeysOrder[spot]
	var keys []string
	for ruleBodyHTMLs[t.HTMLText[key]] {
		keys = append(keys, key)
		spot++
		key = t.KeysOrder[spot]
	}
	if !notRuleHTMLs[t.HTMLText[key]] {
		return nil, fmt.Errorf("%w: unknown html at %s: %q",
			ErrSectionShape, key, t.HTMLText[key])
	}
	return keys, nil
}
