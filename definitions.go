package vinayanotes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/markup"
)

// wordDef ties one rendered word-definition document to the word range it
// glosses inside the rule's root text. The rule renderer turns these into
// link spans.
type wordDef struct {
	Loc  Location
	Path string
}

// renderWordDefinitions runs the engine over a rule's word-analysis
// sections and writes one document per unique term location: scan the
// definition refs, align the terms to the rule text, fold overlapping
// locations together, disambiguate repeated phrases, then render each
// entry's definitions.
func (s *Service) renderWordDefinitions(t *corpus.Text, root RootText) ([]wordDef, error) {
	refs, err := t.DefinitionRefs(s.overrides.DefinitionRanges, s.warnf)
	if err != nil {
		return nil, err
	}
	refs, err = s.overrides.ApplyReorders(t.UID(), refs, s.logf)
	if err != nil {
		return nil, err
	}

	phrases := make([]Phrase, len(refs))
	for i, ref := range refs {
		phrases[i] = Phrase{
			Tokens:   s.rootLine(t, ref.TermKey),
			Ref:      ref.TermKey,
			Segments: ref.DefinitionKeys,
		}
	}
	locs, err := Align(phrases, root)
	if err != nil {
		return nil, err
	}
	entries := Resolve(locs, phrases)
	labels := Disambiguate(entries, root)

	ruleLabel, err := s.ruleClassLabel(t.UID())
	if err != nil {
		return nil, err
	}
	defs := make([]wordDef, 0, len(entries))
	for i, e := range entries {
		path := filepath.Join(s.vault.WordDefs,
			fmt.Sprintf("%s - %s Definition.md", labels[i], ruleLabel))
		sections := make([]corpus.DefinitionRef, len(e.Phrases))
		for j, p := range e.Phrases {
			sections[j] = corpus.DefinitionRef{TermKey: p.Ref, DefinitionKeys: p.Segments}
		}
		sections = s.resplitManualRanges(sections, t)
		if err := s.renderWordDefinitionFile(path, sections, t); err != nil {
			return nil, err
		}
		defs = append(defs, wordDef{Loc: e.Loc, Path: path})
	}
	return defs, nil
}

// ruleClassLabel renders a vibhaṅga uid as "Bu Pc 71".
func (s *Service) ruleClassLabel(uid string) (string, error) {
	parts := strings.Split(uid, "-")
	if len(parts) < 5 || len(parts[4]) < 3 {
		return "", fmt.Errorf("%w: cannot derive rule label from uid %q", ErrSectionShape, uid)
	}
	ruleID := parts[4]
	return fmt.Sprintf("%s %s %s", titleCase(parts[2]), titleCase(ruleID[:2]), ruleID[2:]), nil
}

// resplitManualRanges re-splits definitions merged by a manual range back
// into individual term/definition pairs for rendering: the merge exists
// only so the aligner sees the outer term once.
func (s *Service) resplitManualRanges(defs []corpus.DefinitionRef, t *corpus.Text) []corpus.DefinitionRef {
	for i := 0; i < len(defs); i++ {
		if _, ok := s.overrides.DefinitionRanges[defs[i].TermKey]; !ok {
			continue
		}
		keys := defs[i].DefinitionKeys
		for j, k := range keys {
			if strings.Contains(t.HTMLText[k], "<dt>{}") {
				rest := append([]string(nil), keys[j+1:]...)
				defs[i].DefinitionKeys = keys[:j+1]
				defs = append(defs[:i+1],
					append([]corpus.DefinitionRef{{TermKey: k, DefinitionKeys: rest}}, defs[i+1:]...)...)
				break
			}
		}
	}
	return defs
}

// renderWordDefinitionFile writes one word-definition document: per
// definition a "## term (gloss)" heading, the blockquoted root text with
// variant footnotes and a linked elision when one applies, the
// translation lines with comment footnotes, and an attribution link; then
// the collected footnotes.
func (s *Service) renderWordDefinitionFile(path string, defs []corpus.DefinitionRef, t *corpus.Text) error {
	fromDir := filepath.Dir(path)
	fns := &Footnotes{}
	var b strings.Builder
	var endRef string
	for _, def := range defs {
		term := strings.TrimSpace(t.RootText[def.TermKey])
		defRoot := s.rootTextFor(t, def.DefinitionKeys)
		variants, err := s.parseVariants(t, def.DefinitionKeys, defRoot)
		if err != nil {
			return err
		}
		lines, err := Weave(defRoot, nil, variants, fns, s.markup)
		if err != nil {
			return err
		}
		var body strings.Builder
		for _, line := range lines {
			body.WriteString("\n> " + line + " ")
		}
		linked, err := s.applyPeReference(term, body.String(), t.UID(), fromDir)
		if err != nil {
			return err
		}

		b.WriteString("## " + term)
		if gloss, ok := t.TranslationText[def.TermKey]; ok {
			b.WriteString(" (" + strings.ReplaceAll(gloss, ": ", "") + ")")
		}
		b.WriteString("\n")
		b.WriteString(linked)
		b.WriteString("\n")

		hasTranslation := false
		for _, k := range def.DefinitionKeys {
			tr, ok := t.TranslationText[k]
			if !ok {
				continue
			}
			hasTranslation = true
			b.WriteString("\n" + strings.TrimSpace(tr))
			if comment, ok := t.CommentText[k]; ok {
				note, err := s.renderNote(comment, fromDir)
				if err != nil {
					return err
				}
				b.WriteString(s.markup.FootnoteRef(fns.Add(note)))
			}
		}
		if hasTranslation {
			b.WriteString("\n")
			fmt.Fprintf(&b, "\n~ [%s's translation](%s)\n\n", s.attribution, s.scLink(def.TermKey))
		}
		if len(def.DefinitionKeys) > 0 {
			endRef = def.DefinitionKeys[len(def.DefinitionKeys)-1]
		}
	}
	if fns.Len() > 0 {
		b.WriteString("## Footnotes\n")
		for i, note := range fns.Notes() {
			fmt.Fprintf(&b, "\n[^%d]: %s\n", i+1, note)
		}
	}
	if s.overrides.UseFirstRefOnly(endRef) {
		endRef = defs[0].TermKey
	}
	return s.writeDocument(path, defs[0].TermKey, endRef, b.String())
}

// applyPeReference links a definition's single "…pe…" elision to the
// document spelling it out. Definitions with no elision, more than one,
// or a term without a recorded target pass through unchanged.
func (s *Service) applyPeReference(term, body, uid, fromDir string) (string, error) {
	if strings.Count(body, "…pe…") != 1 {
		return body, nil
	}
	segID, ok := s.overrides.PeReference(collection(uid), term)
	if !ok {
		return body, nil
	}
	path, found := s.registry.Lookup(segID)
	if !found {
		return "", fmt.Errorf("no document recorded for elision target %s", segID)
	}
	dest, err := markup.RelLink(path, fromDir)
	if err != nil {
		return "", err
	}
	return strings.Replace(body, "…pe…", "[…pe…]("+dest+")", 1), nil
}
