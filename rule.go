package vinayanotes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/fileutil"
	"github.com/obu-labs/vinaya-notes/internal/markup"
	"github.com/obu-labs/vinaya-notes/internal/pali"
)

// quoteEndingFixes restore the word form disturbed by stripping the
// closing quote particle: the particle assimilates the preceding nasal,
// so removing it has to undo the euphonic change too.
var quoteEndingFixes = []struct{ suffix, fixed string }{
	{"pācittiyan”", "pācittiyaṁ”"},
	{"paṭidesemī’”", "paṭidesemī’ti”"},
	{"saṅghādisesan”", "saṅghādisesaṁ”"},
}

// stripQuoteParticle removes the ending "”ti." quote particle from the
// rule text's last word. Every final ruling ends with it; anything else
// means the scan landed on the wrong paragraph.
func stripQuoteParticle(root RootText) error {
	if len(root) == 0 || len(root[len(root)-1]) == 0 {
		return fmt.Errorf("%w: empty rule text", ErrSectionShape)
	}
	last := root[len(root)-1]
	word := last[len(last)-1].Text
	if !strings.HasSuffix(word, "”ti.") {
		return fmt.Errorf("%w: unexpected root ending %q", ErrSectionShape, word)
	}
	word = strings.TrimSuffix(word, "ti.")
	for _, fix := range quoteEndingFixes {
		if strings.HasSuffix(word, fix.suffix) {
			word = strings.TrimSuffix(word, fix.suffix) + fix.fixed
			break
		}
	}
	last[len(last)-1] = NewToken(word)
	return nil
}

// biAppendixMention is the appendix name bhikkhunī-rule notes cite; the
// target depends on which rule the note belongs to, so the link is built
// here rather than in renderNote.
const biAppendixMention = "Appendix on Individual Bhikkhunī Rules"

// RuleFilePath computes the pātimokkha document path for a rule before it
// is rendered, so navigation links can point forward.
func (s *Service) RuleFilePath(vbUID, categoryRootName string, number int, menuName string) string {
	sangha := "Bhikkhu"
	if collection(vbUID) == "bi" {
		sangha = "Bhikkhuni"
	}
	return filepath.Join(s.vault.Patimokkha, fmt.Sprintf("%s %s %d (%s).md",
		sangha, pali.Fold(categoryRootName), number, s.ruleName(vbUID, menuName)))
}

// RenderRule writes the pātimokkha document for one rule and all of its
// vibhaṅga satellites: nonoffenses, word definitions, and for bhikkhunī
// rules the origin story and permutations. The rule's root text is woven
// with links into the word-definition documents and variant footnotes;
// the translation carries comment footnotes off the same counter.
func (s *Service) RenderRule(category corpus.MenuItem, rule corpus.MenuItem, number int, t *corpus.Text, nextFile string) error {
	if err := s.overrides.ApplyCommentFixes(t); err != nil {
		return err
	}
	vbUID := rule.UID
	sangha := "Bhikkhu"
	if collection(vbUID) == "bi" {
		sangha = "Bhikkhuni"
	}
	var originStoryID, permutationsID string
	var err error
	if sangha == "Bhikkhuni" {
		if originStoryID, err = s.renderOriginStory(t); err != nil {
			return err
		}
		if permutationsID, err = s.renderPermutations(t); err != nil {
			return err
		}
	}
	isSekhiya := category.RootName == "Sekhiya"
	hasCompanion := false
	if !isSekhiya && sangha == "Bhikkhu" {
		prefix := fmt.Sprintf("VB %s %d ", pali.Fold(category.RootName), number)
		if path, ok := s.companionPath(prefix); ok {
			s.registry.Record(vbUID, "", path)
			hasCompanion = true
		}
	}

	ruleKeys, err := t.FinalRulingKeys()
	if err != nil {
		return err
	}
	root := s.rootTextFor(t, ruleKeys)
	if err := stripQuoteParticle(root); err != nil {
		return err
	}

	var nonoffensesID string
	if category.RootName != "Aniyata" {
		nonoffensesID, err = t.KeyWhereTranslationContains("Non-offenses")
		if err != nil {
			return err
		}
		if err := s.renderNonoffenses(t, nonoffensesID); err != nil {
			return err
		}
	}

	var defs []wordDef
	if !isSekhiya {
		if defs, err = s.renderWordDefinitions(t, root); err != nil {
			return err
		}
	}
	spans := make([]Span, len(defs))
	for i, d := range defs {
		dest, err := markup.RelLink(d.Path, s.vault.Patimokkha)
		if err != nil {
			return err
		}
		spans[i] = Span{Loc: d.Loc, Dest: dest}
	}
	variants, err := s.parseVariants(t, ruleKeys, root)
	if err != nil {
		return err
	}
	fns := &Footnotes{}
	lines, err := Weave(root, spans, variants, fns, s.markup)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("## The Rule\n")
	for _, line := range lines {
		b.WriteString("\n> " + line)
	}
	b.WriteString("\n\n")

	numVariants := fns.Len()
	for _, k := range ruleKeys {
		b.WriteString(strings.TrimSpace(t.TranslationText[k]))
		if comment, ok := t.CommentText[k]; ok {
			note, err := s.renderNote(comment, s.vault.Patimokkha)
			if err != nil {
				return err
			}
			b.WriteString(s.markup.FootnoteRef(fns.Add(note)))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "~ [%s's translation](%s)\n\n", s.attribution, s.scLink(ruleKeys[0]))

	b.WriteString("## Vibhaṅga\n\n")
	writeSatellite := func(scid, suffix string) error {
		link, err := s.linkForSegment(scid, s.vault.Patimokkha)
		if err != nil {
			return err
		}
		b.WriteString("  - " + link + suffix + "\n")
		return nil
	}
	translated := " ~ " + s.attribution + "'s translation"
	if originStoryID != "" {
		if err := writeSatellite(originStoryID, translated); err != nil {
			return err
		}
	}
	if permutationsID != "" {
		if err := writeSatellite(permutationsID, translated); err != nil {
			return err
		}
	}
	if hasCompanion {
		if err := writeSatellite(vbUID, " ~ Bhante Suddhaso's translation (pdf)"); err != nil {
			return err
		}
	}
	if nonoffensesID != "" {
		if err := writeSatellite(nonoffensesID, translated); err != nil {
			return err
		}
	}
	b.WriteString("\n")

	if fns.Len() > 0 {
		notes := fns.Notes()
		if numVariants > 0 {
			b.WriteString("## Variants\n\n")
			for i := 0; i < numVariants; i++ {
				fmt.Fprintf(&b, "[^%d]: %s\n", i+1, notes[i])
			}
		}
		if len(notes) > numVariants {
			b.WriteString("\n## Translator's Notes\n\n")
			for i := numVariants; i < len(notes); i++ {
				note := notes[i]
				if strings.Contains(note, biAppendixMention) {
					dest := fmt.Sprintf(
						"../../Ajahn%%20Brahmali/Specific%%20Bhikkhuni%%20Rules/Bhikkhunī%%20%s%%20%d.md",
						strings.ToLower(category.RootName), number)
					note = strings.ReplaceAll(note, biAppendixMention,
						"["+biAppendixMention+"]("+dest+")")
				}
				fmt.Fprintf(&b, "[^%d]: %s\n", i+1, note)
			}
		}
	}

	if nextFile != "" {
		rel, err := markup.RelLink(nextFile, s.vault.Patimokkha)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\nNext: [%s](%s)\n", fileutil.Stem(nextFile), rel)
	}

	ruleFile := s.RuleFilePath(vbUID, category.RootName, number, rule.Name)
	uid := strings.Replace(vbUID, "-vb-", "-pm-", 1)
	return s.writeDocument(ruleFile, uid, "", b.String())
}
