package vinayanotes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/dateutil"
	"github.com/obu-labs/vinaya-notes/internal/fileutil"
	"github.com/obu-labs/vinaya-notes/internal/markup"
	"github.com/obu-labs/vinaya-notes/internal/pali"
)

// renderNonoffenses writes the non-offense clauses of one rule:
// translation and blockquoted root text interleaved segment by segment,
// with comment and raw variant footnotes off one counter.
func (s *Service) renderNonoffenses(t *corpus.Text, headingID string) error {
	if !strings.Contains(t.HTMLText[headingID], "<section class='anapatti'") {
		return fmt.Errorf("%w: %s is not a non-offense section", ErrSectionShape, headingID)
	}
	shortName, err := s.ruleShortName(headingID)
	if err != nil {
		return err
	}
	path := filepath.Join(s.vault.Nonoffenses, fmt.Sprintf("Nonoffenses for %s.md", shortName))

	fns := &Footnotes{}
	noteCount := 0
	var b strings.Builder
	spot := t.IndexOf(headingID)
	linkTo := t.KeysOrder[spot+1]
	scid := headingID
	for !strings.Contains(t.HTMLText[scid], "</section>") {
		spot++
		scid = t.KeysOrder[spot]
		if tr, ok := t.TranslationText[scid]; ok {
			b.WriteString("\n" + strings.TrimSpace(tr))
			if comment, ok := t.CommentText[scid]; ok {
				note, err := s.renderNote(comment, s.vault.Nonoffenses)
				if err != nil {
					return err
				}
				noteCount++
				b.WriteString(s.markup.FootnoteRef(fns.Add(note)))
			}
			b.WriteString("  \n")
		}
		if root, ok := t.RootText[scid]; ok {
			b.WriteString("> " + strings.TrimSpace(root))
			if variant, ok := t.VariantText[scid]; ok {
				b.WriteString(s.markup.FootnoteRef(fns.Add(variant)))
			}
			b.WriteString("  \n")
		}
	}
	if fns.Len() > 0 {
		b.WriteString("\n## Footnote")
		if fns.Len() > 1 {
			b.WriteString("s")
		}
		b.WriteString("\n")
		for i, note := range fns.Notes() {
			fmt.Fprintf(&b, "\n[^%d]: %s  \n", i+1, note)
		}
	}
	b.WriteString("\nTranslation ")
	if noteCount == 1 {
		b.WriteString("and note ")
	} else if noteCount > 1 {
		b.WriteString("and notes ")
	}
	fmt.Fprintf(&b, "by %s.\nSource URL: <%s>\n", s.attribution, s.scLink(linkTo))
	return s.writeDocument(path, headingID, scid, b.String())
}

// renderSectionAsStory renders a key run of html lines with the
// translation substituted into each line's "{}" placeholder, comment
// footnote markers riding inside the text, and the whole converted to
// markdown afterwards.
func (s *Service) renderSectionAsStory(t *corpus.Text, from, to int, fromDir string, fns *Footnotes) (string, string, error) {
	var html strings.Builder
	var lastKey string
	for i := from; i < to; i++ {
		key := t.KeysOrder[i]
		lastKey = key
		text := t.TranslationText[key]
		if comment, ok := t.CommentText[key]; ok && len(strings.TrimSpace(comment)) > 1 {
			note, err := s.renderNote(comment, fromDir)
			if err != nil {
				return "", "", err
			}
			text += s.markup.FootnoteRef(fns.Add(note)) + " "
		}
		html.WriteString(strings.ReplaceAll(t.HTMLText[key], "{}", text))
	}
	md, err := markup.ToMarkdown(html.String())
	if err != nil {
		return "", "", err
	}
	return md, lastKey, nil
}

func footnoteSection(heading string, fns *Footnotes) string {
	if fns.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n## " + heading)
	if fns.Len() > 1 {
		b.WriteString("s")
	}
	b.WriteString("\n")
	for i, note := range fns.Notes() {
		fmt.Fprintf(&b, "\n[^%d]: %s\n", i+1, note)
	}
	return b.String()
}

// renderOriginStory writes the origin-story document of a bhikkhunī rule:
// everything between the "Origin story" heading and the final ruling.
// Returns the story's first segment id for the rule document's link list.
func (s *Service) renderOriginStory(t *corpus.Text) (string, error) {
	storyID, err := t.KeyWhereTranslationContains("Origin story")
	if err != nil {
		return "", err
	}
	rulingID, err := t.KeyWhereTranslationContains("Final ruling")
	if err != nil {
		return "", err
	}
	shortName, err := s.ruleShortName(storyID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.vault.Stories, fmt.Sprintf("Origin story for %s.md", shortName))

	fns := &Footnotes{}
	md, lastKey, err := s.renderSectionAsStory(t, t.IndexOf(storyID)+1, t.IndexOf(rulingID), s.vault.Stories, fns)
	if err != nil {
		return "", err
	}
	content := fmt.Sprintf("\nTranslated by [%s](%s)\n%s...\n", s.attribution, s.scLink(storyID), md)
	content += footnoteSection("Footnote", fns)
	if err := s.writeDocument(path, storyID, lastKey, content); err != nil {
		return "", err
	}
	return storyID, nil
}

// renderPermutations writes the permutation-series document of a
// bhikkhunī rule. Not every rule has one; a missing section returns an
// empty id and no error.
func (s *Service) renderPermutations(t *corpus.Text) (string, error) {
	starts, err := t.KeysWhereHTMLContains("<section class='cakka'>")
	if err != nil {
		if errors.Is(err, corpus.ErrNoMatch) {
			return "", nil
		}
		return "", err
	}
	if len(starts) > 1 {
		return "", fmt.Errorf("%w: multiple permutation sections: %s", ErrSectionShape, strings.Join(starts, ", "))
	}
	permutationsID := starts[0]
	nonoffensesID, err := t.KeyWhereTranslationContains("Non-offenses")
	if err != nil {
		return "", err
	}
	shortName, err := s.ruleShortName(permutationsID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.vault.Permutations, fmt.Sprintf("Permutations for %s.md", shortName))

	from := t.IndexOf(permutationsID)
	if strings.Contains(t.HTMLText[permutationsID], "<h2") {
		from++
	}
	fns := &Footnotes{}
	md, lastKey, err := s.renderSectionAsStory(t, from, t.IndexOf(nonoffensesID), s.vault.Permutations, fns)
	if err != nil {
		return "", err
	}
	content := fmt.Sprintf("\nTranslated by [%s](%s)\n\n%s", s.attribution, s.scLink(permutationsID), md)
	content += footnoteSection("Note", fns)
	if err := s.writeDocument(path, permutationsID, lastKey, content); err != nil {
		return "", err
	}
	return permutationsID, nil
}

// BhikkhuParallelUID resolves the bhikkhu rule a vibhaṅga-less bhikkhunī
// rule copies its analysis from. A few rules have no usable parallel data
// and carry fixed targets instead.
func BhikkhuParallelUID(rule corpus.Parallel) (string, error) {
	uid := rule.UID
	switch {
	case strings.HasPrefix(uid, "pli-tv-bi-pm-pd"):
		return "pli-tv-bi-pm-pd1", nil
	case uid == "pli-tv-bi-pm-sk30":
		return "pli-tv-bu-pm-sk30", nil
	case uid == "pli-tv-bi-pm-pc91", uid == "pli-tv-bi-pm-pc92", uid == "pli-tv-bi-pm-pc93":
		return "pli-tv-bi-pm-pc90", nil
	}
	prefix := strings.Replace(uid, "-bi-", "-bu-", 1)
	if len(prefix) > 15 {
		prefix = prefix[:15]
	}
	var found []string
	for _, p := range rule.Parallels {
		if p.To.UID != "" && strings.HasPrefix(p.To.UID, prefix) {
			found = append(found, p.To.UID)
		}
	}
	if len(found) != 1 {
		return "", fmt.Errorf("found %d bhikkhu parallels for %s: %s",
			len(found), uid, strings.Join(found, ", "))
	}
	return found[0], nil
}

// RenderCopiedRule writes the pātimokkha document for a bhikkhunī rule
// without a vibhaṅga of its own: the rule text out of the bhikkhunī
// pātimokkha plus a pointer to the bhikkhu parallel's analysis.
func (s *Service) RenderCopiedRule(biPm *corpus.Text, category corpus.MenuItem, rule corpus.Parallel, number int, nextFile string) error {
	buUID, err := BhikkhuParallelUID(rule)
	if err != nil {
		return err
	}
	name := s.ruleName(strings.Replace(buUID, "-pm-", "-vb-", 1), rule.Name)
	ruleKeys, err := biPm.PatimokkhaRuleKeys(fmt.Sprintf("%s %d. ", category.RootName, number))
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("\n## The Rule\n")
	for _, k := range ruleKeys {
		b.WriteString("\n> " + biPm.RootText[k] + " ")
	}
	b.WriteString("\n")
	for _, k := range ruleKeys {
		b.WriteString("\n" + biPm.TranslationText[k] + " ")
	}
	fmt.Fprintf(&b, "\n~ [%s's translation](%s)", s.attribution, s.scLink(ruleKeys[0]))
	b.WriteString("\n\n## Vibhaṅga\n\nThe Vibhaṅga for this rule doesn't exist. ")
	link, err := s.linkForSegment(buUID, s.vault.Patimokkha)
	if err != nil {
		return err
	}
	b.WriteString("Please see " + link + " for links to its analysis.\n")
	if nextFile != "" {
		rel, err := markup.RelLink(nextFile, s.vault.Patimokkha)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\nNext: [%s](%s)\n", fileutil.Stem(nextFile), rel)
	}

	path := filepath.Join(s.vault.Patimokkha, fmt.Sprintf("Bhikkhuni %s %d (%s).md",
		pali.Fold(category.RootName), number, name))
	return s.writeDocument(path, rule.UID, "", b.String())
}

// CategoryFilePath computes the category metafile path.
func (s *Service) CategoryFilePath(categoryUID, rootName string) string {
	sangha := "Bhikkhu"
	if collection(categoryUID) == "bi" {
		sangha = "Bhikkhuni"
	}
	return filepath.Join(s.vault.Patimokkha, fmt.Sprintf("%s %s Rules.md", sangha, pali.Fold(rootName)))
}

// RenderCategoryMetafile writes the index note for one rule category.
func (s *Service) RenderCategoryMetafile(category corpus.MenuItem) error {
	sangha := "Bhikkhu"
	if collection(category.UID) == "bi" {
		sangha = "Bhikkhuni"
	}
	path := s.CategoryFilePath(category.UID, category.RootName)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", category.RootName)
	if category.Name != "" && category.Name != category.RootName {
		fmt.Fprintf(&b, "%s\n\n", category.Name)
	}
	fmt.Fprintf(&b, "The %s rules of the %s Pātimokkha, each analyzed in its own note in this folder.\n",
		category.RootName, sangha)
	fmt.Fprintf(&b, "\nSource: <https://suttacentral.net/%s>\n", category.UID)
	return s.writeDocument(path, category.UID, "", b.String())
}

const readmeFormat = `
This folder contains the Vinaya of the Pāli Canon as a collection of markdown notes generated from %s's translation on SuttaCentral.
For more information about the Vinaya and his translation, see [his general introduction](../Ajahn%%20Brahmali/General/General%%20introduction%%20to%%20the%%20Monastic%%20Law.md).

This folder was automatically generated from SuttaCentral data on **%s** by:
https://github.com/obu-labs/vinaya-notes

For feedback on the translations, please write to
[the SuttaCentral Forum's "Feedback" Category](https://discourse.suttacentral.net/c/feedback/19).
For issues with these markdown files, feel free to open
[an Issue on GitHub](https://github.com/obu-labs/vinaya-notes/issues).

To support SuttaCentral's work, consider [making a donation](https://suttacentral.net/donations?lang=en).
`

// WriteReadme writes the vault README, stamped with the generation date.
func (s *Service) WriteReadme(now time.Time) error {
	date, err := dateutil.Resolve("auto", now)
	if err != nil {
		return err
	}
	content := fmt.Sprintf(readmeFormat, s.attribution, date)
	return fileutil.WriteDocument(filepath.Join(s.vault.Root, "README.md"), content)
}
