package vinayanotes

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/markup"
	"github.com/obu-labs/vinaya-notes/internal/pali"
)

// inlinePali matches the corpus markup for an untranslated Pali term
// inside a translator comment.
var inlinePali = regexp.MustCompile(`<i lang=['"]pi['"] translate=['"]no['"]>(.*?)</i>`)

// technicalTermsMention is the appendix name translator notes cite
// without a link; the glossary supplies the target.
const technicalTermsMention = "Appendix of Technical Terms"

// renderNote converts one translator comment from corpus HTML to
// markdown, first applying the verbatim note-link substitutions and then
// linking glossary terms. A comparison note (per the override markers)
// links every resolvable inline term; a note citing the technical-terms
// appendix links each citation through the nearest preceding glossary
// term.
func (s *Service) renderNote(note, fromDir string) (string, error) {
	for _, nl := range s.overrides.NoteLinks {
		note = strings.ReplaceAll(note, nl.Search, nl.Replace)
	}
	var err error
	if s.overrides.NeedsMultiLinks(note) {
		note, err = s.linkAllTerms(note, fromDir)
	} else if strings.Contains(note, technicalTermsMention) {
		note, err = s.linkTechnicalTerms(note, fromDir)
	}
	if err != nil {
		return "", err
	}
	return markup.ToMarkdown(note)
}

// glossaryLink resolves a printed Pali term to a vault-relative link
// destination via its crude stem. A multi-word term has no stem.
func (s *Service) glossaryLink(term, fromDir string) (string, bool, error) {
	stem := pali.Stem(term)
	if strings.Contains(stem, " ") {
		return "", false, fmt.Errorf("cannot stem multi-word term %q for glossary lookup", term)
	}
	relpath, ok := s.glossary[stem]
	if !ok {
		return "", false, nil
	}
	dest, err := markup.RelLink(filepath.Join(s.vault.Parent, relpath), fromDir)
	if err != nil {
		return "", false, err
	}
	return dest, true, nil
}

// linkAllTerms wraps every glossary-resolvable inline term of a
// comparison note in a link. Matches are rewritten back to front so the
// earlier spans stay valid.
func (s *Service) linkAllTerms(note, fromDir string) (string, error) {
	matches := inlinePali.FindAllStringSubmatchIndex(note, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][2], matches[i][3]
		term := note[start:end]
		dest, ok, err := s.glossaryLink(term, fromDir)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		// An anchor, not markdown syntax: the note is still HTML here and
		// the converter renders anchors as links.
		note = note[:start] + `<a href="` + dest + `">` + term + "</a>" + note[end:]
	}
	return note, nil
}

// linkTechnicalTerms links each appendix citation through the last
// glossary-resolvable term before it. The citation is meaningless
// without knowing which term it glosses, so an unresolvable citation is
// an error rather than a silent pass-through.
func (s *Service) linkTechnicalTerms(note, fromDir string) (string, error) {
	parts := strings.Split(note, technicalTermsMention)
	var b strings.Builder
	for _, part := range parts[:len(parts)-1] {
		b.WriteString(part)
		matches := inlinePali.FindAllStringSubmatch(part, -1)
		if len(matches) == 0 {
			return "", fmt.Errorf("no Pali term precedes the appendix citation in %q", part)
		}
		linked := false
		for i := len(matches) - 1; i >= 0; i-- {
			dest, ok, err := s.glossaryLink(matches[i][1], fromDir)
			if err != nil {
				return "", err
			}
			if ok {
				b.WriteString(`<a href="` + dest + `">` + technicalTermsMention + "</a>")
				linked = true
				break
			}
		}
		if !linked {
			return "", fmt.Errorf("no glossary match for the appendix citation in %q", part)
		}
	}
	b.WriteString(parts[len(parts)-1])
	return b.String(), nil
}
