package markup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// nakedTranslationLink matches suttacentral.net translation links in the
// bare "/{uid}/{lang}/{translator}#segment" form that comment text and
// appendix material use. Links that already carry query parameters are
// left alone: those were emitted deliberately with an explicit layout.
var nakedTranslationLink = regexp.MustCompile(
	`^https://suttacentral\.net/([a-z0-9-]+)/([a-z]+)/([a-z]+)#(.+)$`)

// SuttaCentralLink builds a web link to one translated segment, pinned to
// the line-by-line layout so the fragment anchor lands on the segment.
// ref is a "text-uid:segment" identifier.
func SuttaCentralLink(ref, lang, translator string) string {
	uid, seg, _ := strings.Cut(ref, ":")
	return fmt.Sprintf("https://suttacentral.net/%s/%s/%s?layout=linebyline#%s",
		uid, lang, translator, seg)
}

// RewriteLink converts one naked translation link into its line-by-line
// form. Returns the input unchanged (and false) for anything else.
func RewriteLink(dest string) (string, bool) {
	m := nakedTranslationLink.FindStringSubmatch(dest)
	if m == nil {
		return dest, false
	}
	return fmt.Sprintf("https://suttacentral.net/%s/%s/%s?layout=linebyline#%s",
		m[1], m[2], m[3], m[4]), true
}

// goldmarkParser is used only to locate link destinations; the documents
// are never re-rendered from the AST.
var goldmarkParser = goldmark.New()

// RewriteDestinations applies rewrite to every link destination in a
// markdown document and returns the updated document plus the number of
// rewrites. The document is parsed so that only real destinations are
// touched (a URL quoted in body text or a code span stays as it is),
// then each changed destination is substituted in its link syntax.
func RewriteDestinations(doc string, rewrite func(string) (string, bool)) (string, int) {
	root := goldmarkParser.Parser().Parse(text.NewReader([]byte(doc)))

	changed := map[string]string{}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch v := n.(type) {
		case *ast.Link:
			dest = string(v.Destination)
		case *ast.AutoLink:
			dest = string(v.URL([]byte(doc)))
		default:
			return ast.WalkContinue, nil
		}
		if next, ok := rewrite(dest); ok && next != dest {
			changed[dest] = next
		}
		return ast.WalkContinue, nil
	})

	count := 0
	for old, next := range changed {
		// Substitute inside link syntax only: "(old)" for inline links,
		// "<old>" for autolinks.
		if n := strings.Count(doc, "("+old+")"); n > 0 {
			doc = strings.ReplaceAll(doc, "("+old+")", "("+next+")")
			count += n
		}
		if n := strings.Count(doc, "<"+old+">"); n > 0 {
			doc = strings.ReplaceAll(doc, "<"+old+">", "<"+next+">")
			count += n
		}
	}
	return doc, count
}

// RewriteVaultLinks walks every .md file under root and rewrites naked
// suttacentral.net translation links to the line-by-line layout form.
// Returns the total number of rewritten links.
func RewriteVaultLinks(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from walking our own output tree
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		out, n := RewriteDestinations(string(data), RewriteLink)
		if n == 0 {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		total += n
		return nil
	})
	return total, err
}
