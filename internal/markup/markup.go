// Package markup renders and rewrites the markdown dialect of the
// generated vault: HTML→markdown conversion for translator notes,
// Obsidian-style relative links, unicode superscript footnote markers,
// and the post-generation rewrite of suttacentral.net link destinations.
package markup

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
)

// superscriptDigits maps '0'..'9' to their unicode superscript forms.
var superscriptDigits = []rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// Superscript renders a non-negative number as unicode superscript
// digits, e.g. 12 → "¹²".
func Superscript(n int) string {
	var b strings.Builder
	for _, d := range strconv.Itoa(n) {
		if d >= '0' && d <= '9' {
			b.WriteRune(superscriptDigits[d-'0'])
		}
	}
	return b.String()
}

// RelLink returns target's path relative to fromDir, slash-separated and
// with spaces percent-encoded, the form Obsidian expects inside a
// markdown link destination.
func RelLink(target, fromDir string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", fmt.Errorf("relative link from %s to %s: %w", fromDir, target, err)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), " ", "%20"), nil
}

// converter is shared: html-to-markdown converters are safe for
// concurrent use once built.
var (
	converterOnce sync.Once
	converter     *htmltomd.Converter
)

// ToMarkdown converts an HTML fragment to markdown. Used for translator
// comments and for HTML-shaped sections (origin stories, permutations)
// after translation text is substituted into their placeholders.
func ToMarkdown(html string) (string, error) {
	converterOnce.Do(func() {
		converter = htmltomd.NewConverter("", true, nil)
	})
	out, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}
