package vinayanotes

import (
	"fmt"

	"github.com/obu-labs/vinaya-notes/internal/markup"
)

// ObsidianMarkup renders links and footnotes in Obsidian-flavored
// markdown: [text](dest) links, [^n] footnote references, and unicode
// superscript digits for the inline form.
type ObsidianMarkup struct{}

func (ObsidianMarkup) LinkOpen() string { return "[" }

func (ObsidianMarkup) LinkClose(dest string) string { return "](" + dest + ")" }

func (ObsidianMarkup) FootnoteRef(n int) string { return fmt.Sprintf("[^%d]", n) }

func (ObsidianMarkup) InlineFootnoteRef(n int) string { return markup.Superscript(n) }

// Compile-time interface check.
var _ Markup = ObsidianMarkup{}
