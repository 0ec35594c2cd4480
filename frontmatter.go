package vinayanotes

import (
	"fmt"

	"github.com/obu-labs/vinaya-notes/internal/fileutil"
	"github.com/obu-labs/vinaya-notes/internal/yamlutil"
)

// documentFooter closes every generated document. The vault is
// regenerated wholesale, so edits made in place are lost on the next run.
const documentFooter = `
---

DO NOT MODIFY.
To add your thoughts, create a new note and link to this one.
Found a problem? [Open an issue on GitHub](https://github.com/obu-labs/vinaya-notes/issues/new).
`

type frontMatter struct {
	Aliases []string `yaml:"aliases"`
}

// writeDocument writes one vault document: segment-id aliases as YAML
// front matter, the content, and the fixed footer. The file name is
// reserved for collision detection and the segment range is recorded for
// cross-linking.
func (s *Service) writeDocument(path, startID, endID, content string) error {
	if err := s.registry.Reserve(fileutil.Stem(path)); err != nil {
		return err
	}
	aliases := []string{startID}
	if endID != "" && endID != startID {
		aliases = append(aliases, endID)
	}
	fm, err := yamlutil.Marshal(frontMatter{Aliases: aliases})
	if err != nil {
		return fmt.Errorf("rendering front matter for %s: %w", path, err)
	}
	doc := "---\n" + string(fm) + "---\n" + content + documentFooter
	if err := fileutil.WriteDocument(path, doc); err != nil {
		return err
	}
	s.registry.Record(startID, endID, path)
	return nil
}
