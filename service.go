// Package vinayanotes converts a segment-keyed translation corpus into a
// vault of cross-linked markdown documents. The engine at its core aligns
// a rule's defining terms to their exact word ranges inside the rule's
// root text, resolves overlapping and repeated terms, and weaves
// hyperlinks and footnote markers into the token stream without either
// annotation system corrupting the other.
package vinayanotes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/fileutil"
	"github.com/obu-labs/vinaya-notes/internal/markup"
	"github.com/obu-labs/vinaya-notes/internal/yamlutil"
)

// Vault is the output directory layout of one generation run. All paths
// are absolute.
type Vault struct {
	Root         string // the vault itself, e.g. ".../Canon (Pali)"
	Parent       string // the vault's parent, base for cross-module paths
	Patimokkha   string
	Stories      string
	WordDefs     string
	Nonoffenses  string
	Permutations string
}

// NewVault lays out the folder structure under root.
func NewVault(root string) (Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Vault{}, fmt.Errorf("resolving vault root: %w", err)
	}
	vb := filepath.Join(abs, "Vibhanga")
	return Vault{
		Root:         abs,
		Parent:       filepath.Dir(abs),
		Patimokkha:   filepath.Join(abs, "Patimokkha"),
		Stories:      filepath.Join(vb, "Origin Stories"),
		WordDefs:     filepath.Join(vb, "Word Analysis"),
		Nonoffenses:  filepath.Join(vb, "Nonoffenses"),
		Permutations: filepath.Join(vb, "Permutations"),
	}, nil
}

// Create makes the vault directories, refusing an existing root.
func (v Vault) Create() error {
	if err := fileutil.EnsureFreshDir(v.Root); err != nil {
		return err
	}
	for _, dir := range []string{v.Patimokkha, v.Stories, v.WordDefs, v.Nonoffenses, v.Permutations} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Companion is one external companion translation file, matched to rules
// by name prefix. Path is relative to the companion folder under the
// vault parent.
type Companion struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type companionIndex struct {
	Files []Companion `yaml:"files"`
}

// LoadCompanions parses a companion index file.
func LoadCompanions(data []byte) ([]Companion, error) {
	var idx companionIndex
	if err := yamlutil.UnmarshalStrict(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing companion index: %w", err)
	}
	return idx.Files, nil
}

// Service renders corpus texts into vault documents. Rendering is
// strictly sequential; only corpus prefetching may run concurrently.
type Service struct {
	client      *corpus.Client
	registry    *Registry
	overrides   *Overrides
	markup      Markup
	vault       Vault
	ruleNames   map[string]string
	glossary    map[string]string
	companions  []Companion
	attribution string
	logf        func(format string, args ...any)
	warnf       func(format string, args ...any)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClient sets the corpus client.
func WithClient(c *corpus.Client) ServiceOption {
	return func(s *Service) { s.client = c }
}

// WithRegistry sets the document registry. One registry spans one run.
func WithRegistry(r *Registry) ServiceOption {
	return func(s *Service) { s.registry = r }
}

// WithOverrides injects the corpus-correction tables.
func WithOverrides(o *Overrides) ServiceOption {
	return func(s *Service) { s.overrides = o }
}

// WithMarkup selects the markdown dialect for links and footnotes.
func WithMarkup(m Markup) ServiceOption {
	return func(s *Service) { s.markup = m }
}

// WithRuleNames supplies traditional rule names keyed by vibhaṅga uid.
// Rules absent from the map fall back to the menu name.
func WithRuleNames(names map[string]string) ServiceOption {
	return func(s *Service) { s.ruleNames = names }
}

// WithGlossary supplies the stem→path glossary index for translator-note
// term linking. Paths are relative to the vault parent.
func WithGlossary(g map[string]string) ServiceOption {
	return func(s *Service) { s.glossary = g }
}

// WithCompanions supplies the companion translation index.
func WithCompanions(c []Companion) ServiceOption {
	return func(s *Service) { s.companions = c }
}

// WithAttribution names the translator in attribution lines.
func WithAttribution(name string) ServiceOption {
	return func(s *Service) { s.attribution = name }
}

// WithLogf sets the progress sink.
func WithLogf(logf func(format string, args ...any)) ServiceOption {
	return func(s *Service) { s.logf = logf }
}

// WithWarnf sets the warning sink.
func WithWarnf(warnf func(format string, args ...any)) ServiceOption {
	return func(s *Service) { s.warnf = warnf }
}

// NewService builds a renderer writing into the vault rooted at root.
func NewService(root string, opts ...ServiceOption) (*Service, error) {
	vault, err := NewVault(root)
	if err != nil {
		return nil, err
	}
	s := &Service{
		client:      corpus.NewClient(),
		registry:    NewRegistry(),
		overrides:   &Overrides{},
		markup:      ObsidianMarkup{},
		vault:       vault,
		attribution: "Ajahn Brahmali",
		logf:        func(string, ...any) {},
		warnf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Vault returns the output layout.
func (s *Service) Vault() Vault { return s.vault }

// Registry returns the run's document registry.
func (s *Service) Registry() *Registry { return s.registry }

// SetRuleName records a rule name discovered at run time, such as a
// bhikkhunī rule inheriting its bhikkhu parallel's name.
func (s *Service) SetRuleName(vbUID, name string) {
	if s.ruleNames == nil {
		s.ruleNames = make(map[string]string)
	}
	s.ruleNames[vbUID] = name
}

// ruleName resolves the traditional name for a vibhaṅga uid, falling back
// to the supplied menu name.
func (s *Service) ruleName(vbUID, fallback string) string {
	if name, ok := s.ruleNames[vbUID]; ok {
		return name
	}
	return fallback
}

// HasRuleName reports whether a name is already recorded for vbUID.
func (s *Service) HasRuleName(vbUID string) bool {
	_, ok := s.ruleNames[vbUID]
	return ok
}

// InheritRuleName copies the recorded name from one vibhaṅga uid to
// another. Missing source names are left unrecorded so the menu name
// fallback applies.
func (s *Service) InheritRuleName(vbUID, fromVbUID string) {
	if name, ok := s.ruleNames[fromVbUID]; ok {
		s.SetRuleName(vbUID, name)
	}
}

// scLink builds the web link for one translated segment.
func (s *Service) scLink(ref string) string {
	return markup.SuttaCentralLink(ref, "en", s.client.Translator())
}

// linkForSegment renders a markdown link to the document recorded for
// scid, relative to fromDir.
func (s *Service) linkForSegment(scid, fromDir string) (string, error) {
	path, ok := s.registry.Lookup(scid)
	if !ok {
		return "", fmt.Errorf("no document recorded for segment %s", scid)
	}
	rel, err := markup.RelLink(path, fromDir)
	if err != nil {
		return "", err
	}
	return "[" + fileutil.Stem(path) + "](" + rel + ")", nil
}

// companionPath finds the companion file whose name starts with prefix.
// Paths resolve under the "Bhante Suddhaso" folder of the vault parent.
func (s *Service) companionPath(prefix string) (string, bool) {
	for _, c := range s.companions {
		if strings.HasPrefix(c.Name, prefix) {
			return filepath.Join(s.vault.Parent, "Bhante Suddhaso", c.Path), true
		}
	}
	return "", false
}

// collection returns "bu" or "bi" for a text uid.
func collection(uid string) string {
	if strings.Contains(uid, "-bi-") {
		return "bi"
	}
	return "bu"
}

// ruleShortName renders a segment id's rule as "Bu Pc 71 (Name)".
func (s *Service) ruleShortName(scid string) (string, error) {
	textUID, _, _ := strings.Cut(scid, ":")
	parts := strings.Split(textUID, "-")
	if len(parts) < 5 {
		return "", fmt.Errorf("%w: cannot derive rule name from %s", ErrSectionShape, scid)
	}
	ruleID := parts[len(parts)-1]
	if len(ruleID) < 3 {
		return "", fmt.Errorf("%w: unexpected rule id %q in %s", ErrSectionShape, ruleID, scid)
	}
	name := s.ruleName(textUID, "")
	label := fmt.Sprintf("%s %s %s", titleCase(parts[2]), titleCase(ruleID[:2]), ruleID[2:])
	if name != "" {
		label += " (" + name + ")"
	}
	return label, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// rootLine tokenizes one segment's root text, honoring overrides.
func (s *Service) rootLine(t *corpus.Text, key string) Line {
	return Tokenize(s.overrides.RootTextFor(t, key))
}

// rootTextFor builds the RootText for a key run.
func (s *Service) rootTextFor(t *corpus.Text, keys []string) RootText {
	root := make(RootText, len(keys))
	for i, k := range keys {
		root[i] = s.rootLine(t, k)
	}
	return root
}
