package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	vinayanotes "github.com/obu-labs/vinaya-notes"
	"github.com/obu-labs/vinaya-notes/internal/assets"
	"github.com/obu-labs/vinaya-notes/internal/config"
	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/markup"
	"github.com/obu-labs/vinaya-notes/internal/yamlutil"
)

var errNoOutputDir = errors.New("output directory argument is required")

// firstNonEmpty applies the flags > env > config precedence.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// loadYAMLMap parses a flat string-to-string data file.
func loadYAMLMap(dataDir, name string) (map[string]string, error) {
	data, err := assets.LoadFrom(dataDir, name)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	if err := yamlutil.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return m, nil
}

func run(flags *generateFlags, args []string, stderr io.Writer) error {
	if !flags.quiet {
		warnUnknownEnvVars(stderr)
	}
	env := loadEnvConfig()

	cfg := config.DefaultConfig()
	if configPath := firstNonEmpty(flags.config, env.ConfigPath); configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(configPath); err != nil {
			return err
		}
	}

	outputDir := cfg.Output.Dir
	if len(args) > 0 {
		outputDir = args[0]
	}
	if outputDir == "" {
		return errNoOutputDir
	}

	baseURL := firstNonEmpty(flags.baseURL, env.BaseURL, cfg.Corpus.BaseURL)
	translator := firstNonEmpty(flags.translator, env.Translator, cfg.Corpus.Translator)
	cacheDir := firstNonEmpty(flags.cacheDir, env.CacheDir, cfg.Corpus.CacheDir)
	dataDir := firstNonEmpty(flags.dataDir, env.DataDir, cfg.Output.DataDir)
	workers := resolvePoolSize(firstPositive(flags.workers, env.Workers, cfg.Run.Workers))
	skipBi := flags.skipBi || cfg.Run.SkipBhikkhuni

	if cacheDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("resolving cache directory: %w", err)
		}
		cacheDir = filepath.Join(userCache, "vinaya-notes")
	}

	heading := color.New(color.FgCyan)
	step := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	logf := func(format string, fmtArgs ...any) {
		if !flags.quiet {
			heading.Fprintf(stderr, format+"\n", fmtArgs...)
		}
	}
	stepf := func(format string, fmtArgs ...any) {
		if !flags.quiet {
			step.Fprintf(stderr, format+"\n", fmtArgs...)
		}
	}
	warnf := func(format string, fmtArgs ...any) {
		warn.Fprintf(stderr, "Warning: "+format+"\n", fmtArgs...)
	}
	verbosef := func(format string, fmtArgs ...any) {
		if flags.verbose {
			fmt.Fprintf(stderr, format+"\n", fmtArgs...)
		}
	}

	cache, err := corpus.OpenCache(cacheDir)
	if err != nil {
		return err
	}
	defer cache.Close()

	clientOpts := []corpus.Option{
		corpus.WithCache(cache),
		corpus.WithTranslator(translator),
		corpus.WithTextTTL(time.Duration(cfg.Corpus.CacheTTLDays) * 24 * time.Hour),
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, corpus.WithBaseURL(baseURL))
	}
	client := corpus.NewClient(clientOpts...)

	overridesData, err := assets.LoadFrom(dataDir, assets.OverridesFile)
	if err != nil {
		return err
	}
	overrides, err := vinayanotes.LoadOverrides(overridesData)
	if err != nil {
		return err
	}
	ruleNames, err := loadYAMLMap(dataDir, assets.RuleNamesFile)
	if err != nil {
		return err
	}
	glossary, err := loadYAMLMap(dataDir, assets.GlossaryFile)
	if err != nil {
		return err
	}
	companionsData, err := assets.LoadFrom(dataDir, assets.CompanionsFile)
	if err != nil {
		return err
	}
	companions, err := vinayanotes.LoadCompanions(companionsData)
	if err != nil {
		return err
	}

	svc, err := vinayanotes.NewService(outputDir,
		vinayanotes.WithClient(client),
		vinayanotes.WithOverrides(overrides),
		vinayanotes.WithRuleNames(ruleNames),
		vinayanotes.WithGlossary(glossary),
		vinayanotes.WithCompanions(companions),
		vinayanotes.WithLogf(verbosef),
		vinayanotes.WithWarnf(warnf),
	)
	if err != nil {
		return err
	}
	if err := svc.Vault().Create(); err != nil {
		return err
	}

	ctx := context.Background()
	logf("Generating Pātimokkha rule notes...")
	stepf("  Fetching rule categories...")
	categories, err := client.Menu(ctx, "pli-tv-bu-vb")
	if err != nil {
		return err
	}
	biPm, err := client.Text(ctx, "pli-tv-bi-pm")
	if err != nil {
		return err
	}

	// Enumerate every rule uid up front so the cache can be warmed
	// concurrently; rendering stays sequential.
	rulesByCategory := make(map[string][]corpus.MenuItem)
	var prefetchUIDs []string
	for _, category := range categories {
		if category.UID == "pli-tv-bu-vb-as" {
			continue
		}
		rules, err := client.Menu(ctx, category.UID)
		if err != nil {
			return err
		}
		rulesByCategory[category.UID] = rules
		for _, rule := range rules {
			prefetchUIDs = append(prefetchUIDs, rule.UID)
		}
	}
	stepf("  Warming the corpus cache with %d workers...", workers)
	prefetch(ctx, client, prefetchUIDs, workers, verbosef)

	for i, category := range categories {
		if category.UID == "pli-tv-bu-vb-as" {
			continue
		}
		if err := svc.RenderCategoryMetafile(category); err != nil {
			return err
		}
		stepf("  Writing Bhikkhu %s rules...", category.RootName)
		rules := rulesByCategory[category.UID]
		for j, rule := range rules {
			verbosef("    Writing %s rule %d...", category.RootName, j+1)
			t, err := client.Text(ctx, rule.UID)
			if err != nil {
				return err
			}
			var nextFile string
			if j < len(rules)-1 {
				next := rules[j+1]
				nextFile = svc.RuleFilePath(next.UID, category.RootName, j+2, next.Name)
			} else if i < len(categories)-2 {
				next := categories[i+1]
				nextFile = svc.CategoryFilePath(next.UID, next.RootName)
			}
			if err := svc.RenderRule(category, rule, j+1, t, nextFile); err != nil {
				return fmt.Errorf("rendering %s: %w", rule.UID, err)
			}
		}
	}

	if !skipBi {
		if err := generateBhikkhuni(ctx, client, svc, biPm, stepf, verbosef); err != nil {
			return err
		}
	}

	if err := svc.WriteReadme(time.Now()); err != nil {
		return err
	}

	logf("Rewriting SuttaCentral links in generated files...")
	rewritten, err := markup.RewriteVaultLinks(svc.Vault().Root)
	if err != nil {
		return err
	}
	verbosef("  Rewrote %d links.", rewritten)

	logf("Writing the segment map...")
	mapFile, err := os.Create(filepath.Join(svc.Vault().Root, "scidmap.json"))
	if err != nil {
		return fmt.Errorf("creating segment map: %w", err)
	}
	defer mapFile.Close()
	if err := svc.Registry().WriteJSON(mapFile, svc.Vault().Parent); err != nil {
		return fmt.Errorf("writing segment map: %w", err)
	}
	logf("Done.")
	return nil
}

// generateBhikkhuni renders the bhikkhunī collection. Its rule list comes
// from the pātimokkha parallels rather than the vibhaṅga menu, because
// many bhikkhunī rules have no vibhaṅga of their own and are rendered as
// copies pointing at the bhikkhu parallel.
func generateBhikkhuni(ctx context.Context, client *corpus.Client, svc *vinayanotes.Service, biPm *corpus.Text, stepf, verbosef func(string, ...any)) error {
	categories, err := client.Menu(ctx, "pli-tv-bi-vb")
	if err != nil {
		return err
	}
	allParallels, err := client.ParallelsLite(ctx, "pli-tv-bi-pm")
	if err != nil {
		return err
	}
	for i, category := range categories {
		if category.UID == "pli-tv-bi-vb-as" {
			continue
		}
		pmCategoryUID := strings.Replace(category.UID, "-vb-", "-pm-", 1)
		var rules []corpus.Parallel
		for _, rule := range allParallels {
			if strings.HasPrefix(rule.UID, pmCategoryUID) {
				rules = append(rules, rule)
			}
		}
		// Rules without a name of their own inherit the parallel
		// bhikkhu rule's name.
		for _, rule := range rules {
			vbUID := strings.Replace(rule.UID, "-pm-", "-vb-", 1)
			if svc.HasRuleName(vbUID) {
				continue
			}
			buUID, err := vinayanotes.BhikkhuParallelUID(rule)
			if err != nil {
				return err
			}
			svc.InheritRuleName(vbUID, strings.Replace(buUID, "-pm-", "-vb-", 1))
		}
		if err := svc.RenderCategoryMetafile(category); err != nil {
			return err
		}
		category.RootName = strings.ReplaceAll(category.RootName, "aP", "a P")
		stepf("  Writing Bhikkhuni %s rules...", category.RootName)

		vibhangaRules, err := client.Menu(ctx, category.UID)
		if err != nil {
			return err
		}
		vibhangas := make(map[string]corpus.MenuItem, len(vibhangaRules))
		for _, vb := range vibhangaRules {
			vibhangas[vb.UID] = vb
		}

		for j, rule := range rules {
			verbosef("    Writing %s rule %d...", category.RootName, j+1)
			vbUID := strings.Replace(rule.UID, "-pm-", "-vb-", 1)
			var nextFile string
			if j < len(rules)-1 {
				next := rules[j+1]
				nextVb := strings.Replace(next.UID, "-pm-", "-vb-", 1)
				nextFile = svc.RuleFilePath(nextVb, category.RootName, j+2, next.Name)
			} else if i < len(categories)-2 {
				next := categories[i+1]
				nextFile = svc.CategoryFilePath(next.UID, next.RootName)
			}
			if vb, ok := vibhangas[vbUID]; ok {
				t, err := client.Text(ctx, vbUID)
				if err != nil {
					return err
				}
				if err := svc.RenderRule(category, vb, j+1, t, nextFile); err != nil {
					return fmt.Errorf("rendering %s: %w", vbUID, err)
				}
			} else {
				if err := svc.RenderCopiedRule(biPm, category, rule, j+1, nextFile); err != nil {
					return fmt.Errorf("rendering %s: %w", rule.UID, err)
				}
			}
		}
	}
	return nil
}
