package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// generateFlags holds all CLI flags.
type generateFlags struct {
	config     string
	cacheDir   string
	baseURL    string
	translator string
	dataDir    string
	workers    int
	skipBi     bool
	quiet      bool
	verbose    bool
	version    bool
}

// parseFlags parses CLI flags and returns the positional arguments.
func parseFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("vinaya-notes", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "corpus response cache directory")
	fs.StringVar(&f.baseURL, "base-url", "", "corpus API host")
	fs.StringVar(&f.translator, "translator", "", "translation edition to fetch")
	fs.StringVar(&f.dataDir, "data-dir", "", "directory overriding embedded data files")
	fs.IntVarP(&f.workers, "workers", "w", 0, "prefetch workers (0 = auto)")
	fs.BoolVar(&f.skipBi, "skip-bi", false, "skip the bhikkhunī rules")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: vinaya-notes [flags] <outputdir>

Generates the Pali Canon Vinaya folder of markdown notes from
SuttaCentral data. The output directory must not exist yet.

Flags:
  -c, --config string      config file name or path
      --cache-dir string   corpus response cache directory
      --base-url string    corpus API host
      --translator string  translation edition to fetch
      --data-dir string    directory overriding embedded data files
  -w, --workers int        prefetch workers (0 = auto)
      --skip-bi            skip the bhikkhunī rules
  -q, --quiet              only show errors
  -v, --verbose            show detailed progress
      --version            print version and exit

Environment (flags win over environment, environment over config file):
  VINAYA_CONFIG, VINAYA_CACHE_DIR, VINAYA_BASE_URL, VINAYA_TRANSLATOR,
  VINAYA_DATA_DIR, VINAYA_WORKERS
`)
}
