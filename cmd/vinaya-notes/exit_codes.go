package main

import (
	"errors"
	"os"

	vinayanotes "github.com/obu-labs/vinaya-notes"
	"github.com/obu-labs/vinaya-notes/internal/config"
	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/fileutil"
)

// Exit codes for the vinaya-notes CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Vault generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Output exists, file not found, permission denied
	ExitCorpus  = 4 // Corpus retrieval, scan, or alignment errors
)

// exitCodeFor maps an error to its exit code. Uses errors.Is, so every
// error path must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Corpus and engine errors (exit 4)
	if errors.Is(err, corpus.ErrStatus) ||
		errors.Is(err, corpus.ErrNoMatch) ||
		errors.Is(err, corpus.ErrMultipleMatches) ||
		errors.Is(err, corpus.ErrSectionShape) ||
		errors.Is(err, vinayanotes.ErrAlignment) ||
		errors.Is(err, vinayanotes.ErrNotFound) ||
		errors.Is(err, vinayanotes.ErrEmptyPhrase) ||
		errors.Is(err, vinayanotes.ErrVariantParse) ||
		errors.Is(err, vinayanotes.ErrSectionShape) ||
		errors.Is(err, vinayanotes.ErrOverride) ||
		errors.Is(err, vinayanotes.ErrNameCollision) ||
		errors.Is(err, vinayanotes.ErrOpenSpan) {
		return ExitCorpus
	}

	// I/O errors (exit 3)
	if errors.Is(err, fileutil.ErrOutputExists) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage and config errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, errNoOutputDir) {
		return ExitUsage
	}

	return ExitGeneral
}
