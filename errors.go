package vinayanotes

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine operations.
var (
	// ErrEmptyPhrase is a programming/data-contract bug: a phrase with no
	// tokens was passed to the matcher or aligner.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrNotFound reports a token subsequence absent from the searched range.
	ErrNotFound = errors.New("token sequence not found")

	// ErrAlignment reports a term that could not be located in the root
	// text before it ran out. This is a corpus-assumption violation and
	// aborts the run.
	ErrAlignment = errors.New("term alignment failed")

	// ErrNameCollision reports two rendering units producing the same
	// document name.
	ErrNameCollision = errors.New("duplicate document name")

	// ErrOpenSpan reports a link span still open when the root text ended.
	ErrOpenSpan = errors.New("link span left open at end of text")

	// ErrVariantParse reports a variant reading that does not split into
	// an original and a replacement part.
	ErrVariantParse = errors.New("variant reading cannot be parsed")

	// ErrSectionShape reports corpus HTML that does not match the section
	// structure the renderers rely on.
	ErrSectionShape = errors.New("unexpected section structure")

	// ErrOverride reports override data that no longer matches the corpus
	// it was written against.
	ErrOverride = errors.New("override does not apply")
)

// AlignmentError reports a phrase that was not found before the root text
// was exhausted, with enough context to diagnose the corpus anomaly.
type AlignmentError struct {
	Phrase   string // printed form of the phrase
	Ref      string // segment id the phrase was taken from
	FromLine int    // line the search started on
	ToLine   int    // line count of the exhausted root text
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("phrase %q (%s) not found in root text lines %d through %d",
		e.Phrase, e.Ref, e.FromLine, e.ToLine)
}

func (e *AlignmentError) Unwrap() error { return ErrAlignment }

// CollisionError reports a document name already reserved in this run.
type CollisionError struct {
	Name string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("a document named %q was already written this run", e.Name)
}

func (e *CollisionError) Unwrap() error { return ErrNameCollision }
