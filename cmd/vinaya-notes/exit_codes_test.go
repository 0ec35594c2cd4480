package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	vinayanotes "github.com/obu-labs/vinaya-notes"
	"github.com/obu-labs/vinaya-notes/internal/config"
	"github.com/obu-labs/vinaya-notes/internal/corpus"
	"github.com/obu-labs/vinaya-notes/internal/fileutil"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "generic error", err: errors.New("boom"), want: ExitGeneral},
		{name: "missing output dir", err: errNoOutputDir, want: ExitUsage},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "invalid config value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "output exists", err: fileutil.ErrOutputExists, want: ExitIO},
		{name: "permission denied", err: os.ErrPermission, want: ExitIO},
		{name: "api status", err: corpus.ErrStatus, want: ExitCorpus},
		{name: "section shape", err: corpus.ErrSectionShape, want: ExitCorpus},
		{name: "alignment failure", err: vinayanotes.ErrAlignment, want: ExitCorpus},
		{name: "variant parse failure", err: vinayanotes.ErrVariantParse, want: ExitCorpus},
		{name: "name collision", err: vinayanotes.ErrNameCollision, want: ExitCorpus},
		{
			name: "wrapped errors unwrap to their category",
			err:  fmt.Errorf("rendering pli-tv-bu-vb-pj1: %w", vinayanotes.ErrAlignment),
			want: ExitCorpus,
		},
		{
			name: "typed alignment error",
			err:  &vinayanotes.AlignmentError{Phrase: "x", Ref: "y:1.1", ToLine: 3},
			want: ExitCorpus,
		},
		{
			name: "typed collision error",
			err:  &vinayanotes.CollisionError{Name: "Bu Pj 1"},
			want: ExitCorpus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
