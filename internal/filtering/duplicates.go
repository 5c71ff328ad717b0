package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/catalog"
)

type duplicatesFilter struct{}

// NewDuplicates creates a filter that keeps only the first candidate of every id.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(string) {}

func (f *duplicatesFilter) IsEnabled() bool { return true }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, p *catalog.Pool) (*catalog.Pool, Step, error) {
	initial := p.Len()
	dropped := p.Dedupe()
	if len(dropped) > 0 {
		deps.Logger.Warn("pool contains duplicate candidate ids; keeping the first occurrence",
			zap.Strings("duplicate_ids", dropped),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}
