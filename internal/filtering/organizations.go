package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/catalog"
)

type organizationsFilter struct {
	disabled      bool
	reason        string
	organizations []string
}

// NewOrganizations creates a filter that removes candidates offered by blocked organizations.
func NewOrganizations() Filter {
	return &organizationsFilter{}
}

func (f *organizationsFilter) Name() string { return "organizations" }

func (f *organizationsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *organizationsFilter) IsEnabled() bool { return !f.disabled }

func (f *organizationsFilter) Validate(cfg *Config) error {
	f.organizations = nil
	if cfg != nil {
		f.organizations = append(f.organizations, cfg.Organizations...)
	}
	return nil
}

func (f *organizationsFilter) Apply(_ context.Context, deps Deps, p *catalog.Pool) (*catalog.Pool, Step, error) {
	initial := p.Len()
	if len(f.organizations) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	excluded := p.ExcludeOrganizations(f.organizations)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates by organization",
			zap.Strings("excluded_organizations", f.organizations),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *organizationsFilter) Status() Status {
	details := map[string]string{}
	if len(f.organizations) > 0 {
		details["organizations"] = strings.Join(f.organizations, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
