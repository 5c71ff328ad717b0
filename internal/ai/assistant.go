// Package ai defines optional AI helpers used after recommendations are shown.
package ai

import (
	"context"

	"github.com/spigell/internbuddy/internal/profile"
	"github.com/spigell/internbuddy/internal/ranking"
)

// Draft is an application note prepared for one recommendation.
type Draft struct {
	Message    string
	Highlights []string
	Raw        string
}

// Drafter writes an application note for a recommended internship in the user's language.
type Drafter interface {
	Draft(ctx context.Context, p *profile.Profile, rec ranking.Scored, locale string) (*Draft, error)
}
