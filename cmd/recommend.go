package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/ai"
	"github.com/spigell/internbuddy/internal/ai/gemini"
	"github.com/spigell/internbuddy/internal/catalog"
	"github.com/spigell/internbuddy/internal/filtering"
	"github.com/spigell/internbuddy/internal/profile"
	"github.com/spigell/internbuddy/internal/ranking"
	"github.com/spigell/internbuddy/internal/script"
	"github.com/spigell/internbuddy/internal/secrets"
)

// buildRegistry returns the built-in scripts plus the ones from the config file.
// Any invalid script fails the start.
func buildRegistry(config *Config) (*script.Registry, error) {
	registry, err := script.Builtin()
	if err != nil {
		return nil, err
	}

	if len(config.Scripts) > 0 {
		decoded, err := script.Decode(config.Scripts)
		if err != nil {
			return nil, err
		}
		if err := registry.RegisterAll(decoded); err != nil {
			return nil, err
		}
	}

	if err := registry.Ready(); err != nil {
		return nil, err
	}
	return registry, nil
}

// loadPool reads the candidates and runs the pre-ranking filters.
func loadPool(ctx context.Context, config *Config, logger *zap.Logger) (*catalog.Pool, error) {
	var pool *catalog.Pool
	if path := strings.TrimSpace(config.CandidatesFile); path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		pool = loaded
	} else {
		logger.Info("candidates file is not set; using the built-in sample pool")
		pool = samplePool()
	}

	logger.Info("getting candidates",
		zap.Int("internships", pool.OfKind(catalog.KindInternship).Len()),
		zap.Int("courses", pool.OfKind(catalog.KindCourse).Len()),
	)

	filterCfg := &filtering.Config{
		ExcludeFile:   config.ExcludeFile,
		Organizations: config.ExcludeOrganizations,
	}

	filtered, err := filtering.Run(ctx, filterCfg, filtering.Deps{Logger: logger}, filtering.Default(), pool)
	if err != nil {
		return nil, fmt.Errorf("filtering failed: %w", err)
	}
	return filtered, nil
}

// recommend ranks the internships of the pool for p. Courses in the pool are
// never ranked; they are only suggested for the skills the ranked internships lack.
func recommend(p *profile.Profile, pool *catalog.Pool, config *Config) (ranking.Results, []ranking.CourseSuggestion) {
	limit, courseLimit := ranking.DefaultPerCategoryLimit, defaultCourseLimit
	if config != nil && config.Recommend != nil {
		limit, courseLimit = config.Recommend.PerCategoryLimit, config.Recommend.CourseLimit
	}

	results := ranking.Rank(p, pool, limit)
	return results, ranking.SuggestCourses(results, pool.OfKind(catalog.KindCourse), courseLimit)
}

func newAIDrafter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Drafter, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewDrafter(generator, logger, gcfg.MaxLogLength), nil
}
