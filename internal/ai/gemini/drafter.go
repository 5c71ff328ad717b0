package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/ai"
	"github.com/spigell/internbuddy/internal/locale"
	"github.com/spigell/internbuddy/internal/logger"
	"github.com/spigell/internbuddy/internal/profile"
	"github.com/spigell/internbuddy/internal/ranking"
	"github.com/spigell/internbuddy/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Drafter asks Gemini for an application note.
type Drafter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

var _ ai.Drafter = (*Drafter)(nil)

func NewDrafter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Drafter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Drafter{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

func (d *Drafter) Draft(ctx context.Context, p *profile.Profile, rec ranking.Scored, loc string) (*ai.Draft, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if rec.Candidate == nil {
		return nil, fmt.Errorf("recommendation has no internship")
	}

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	internshipJSON, err := json.MarshalIndent(rec.Candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal internship payload: %w", err)
	}

	matchJSON, err := json.MarshalIndent(map[string]any{
		"match_percentage": rec.MatchPercentage,
		"category":         rec.Category,
		"matched_skills":   rec.Matched,
		"missing_skills":   rec.Missing,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal match payload: %w", err)
	}

	prompt := buildPrompt(languageName(loc), string(profileJSON), string(internshipJSON), string(matchJSON))

	log := logger.WithFields(d.logger, logger.CandidateFields(rec.Candidate.ID, string(rec.Category))...)
	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, d.maxLogLen)),
	)

	draft, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	draft.Raw = raw
	return draft, nil
}

func languageName(loc string) string {
	base := locale.Base(loc)
	for _, lang := range locale.Supported {
		if lang.Code == base {
			return lang.Name
		}
	}
	return "English"
}

func buildPrompt(language, profileJSON, internshipJSON, matchJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Language: {{LANGUAGE}}\nProfile:\n{{PROFILE_JSON}}\n\nInternship:\n{{INTERNSHIP_JSON}}\n\nMatch:\n{{MATCH_JSON}}\n\nJSON Response:"
	}
	return strings.NewReplacer(
		"{{LANGUAGE}}", language,
		"{{PROFILE_JSON}}", profileJSON,
		"{{INTERNSHIP_JSON}}", internshipJSON,
		"{{MATCH_JSON}}", matchJSON,
	).Replace(template)
}

func parseResponse(raw string) (*ai.Draft, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	message := coerceString(data["message"])
	if message == "" {
		return nil, fmt.Errorf("gemini response has no message")
	}

	return &ai.Draft{
		Message:    message,
		Highlights: coerceStrings(data["highlights"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		if s := coerceString(val); s != "" {
			return []string{s}
		}
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
