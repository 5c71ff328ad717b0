package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log field key for the intake session id.
	FieldSession = "session_id"
	// FieldLocale is the structured log field key for the resolved locale.
	FieldLocale = "locale"
	// FieldCandidate is the structured log field key for an internship or course id.
	FieldCandidate = "candidate_id"
	// FieldCategory is the structured log field key for a recommendation category.
	FieldCategory = "category"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields describes an intake session.
func SessionFields(id, locale string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSession, Value: id},
		StringField{Key: FieldLocale, Value: locale},
	)
}

// CandidateFields describes a single recommendation.
func CandidateFields(id, category string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidate, Value: id},
		StringField{Key: FieldCategory, Value: category},
	)
}

// CommonFields returns fields that describe the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the AI provider fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}
