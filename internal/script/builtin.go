package script

import (
	"fmt"

	"github.com/spigell/internbuddy/internal/profile"
)

// DefaultLocale is the locale unknown codes fall back to.
const DefaultLocale = "en"

type question struct {
	field profile.Field
	mode  ParseMode
}

// builtinShape is shared by every built-in locale; the last slot is the closing prompt.
var builtinShape = []question{
	{field: profile.FieldName, mode: Scalar},
	{field: profile.FieldEducation, mode: Scalar},
	{field: profile.FieldSkills, mode: DelimitedList},
	{field: profile.FieldLocation, mode: Scalar},
	{field: profile.FieldInterests, mode: DelimitedList},
	{field: profile.FieldExperience, mode: Scalar},
	{field: profile.FieldNone, mode: Scalar},
}

var builtinPrompts = map[string][]string{
	"en": {
		"Hi there! I'm your InternBuddy assistant. What's your name?",
		"Nice to meet you! What's your highest level of education?",
		"What skills do you feel most confident about? (You can mention multiple)",
		"Where would you prefer to work? (City name or 'Remote')",
		"What type of work interests you the most?",
		"Do you have any prior work experience or internships?",
		"Perfect! Let me analyze your profile and find the best internship matches for you.",
	},
	"hi": {
		"नमस्ते! मैं आपका InternBuddy सहायक हूं। आपका नाम क्या है?",
		"आपसे मिलकर खुशी हुई! आपकी सबसे उच्च शिक्षा क्या है?",
		"आपको किन कौशलों में सबसे अधिक विश्वास है? (आप कई बता सकते हैं)",
		"आप कहां काम करना पसंद करेंगे? (शहर का नाम या 'रिमोट')",
		"आपको किस प्रकार का काम सबसे दिलचस्प लगता है?",
		"क्या आपके पास कोई पूर्व कार्य अनुभव या इंटर्नशिप है?",
		"बहुत बढ़िया! मुझे आपकी प्रोफ़ाइल का विश्लेषण करने दें और आपके लिए सबसे अच्छे इंटर्नशिप मैच खोजूं।",
	},
}

// Builtin returns a registry with the English and Hindi scripts, English being the default.
func Builtin() (*Registry, error) {
	r := NewRegistry(DefaultLocale)
	for _, loc := range []string{"en", "hi"} {
		if err := r.Register(loc, builtinEntries(loc)); err != nil {
			return nil, fmt.Errorf("registering builtin script: %w", err)
		}
	}
	return r, nil
}

func builtinEntries(loc string) []Entry {
	prompts := builtinPrompts[loc]
	entries := make([]Entry, 0, len(builtinShape))
	for idx, q := range builtinShape {
		entries = append(entries, Entry{
			Locale:   loc,
			Position: idx,
			Prompt:   prompts[idx],
			Field:    q.field,
			Mode:     q.mode,
		})
	}
	return entries
}
