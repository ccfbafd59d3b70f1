package i18n

import (
	"strings"

	apperrors "github.com/agrivision/agrivision/pkg/errors"
)

// Language is one of the fixed set of supported language codes.
type Language string

// Supported languages. Selection is session-wide: it drives the requested
// output language of every AI prompt and all static label lookups.
const (
	English Language = "en"
	Hindi   Language = "hi"
	Punjabi Language = "pa"
	Tamil   Language = "ta"
	Telugu  Language = "te"
	Marathi Language = "mr"
)

var supported = []Language{English, Hindi, Punjabi, Tamil, Telugu, Marathi}

// Supported returns the fixed language set.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Parse validates a raw language code. An empty code selects English.
func Parse(code string) (Language, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return English, nil
	}
	for _, lang := range supported {
		if Language(trimmed) == lang {
			return lang, nil
		}
	}
	return "", apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported language code: "+code, nil)
}

// Greeting seeds a new chat thread in the session language.
func Greeting(lang Language) string {
	switch lang {
	case English:
		return "Hello! I am your AI Crop Advisor."
	case Hindi:
		return "नमस्ते! मैं आपका एआई फसल सलाहकार हूं।"
	case Punjabi:
		return "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਤੁਹਾਡਾ ਏਆਈ ਫਸਲ ਸਲਾਹਕਾਰ ਹਾਂ।"
	default:
		return "Hello! Ask me anything."
	}
}
