package classifier

import (
	"context"
	"strings"
)

// Keyword is a deterministic classifier used when no Gemini API key is
// configured, and by tests. It matches known names and specialties as
// case-insensitive substrings of the query.
type Keyword struct{}

// NewKeyword returns the keyword-matching classifier.
func NewKeyword() *Keyword {
	return &Keyword{}
}

func (k *Keyword) ClassifyQuery(ctx context.Context, query string, knownNames []string) (Label, error) {
	if containsAny(query, knownNames) != "" {
		return LabelProfessionalExists, nil
	}
	return LabelProfessionalNotExists, nil
}

func (k *Keyword) ExtractSpecialty(ctx context.Context, query string, knownSpecialties []string) (string, error) {
	if match := containsAny(query, knownSpecialties); match != "" {
		return match, nil
	}
	// Crude symptom hints so the demo works without a model.
	hints := map[string]string{
		"heart": "Cardiology", "chest": "Cardiology",
		"skin": "Dermatology", "rash": "Dermatology",
		"child": "Pediatrics", "kid": "Pediatrics",
		"head": "Neurology", "migraine": "Neurology",
	}
	lowered := strings.ToLower(query)
	for hint, specialty := range hints {
		if !strings.Contains(lowered, hint) {
			continue
		}
		for _, known := range knownSpecialties {
			if strings.EqualFold(known, specialty) {
				return known, nil
			}
		}
	}
	return NoSpecialty, nil
}

func (k *Keyword) ExtractProfessionalName(ctx context.Context, query string, knownNames []string) (string, error) {
	if match := containsAny(query, knownNames); match != "" {
		return match, nil
	}
	return NoSpecialty, nil
}

// containsAny returns the first candidate appearing as a whole word inside
// the query, or "".
func containsAny(query string, candidates []string) string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		for _, w := range words {
			if w == lowered {
				return candidate
			}
		}
	}
	return ""
}
