package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel   = "models/gemini-2.5-flash"
	defaultTimeout = 15 * time.Second
	maxAttempts    = 2
)

// Gemini is the production classifier backed by Google Gemini. Every call is
// bounded by a timeout and retried once; after that ErrUnavailable is
// returned so the workflow can fall back to its safe default.
type Gemini struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGemini creates a Gemini classifier with the given API key.
func NewGemini(ctx context.Context, apiKey string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("classifier: create gemini client: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := client.GenerativeModel(defaultModel)
	model.SetTemperature(0)
	return &Gemini{model: model, timeout: timeout}, nil
}

func (g *Gemini) ClassifyQuery(ctx context.Context, query string, knownNames []string) (Label, error) {
	prompt := fmt.Sprintf(`You are a classifier for appointment booking queries.

Available professionals in the system: %s

Task: Determine if the user's query mentions a specific professional's name from the list above.

Question: %s

Classify as EXACTLY ONE of these labels:
- 'professional_exists' (if a specific professional name from the list is mentioned)
- 'professional_not_exists' (if no professional name is mentioned or asking for help to find one)

Answer with ONLY the label, nothing else.`, strings.Join(knownNames, ", "), query)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return LabelProfessionalNotExists, err
	}
	return NormalizeLabel(raw), nil
}

func (g *Gemini) ExtractSpecialty(ctx context.Context, query string, knownSpecialties []string) (string, error) {
	prompt := fmt.Sprintf(`The user describes symptoms or a medical need.

Known specialties: %s

Pick the single best matching specialty for: %s

Return ONLY the specialty name from the list, or "NONE" if nothing matches.`,
		strings.Join(knownSpecialties, ", "), query)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return NoSpecialty, err
	}
	return matchKnown(raw, knownSpecialties), nil
}

func (g *Gemini) ExtractProfessionalName(ctx context.Context, query string, knownNames []string) (string, error) {
	prompt := fmt.Sprintf(`Extract the professional name from: %s
Available professionals: %s
Return ONLY the name or "NONE".`, query, strings.Join(knownNames, ", "))

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return NoSpecialty, err
	}
	return matchKnown(raw, knownNames), nil
}

// generate runs one prompt with the retry budget and per-attempt timeout.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			lastErr = fmt.Errorf("classifier: empty response")
			continue
		}
		var b strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// matchKnown maps raw model output back onto one of the known values,
// returning NoSpecialty when nothing lines up.
func matchKnown(raw string, known []string) string {
	cleaned := trimLabel(raw)
	if cleaned == "" || strings.EqualFold(cleaned, NoSpecialty) {
		return NoSpecialty
	}
	for _, k := range known {
		if strings.EqualFold(k, cleaned) || strings.Contains(cleaned, strings.ToLower(k)) {
			return k
		}
	}
	return NoSpecialty
}
