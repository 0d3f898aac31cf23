// Package gemini implements the assistant interface on top of the Google
// GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/vmaltsev/resume-ranker/internal/assistant"
)

const defaultModel = "gemini-2.5-flash"

// generator abstracts the GenAI model call so tests can stub it.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Responder answers candidate questions through the Gemini API.
type Responder struct {
	models    generator
	modelName string
}

// New creates a Responder backed by the Gemini API.
func New(ctx context.Context, apiKey, model string) (*Responder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Responder{models: client.Models, modelName: model}, nil
}

// Respond builds a context prompt from the ranked candidates and asks the
// model.
func (r *Responder) Respond(ctx context.Context, q assistant.Query) (string, error) {
	if r == nil || r.models == nil {
		return "", errors.New("gemini responder is not initialized")
	}

	prompt := buildPrompt(q)

	resp, err := r.models.GenerateContent(ctx, r.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

func buildPrompt(q assistant.Query) string {
	var parts []string
	parts = append(parts, "You are an assistant helping shortlist resumes.")
	if q.Results.Len() > 0 {
		parts = append(parts, "The following are the top candidates:")
		for i, result := range q.Results {
			parts = append(parts, fmt.Sprintf("Candidate %d: %s (Match: %d%%), Skills: %s",
				i+1, result.Filename, result.MatchPercentage, strings.Join(result.Skills, ", ")))
		}
	}
	if len(q.JobSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Job skills required: %s.", strings.Join(q.JobSkills, ", ")))
	}
	parts = append(parts, fmt.Sprintf("User question: %s", q.Question))
	return strings.Join(parts, "\n")
}
