// Package inference turns raw resume text into a JSON-shaped response via the
// LLM client. It is a single-attempt service: a timeout or transport error is
// returned to the caller, never retried here.
package inference

import (
	"context"
	"strings"

	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/prompts"
)

// Service converts resume text into structured JSON text through an LLM.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewService creates an inference service on top of an LLM client.
func NewService(client llm.Client) *Service {
	return &Service{
		client: client,
		// Extraction is a simple task; the lite tier is sufficient.
		tier: llm.TierLite,
	}
}

// ExtractCandidate sends the resume text through the extraction prompt and
// returns the raw response text. The response is expected to contain a JSON
// object but is not parsed or validated here.
func (s *Service) ExtractCandidate(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", &APICallError{Message: "resume text is empty"}
	}

	template := prompts.MustGet("extract-candidate")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	responseText, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return "", &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	return responseText, nil
}
