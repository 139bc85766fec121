package generate

import (
	"context"
	"errors"
	"strings"

	"resume-builder/internal/resumes"
)

// Message is one chat message sent to the model.
type Message struct {
	Role    string
	Content string
}

// Completer abstracts chat completion providers.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var (
	// ErrEmptyResponse means the model returned nothing usable. Retryable.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("LLM provider not configured")
)

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, messages []Message) (string, error) {
	_ = ctx
	_ = messages
	return "", ErrNotConfigured
}

var _ Completer = PlaceholderClient{}

// SummaryInput captures the resume data a summary is written from.
type SummaryInput struct {
	JobTitle        string                   `json:"jobTitle"`
	WorkExperiences []resumes.WorkExperience `json:"workExperiences"`
	Educations      []resumes.Education      `json:"educations"`
	Skills          []string                 `json:"skills"`
}

const minDescriptionLen = 20

// Service generates resume content through the configured completer.
type Service struct {
	Completer Completer
}

// NewService constructs a Service.
func NewService(completer Completer) *Service {
	return &Service{Completer: completer}
}

// GenerateSummary writes a professional introduction from the resume data.
func (s *Service) GenerateSummary(ctx context.Context, in SummaryInput) (string, error) {
	out, err := s.Completer.Complete(ctx, summaryMessages(in))
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// GenerateWorkExperience turns a free-text description into a structured
// work experience entry.
func (s *Service) GenerateWorkExperience(ctx context.Context, description string) (resumes.WorkExperience, error) {
	if len(strings.TrimSpace(description)) < minDescriptionLen {
		return resumes.WorkExperience{}, &resumes.ValidationError{Fields: []resumes.FieldError{
			{Field: "description", Message: "must be at least 20 characters"},
		}}
	}

	out, err := s.Completer.Complete(ctx, workExperienceMessages(description))
	if err != nil {
		return resumes.WorkExperience{}, err
	}
	entry, ok := parseWorkExperience(out)
	if !ok {
		return resumes.WorkExperience{}, ErrEmptyResponse
	}
	return entry, nil
}
