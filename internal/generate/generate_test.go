package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-builder/internal/resumes"
)

type scriptedCompleter struct {
	response string
	err      error
	messages []Message
}

func (s *scriptedCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	s.messages = messages
	return s.response, s.err
}

func TestGenerateSummaryBuildsPrompt(t *testing.T) {
	completer := &scriptedCompleter{response: "A seasoned engineer."}
	svc := NewService(completer)

	out, err := svc.GenerateSummary(context.Background(), SummaryInput{
		JobTitle: "Engineer",
		WorkExperiences: []resumes.WorkExperience{
			{Position: "Developer", Company: "Acme", StartDate: "2020-01-01"},
		},
		Educations: []resumes.Education{
			{Degree: "BSc", School: "MIT"},
		},
		Skills: []string{"Go", "SQL"},
	})
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if out != "A seasoned engineer." {
		t.Fatalf("unexpected summary: %q", out)
	}

	if len(completer.messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(completer.messages))
	}
	system := completer.messages[0]
	if system.Role != "system" || !strings.Contains(system.Content, "job resume generator AI") {
		t.Fatalf("unexpected system prompt: %+v", system)
	}
	user := completer.messages[1].Content
	for _, want := range []string{"Job title: Engineer", "Developer", "Acme", "Present", "BSc", "MIT", "Go, SQL"} {
		if !strings.Contains(user, want) {
			t.Fatalf("expected user prompt to contain %q:\n%s", want, user)
		}
	}
}

func TestGenerateSummaryUsesPlaceholders(t *testing.T) {
	completer := &scriptedCompleter{response: "ok"}
	svc := NewService(completer)

	if _, err := svc.GenerateSummary(context.Background(), SummaryInput{
		WorkExperiences: []resumes.WorkExperience{{}},
	}); err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}

	user := completer.messages[1].Content
	if !strings.Contains(user, "Job title: N/A") {
		t.Fatalf("expected N/A job title placeholder:\n%s", user)
	}
	if !strings.Contains(user, "Position: N/A at N/A from N/A to Present") {
		t.Fatalf("expected placeholder work entry:\n%s", user)
	}
}

func TestGenerateSummaryEmptyResponse(t *testing.T) {
	svc := NewService(&scriptedCompleter{response: "   "})
	_, err := svc.GenerateSummary(context.Background(), SummaryInput{})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateWorkExperienceRejectsShortDescription(t *testing.T) {
	svc := NewService(&scriptedCompleter{})
	_, err := svc.GenerateWorkExperience(context.Background(), "too short")

	var verr *resumes.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields[0].Field != "description" {
		t.Fatalf("expected description field error, got %+v", verr.Fields)
	}
}

func TestGenerateWorkExperienceParsesTemplate(t *testing.T) {
	completer := &scriptedCompleter{response: `Job title: Software Engineer
Company: Acme Corp
Start date: 2020-01-15
End date: 2022-06-30
Description: - Built the resume pipeline
- Mentored juniors`}
	svc := NewService(completer)

	entry, err := svc.GenerateWorkExperience(context.Background(),
		"I worked at Acme building the resume pipeline for two years.")
	if err != nil {
		t.Fatalf("GenerateWorkExperience: %v", err)
	}
	if entry.Position != "Software Engineer" {
		t.Fatalf("unexpected position: %q", entry.Position)
	}
	if entry.Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", entry.Company)
	}
	if entry.StartDate != "2020-01-15" || entry.EndDate != "2022-06-30" {
		t.Fatalf("unexpected dates: %q - %q", entry.StartDate, entry.EndDate)
	}
	if !strings.Contains(entry.Description, "Built the resume pipeline") {
		t.Fatalf("unexpected description: %q", entry.Description)
	}
}

func TestGenerateWorkExperienceOmittedFields(t *testing.T) {
	completer := &scriptedCompleter{response: `Job title: Barista
Description: - Served coffee`}
	svc := NewService(completer)

	entry, err := svc.GenerateWorkExperience(context.Background(),
		"I served coffee at a small cafe for a summer.")
	if err != nil {
		t.Fatalf("GenerateWorkExperience: %v", err)
	}
	if entry.Position != "Barista" {
		t.Fatalf("unexpected position: %q", entry.Position)
	}
	if entry.Company != "" || entry.StartDate != "" || entry.EndDate != "" {
		t.Fatalf("expected omitted fields empty, got %+v", entry)
	}
}

func TestGenerateWorkExperienceUnusableOutput(t *testing.T) {
	svc := NewService(&scriptedCompleter{response: "I cannot help with that."})
	_, err := svc.GenerateWorkExperience(context.Background(),
		"A description that is certainly long enough to pass validation.")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestPlaceholderClient(t *testing.T) {
	svc := NewService(PlaceholderClient{})
	_, err := svc.GenerateSummary(context.Background(), SummaryInput{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
