package generate

import (
	"fmt"
	"strings"
)

const (
	summarySystemPrompt = "You are a job resume generator AI. Your task is to write a professional introduction summary for a resume given the user's provided data. Only return the summary and do not include any other information in the response. Keep it concise and professional."

	workExperienceSystemPrompt = `You are a job resume generator AI. Your task is to generate a single work experience entry based on the user input. Your response must adhere to the following structure. You can omit fields if they can't be inferred from the provided data, but don't add any new ones.

Job title: <job title>
Company: <company name>
Start date: <format: YYYY-MM-DD> (only if provided)
End date: <format: YYYY-MM-DD> (only if provided)
Description: <an optimized description in bullet format, might be inferred from the job title>`
)

func summaryMessages(in SummaryInput) []Message {
	var b strings.Builder
	b.WriteString("Please generate a professional resume summary from this data:\n\n")
	fmt.Fprintf(&b, "Job title: %s\n\n", orNA(in.JobTitle))

	b.WriteString("Work experience:\n")
	for _, exp := range in.WorkExperiences {
		fmt.Fprintf(&b, "Position: %s at %s from %s to %s\n\nDescription:\n%s\n\n",
			orNA(exp.Position), orNA(exp.Company), orNA(exp.StartDate), orPresent(exp.EndDate), orNA(exp.Description))
	}

	b.WriteString("Education:\n")
	for _, edu := range in.Educations {
		fmt.Fprintf(&b, "Degree: %s at %s from %s to %s\n\n",
			orNA(edu.Degree), orNA(edu.School), orNA(edu.StartDate), orNA(edu.EndDate))
	}

	fmt.Fprintf(&b, "Skills:\n%s", strings.Join(in.Skills, ", "))

	return []Message{
		{Role: "system", Content: summarySystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

func workExperienceMessages(description string) []Message {
	return []Message{
		{Role: "system", Content: workExperienceSystemPrompt},
		{Role: "user", Content: "Please provide a work experience entry from this description:\n" + description},
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func orPresent(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Present"
	}
	return s
}
