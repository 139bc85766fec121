package generate

import (
	"regexp"
	"strings"

	"resume-builder/internal/resumes"
)

var (
	jobTitlePattern    = regexp.MustCompile(`Job title: (.*)`)
	companyPattern     = regexp.MustCompile(`Company: (.*)`)
	descriptionPattern = regexp.MustCompile(`Description:([\s\S]*)`)
	startDatePattern   = regexp.MustCompile(`Start date: (\d{4}-\d{2}-\d{2})`)
	endDatePattern     = regexp.MustCompile(`End date: (\d{4}-\d{2}-\d{2})`)
)

// parseWorkExperience extracts a structured entry from the model's
// template-constrained output. It reports false when nothing was extracted.
func parseWorkExperience(raw string) (resumes.WorkExperience, bool) {
	entry := resumes.WorkExperience{
		Position:  firstGroup(jobTitlePattern, raw),
		Company:   firstGroup(companyPattern, raw),
		StartDate: firstGroup(startDatePattern, raw),
		EndDate:   firstGroup(endDatePattern, raw),
	}
	if m := descriptionPattern.FindStringSubmatch(raw); m != nil {
		entry.Description = strings.TrimSpace(m[1])
	}
	if entry == (resumes.WorkExperience{}) {
		return entry, false
	}
	return entry, true
}

func firstGroup(re *regexp.Regexp, raw string) string {
	if m := re.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
