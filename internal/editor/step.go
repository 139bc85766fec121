package editor

// Step is one screen of the editing flow.
type Step string

const (
	StepGeneralInfo    Step = "general-info"
	StepPersonalInfo   Step = "personal-info"
	StepWorkExperience Step = "work-experience"
	StepEducation      Step = "education"
	StepSkills         Step = "skills"
	StepSummary        Step = "summary"
)

// Steps lists every step in flow order.
var Steps = []Step{
	StepGeneralInfo,
	StepPersonalInfo,
	StepWorkExperience,
	StepEducation,
	StepSkills,
	StepSummary,
}

// ParseStep resolves a step key from a request.
func ParseStep(s string) (Step, bool) {
	for _, step := range Steps {
		if string(step) == s {
			return step, true
		}
	}
	return "", false
}
