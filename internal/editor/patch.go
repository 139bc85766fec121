package editor

import (
	"encoding/json"
	"fmt"

	"resume-builder/internal/resumes"
)

// Patch is one validated section update. Apply validates its payload against
// the section's rules and, only on success, writes the fields back into the
// draft. A failed patch leaves the draft untouched.
type Patch interface {
	Apply(d *resumes.Draft) *resumes.ValidationError
}

// GeneralInfoPatch updates the project name and description.
type GeneralInfoPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p GeneralInfoPatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	d.Title = p.Title
	d.Description = p.Description
	return nil
}

// PersonalInfoPatch updates the contact fields. The photo is managed through
// its own upload and remove operations, not through this patch.
type PersonalInfoPatch struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	JobTitle  string `json:"jobTitle"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (p PersonalInfoPatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	d.FirstName = p.FirstName
	d.LastName = p.LastName
	d.JobTitle = p.JobTitle
	d.City = p.City
	d.Country = p.Country
	d.Phone = p.Phone
	d.Email = p.Email
	return nil
}

// WorkExperiencePatch replaces the work experience list wholesale.
type WorkExperiencePatch struct {
	WorkExperiences []resumes.WorkExperience `json:"workExperiences"`
}

func (p WorkExperiencePatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	if errs := resumes.ValidateWorkExperiences(p.WorkExperiences); len(errs) > 0 {
		return &resumes.ValidationError{Fields: errs}
	}
	d.WorkExperiences = append([]resumes.WorkExperience(nil), p.WorkExperiences...)
	return nil
}

// EducationPatch replaces the education list wholesale.
type EducationPatch struct {
	Educations []resumes.Education `json:"educations"`
}

func (p EducationPatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	if errs := resumes.ValidateEducations(p.Educations); len(errs) > 0 {
		return &resumes.ValidationError{Fields: errs}
	}
	d.Educations = append([]resumes.Education(nil), p.Educations...)
	return nil
}

// SkillsPatch replaces the skill list. Blank entries are dropped.
type SkillsPatch struct {
	Skills []string `json:"skills"`
}

func (p SkillsPatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	d.Skills = resumes.TrimSkills(p.Skills)
	return nil
}

// SummaryPatch updates the professional summary.
type SummaryPatch struct {
	Summary string `json:"summary"`
}

func (p SummaryPatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	d.Summary = p.Summary
	return nil
}

// AppearancePatch updates the accent color and photo border style.
type AppearancePatch struct {
	ColorHex    string `json:"colorHex"`
	BorderStyle string `json:"borderStyle"`
}

func (p AppearancePatch) Apply(d *resumes.Draft) *resumes.ValidationError {
	var errs []resumes.FieldError
	if p.ColorHex != "" && !resumes.ValidColorHex(p.ColorHex) {
		errs = append(errs, resumes.FieldError{Field: "colorHex", Message: "must be a #RRGGBB color"})
	}
	if p.BorderStyle != "" && !resumes.ValidBorderStyle(resumes.BorderStyle(p.BorderStyle)) {
		errs = append(errs, resumes.FieldError{Field: "borderStyle", Message: "must be one of squircle, square, circle"})
	}
	if len(errs) > 0 {
		return &resumes.ValidationError{Fields: errs}
	}
	if p.ColorHex != "" {
		d.ColorHex = p.ColorHex
	}
	if p.BorderStyle != "" {
		d.BorderStyle = resumes.BorderStyle(p.BorderStyle)
	}
	return nil
}

// DecodePatch builds the patch for a named section from a raw JSON body.
func DecodePatch(section string, body []byte) (Patch, error) {
	var (
		patch Patch
		err   error
	)
	switch Step(section) {
	case StepGeneralInfo:
		var p GeneralInfoPatch
		err = json.Unmarshal(body, &p)
		patch = p
	case StepPersonalInfo:
		var p PersonalInfoPatch
		err = json.Unmarshal(body, &p)
		patch = p
	case StepWorkExperience:
		var p WorkExperiencePatch
		err = json.Unmarshal(body, &p)
		patch = p
	case StepEducation:
		var p EducationPatch
		err = json.Unmarshal(body, &p)
		patch = p
	case StepSkills:
		var p SkillsPatch
		err = json.Unmarshal(body, &p)
		patch = p
	case StepSummary:
		var p SummaryPatch
		err = json.Unmarshal(body, &p)
		patch = p
	default:
		if section == "appearance" {
			var p AppearancePatch
			err = json.Unmarshal(body, &p)
			patch = p
			break
		}
		return nil, ErrUnknownSection
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s patch: %w", section, err)
	}
	return patch, nil
}
