package resumes

import "time"

// ResumeResponse is the outward-facing representation of a saved resume.
type ResumeResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	JobTitle        string           `json:"jobTitle"`
	City            string           `json:"city"`
	Country         string           `json:"country"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	PhotoURL        string           `json:"photoUrl,omitempty"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Educations      []Education      `json:"educations"`
	Skills          []string         `json:"skills"`
	ColorHex        string           `json:"colorHex,omitempty"`
	BorderStyle     string           `json:"borderStyle"`
	Summary         string           `json:"summary"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ToResponse maps a resume to its response shape.
func ToResponse(r Resume) ResumeResponse {
	work := r.WorkExperiences
	if work == nil {
		work = []WorkExperience{}
	}
	edu := r.Educations
	if edu == nil {
		edu = []Education{}
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return ResumeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		JobTitle:        r.JobTitle,
		City:            r.City,
		Country:         r.Country,
		Phone:           r.Phone,
		Email:           r.Email,
		PhotoURL:        r.PhotoURL,
		WorkExperiences: work,
		Educations:      edu,
		Skills:          skills,
		ColorHex:        r.ColorHex,
		BorderStyle:     string(r.BorderStyle),
		Summary:         r.Summary,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
