package editor

import (
	"resume-builder/internal/resumes"
)

type photoResponse struct {
	URL     string             `json:"url,omitempty"`
	Pending *pendingPhotoInfo  `json:"pending,omitempty"`
	Removed bool               `json:"removed,omitempty"`
}

type pendingPhotoInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type draftResponse struct {
	ID              string                   `json:"id,omitempty"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	FirstName       string                   `json:"firstName"`
	LastName        string                   `json:"lastName"`
	JobTitle        string                   `json:"jobTitle"`
	City            string                   `json:"city"`
	Country         string                   `json:"country"`
	Phone           string                   `json:"phone"`
	Email           string                   `json:"email"`
	Photo           photoResponse            `json:"photo"`
	WorkExperiences []resumes.WorkExperience `json:"workExperiences"`
	Educations      []resumes.Education      `json:"educations"`
	Skills          []string                 `json:"skills"`
	ColorHex        string                   `json:"colorHex"`
	BorderStyle     string                   `json:"borderStyle"`
	Summary         string                   `json:"summary"`
}

type saveStatusResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

type sessionResponse struct {
	ID                string             `json:"id"`
	Step              string             `json:"step"`
	ResumeID          string             `json:"resumeId,omitempty"`
	Query             string             `json:"query"`
	SaveStatus        saveStatusResponse `json:"saveStatus"`
	HasUnsavedChanges bool               `json:"hasUnsavedChanges"`
	Draft             draftResponse      `json:"draft"`
}

func toSessionResponse(snap Snapshot) sessionResponse {
	resp := sessionResponse{
		ID:                snap.ID,
		Step:              string(snap.Step),
		ResumeID:          snap.ResumeID,
		Query:             snap.Query,
		SaveStatus:        saveStatusResponse{State: snap.SaveState.String()},
		HasUnsavedChanges: snap.HasUnsavedChanges,
		Draft:             toDraftResponse(snap.Draft),
	}
	if snap.SaveErr != nil {
		resp.SaveStatus.Error = snap.SaveErr.Error()
	}
	return resp
}

func toDraftResponse(d resumes.Draft) draftResponse {
	resp := draftResponse{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		JobTitle:        d.JobTitle,
		City:            d.City,
		Country:         d.Country,
		Phone:           d.Phone,
		Email:           d.Email,
		WorkExperiences: d.WorkExperiences,
		Educations:      d.Educations,
		Skills:          d.Skills,
		ColorHex:        d.ColorHex,
		BorderStyle:     string(d.BorderStyle),
		Summary:         d.Summary,
	}
	if resp.WorkExperiences == nil {
		resp.WorkExperiences = []resumes.WorkExperience{}
	}
	if resp.Educations == nil {
		resp.Educations = []resumes.Education{}
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	resp.Photo = photoResponse{URL: d.Photo.URL, Removed: d.Photo.Removed}
	if d.Photo.File != nil {
		resp.Photo.Pending = &pendingPhotoInfo{
			Name: d.Photo.File.Name,
			Size: d.Photo.File.Size,
			Type: d.Photo.File.Type,
		}
	}
	return resp
}
