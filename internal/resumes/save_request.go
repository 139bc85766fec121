package resumes

// PhotoChange describes what should happen to the stored photo on save. The
// zero value means "unchanged": the existing blob and URL are left alone.
type PhotoChange struct {
	File   *PhotoFile
	Remove bool
}

// Unchanged reports whether the photo is omitted from the payload.
func (p PhotoChange) Unchanged() bool {
	return p.File == nil && !p.Remove
}

// SaveRequest is the payload of one save attempt. ID empty means create;
// present means update. Work experience and education collections replace the
// stored ones wholesale.
type SaveRequest struct {
	ID              string
	Title           string
	Description     string
	FirstName       string
	LastName        string
	JobTitle        string
	City            string
	Country         string
	Phone           string
	Email           string
	Photo           PhotoChange
	WorkExperiences []WorkExperience
	Educations      []Education
	Skills          []string
	ColorHex        string
	BorderStyle     BorderStyle
	Summary         string
}

// SaveRequest converts the draft into a save payload. The photo is always
// carried; callers that detect an unchanged photo clear it to omit re-uploads.
func (d Draft) SaveRequest() SaveRequest {
	req := SaveRequest{
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
		WorkExperiences: append([]WorkExperience(nil), d.WorkExperiences...),
		Educations:      append([]Education(nil), d.Educations...),
		Skills:          append([]string(nil), d.Skills...),
		ColorHex:        d.ColorHex,
		BorderStyle:     d.BorderStyle,
		Summary:         d.Summary,
	}
	switch {
	case d.Photo.File != nil:
		file := *d.Photo.File
		file.Data = append([]byte(nil), d.Photo.File.Data...)
		req.Photo = PhotoChange{File: &file}
	case d.Photo.Removed:
		req.Photo = PhotoChange{Remove: true}
	}
	return req
}
