package resumes

// PhotoFile is a newly attached photo held in memory until it is persisted.
type PhotoFile struct {
	Name         string
	Size         int64
	Type         string
	LastModified int64
	Data         []byte
}

// Photo is the draft-side photo state: an already uploaded URL, a newly
// attached file, or an explicit removal. The zero value means "no photo".
type Photo struct {
	URL     string
	File    *PhotoFile
	Removed bool
}

// FileDescriptor is the comparable projection of a Photo used for change
// detection. Raw bytes never participate in comparison.
type FileDescriptor struct {
	Name         string
	Size         int64
	Type         string
	LastModified int64
	URL          string
	Removed      bool
}

// Descriptor normalizes the photo state to a comparable descriptor.
func (p Photo) Descriptor() FileDescriptor {
	if p.File != nil {
		return FileDescriptor{
			Name:         p.File.Name,
			Size:         p.File.Size,
			Type:         p.File.Type,
			LastModified: p.File.LastModified,
		}
	}
	return FileDescriptor{URL: p.URL, Removed: p.Removed}
}

// Draft is the in-memory, session-owned resume state. ID is empty until the
// first successful save assigns one.
type Draft struct {
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
	Photo           Photo
	WorkExperiences []WorkExperience
	Educations      []Education
	Skills          []string
	ColorHex        string
	BorderStyle     BorderStyle
	Summary         string
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	if d.Photo.File != nil {
		file := *d.Photo.File
		file.Data = append([]byte(nil), d.Photo.File.Data...)
		out.Photo.File = &file
	}
	if d.WorkExperiences != nil {
		out.WorkExperiences = append([]WorkExperience(nil), d.WorkExperiences...)
	}
	if d.Educations != nil {
		out.Educations = append([]Education(nil), d.Educations...)
	}
	if d.Skills != nil {
		out.Skills = append([]string(nil), d.Skills...)
	}
	return out
}

// Equal reports whether two drafts are structurally identical. The photo is
// compared through its normalized descriptor.
func (d Draft) Equal(other Draft) bool {
	if d.ID != other.ID ||
		d.Title != other.Title ||
		d.Description != other.Description ||
		d.FirstName != other.FirstName ||
		d.LastName != other.LastName ||
		d.JobTitle != other.JobTitle ||
		d.City != other.City ||
		d.Country != other.Country ||
		d.Phone != other.Phone ||
		d.Email != other.Email ||
		d.ColorHex != other.ColorHex ||
		d.BorderStyle != other.BorderStyle ||
		d.Summary != other.Summary {
		return false
	}
	if d.Photo.Descriptor() != other.Photo.Descriptor() {
		return false
	}
	if len(d.WorkExperiences) != len(other.WorkExperiences) {
		return false
	}
	for i := range d.WorkExperiences {
		if d.WorkExperiences[i] != other.WorkExperiences[i] {
			return false
		}
	}
	if len(d.Educations) != len(other.Educations) {
		return false
	}
	for i := range d.Educations {
		if d.Educations[i] != other.Educations[i] {
			return false
		}
	}
	if len(d.Skills) != len(other.Skills) {
		return false
	}
	for i := range d.Skills {
		if d.Skills[i] != other.Skills[i] {
			return false
		}
	}
	return true
}

// DraftFromResume hydrates a draft from a saved resume for edit mode.
func DraftFromResume(r Resume) Draft {
	return Draft{
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
		Photo:           Photo{URL: r.PhotoURL},
		WorkExperiences: append([]WorkExperience(nil), r.WorkExperiences...),
		Educations:      append([]Education(nil), r.Educations...),
		Skills:          append([]string(nil), r.Skills...),
		ColorHex:        r.ColorHex,
		BorderStyle:     r.BorderStyle,
		Summary:         r.Summary,
	}
}
