package resumes

import "time"

// BorderStyle selects how the photo and skill badges are rounded.
type BorderStyle string

const (
	BorderSquircle BorderStyle = "squircle"
	BorderSquare   BorderStyle = "square"
	BorderCircle   BorderStyle = "circle"
)

// ValidBorderStyle reports whether s is a known border style.
func ValidBorderStyle(s BorderStyle) bool {
	switch s {
	case BorderSquircle, BorderSquare, BorderCircle:
		return true
	default:
		return false
	}
}

// WorkExperience is one entry in a resume's employment history. Dates are
// ISO calendar dates (YYYY-MM-DD); an empty EndDate means "ongoing". Entries
// carry no identity and the whole list is replaced on every save.
type WorkExperience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is one entry in a resume's academic history.
type Education struct {
	Degree    string `json:"degree"`
	School    string `json:"school"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Resume is the persisted aggregate owned by a user.
type Resume struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	FirstName       string
	LastName        string
	JobTitle        string
	City            string
	Country         string
	Phone           string
	Email           string
	PhotoURL        string
	WorkExperiences []WorkExperience
	Educations      []Education
	Skills          []string
	ColorHex        string
	BorderStyle     BorderStyle
	Summary         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
