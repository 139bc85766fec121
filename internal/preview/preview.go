package preview

import (
	"strings"
	"time"

	"resume-builder/internal/resumes"
)

// designWidth is the fixed A4 design width in px the layout is authored
// against; the rendered document scales relative to it.
const designWidth = 794.0

const (
	pageWidthMM  = 210
	pageHeightMM = 297
)

const defaultColorHex = "#000000"

// Header carries the always-present top section.
type Header struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Location    string `json:"location,omitempty"`
	Contact     string `json:"contact,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	PhotoRadius string `json:"photoRadius,omitempty"`
}

// WorkEntry is one rendered work experience item.
type WorkEntry struct {
	Position    string `json:"position"`
	Company     string `json:"company,omitempty"`
	DateRange   string `json:"dateRange,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one rendered education item.
type EducationEntry struct {
	Degree    string `json:"degree"`
	School    string `json:"school,omitempty"`
	DateRange string `json:"dateRange,omitempty"`
}

// Document is the pure projection of a draft at a given container width.
// Sections appear in fixed order; a section whose data is entirely empty is
// omitted.
type Document struct {
	Visible      bool             `json:"visible"`
	Scale        float64          `json:"scale"`
	PageWidthMM  int              `json:"pageWidthMm"`
	PageHeightMM int              `json:"pageHeightMm"`
	ColorHex     string           `json:"colorHex"`
	Header       Header           `json:"header"`
	Summary      string           `json:"summary,omitempty"`
	WorkEntries  []WorkEntry      `json:"workExperiences,omitempty"`
	Educations   []EducationEntry `json:"educations,omitempty"`
	Skills       []string         `json:"skills,omitempty"`
}

// Render projects the draft into a document scaled to the container width.
// It is pure: no I/O, no mutation of the draft.
func Render(d resumes.Draft, containerWidth float64) Document {
	doc := Document{
		Visible:      containerWidth > 0,
		Scale:        containerWidth / designWidth,
		PageWidthMM:  pageWidthMM,
		PageHeightMM: pageHeightMM,
		ColorHex:     d.ColorHex,
	}
	if doc.ColorHex == "" {
		doc.ColorHex = defaultColorHex
	}

	doc.Header = Header{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		JobTitle:  d.JobTitle,
		Location:  joinNonEmpty(", ", d.City, d.Country),
		Contact:   joinNonEmpty(" • ", d.Phone, d.Email),
	}
	if d.Photo.URL != "" && !d.Photo.Removed {
		doc.Header.PhotoURL = d.Photo.URL
		doc.Header.PhotoRadius = borderRadius(d.BorderStyle)
	}

	doc.Summary = strings.TrimSpace(d.Summary)

	for _, exp := range d.WorkExperiences {
		if blankWork(exp) {
			continue
		}
		doc.WorkEntries = append(doc.WorkEntries, WorkEntry{
			Position:    exp.Position,
			Company:     exp.Company,
			DateRange:   FormatDateRange(exp.StartDate, exp.EndDate),
			Description: exp.Description,
		})
	}

	for _, edu := range d.Educations {
		if blankEducation(edu) {
			continue
		}
		doc.Educations = append(doc.Educations, EducationEntry{
			Degree:    edu.Degree,
			School:    edu.School,
			DateRange: FormatDateRange(edu.StartDate, edu.EndDate),
		})
	}

	for _, skill := range d.Skills {
		if s := strings.TrimSpace(skill); s != "" {
			doc.Skills = append(doc.Skills, s)
		}
	}

	return doc
}

// FormatDateRange renders "MM/YYYY - MM/YYYY", with "Present" when the end is
// absent. No start date means no range at all.
func FormatDateRange(start, end string) string {
	from := formatMonth(start)
	if from == "" {
		return ""
	}
	to := formatMonth(end)
	if to == "" {
		to = "Present"
	}
	return from + " - " + to
}

func formatMonth(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format("01/2006")
}

func borderRadius(style resumes.BorderStyle) string {
	switch style {
	case resumes.BorderSquare:
		return "0"
	case resumes.BorderCircle:
		return "9999px"
	default:
		return "10%"
	}
}

func blankWork(exp resumes.WorkExperience) bool {
	return exp.Position == "" && exp.Company == "" && exp.StartDate == "" &&
		exp.EndDate == "" && exp.Description == ""
}

func blankEducation(edu resumes.Education) bool {
	return edu.Degree == "" && edu.School == "" && edu.StartDate == "" && edu.EndDate == ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
