package resumes

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxPhotoBytes = 4 << 20 // 4MB
	dateLayout    = "2006-01-02"
)

var colorHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidDate reports whether s is an ISO calendar date (YYYY-MM-DD).
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidColorHex reports whether s is a #RRGGBB color value.
func ValidColorHex(s string) bool {
	return colorHexPattern.MatchString(s)
}

// ValidatePhotoFile checks that an attached photo is an image of acceptable size.
func ValidatePhotoFile(f *PhotoFile) []FieldError {
	if f == nil {
		return nil
	}
	var errs []FieldError
	if !strings.HasPrefix(f.Type, "image/") {
		errs = append(errs, FieldError{Field: "photo", Message: "must be an image file"})
	}
	if f.Size > maxPhotoBytes {
		errs = append(errs, FieldError{Field: "photo", Message: "file must be less than 4MB"})
	}
	return errs
}

// ValidateWorkExperiences checks date formats on every entry.
func ValidateWorkExperiences(entries []WorkExperience) []FieldError {
	var errs []FieldError
	for i, exp := range entries {
		errs = append(errs, validateDateField(fmt.Sprintf("workExperiences[%d].startDate", i), exp.StartDate)...)
		errs = append(errs, validateDateField(fmt.Sprintf("workExperiences[%d].endDate", i), exp.EndDate)...)
	}
	return errs
}

// ValidateEducations checks date formats on every entry.
func ValidateEducations(entries []Education) []FieldError {
	var errs []FieldError
	for i, edu := range entries {
		errs = append(errs, validateDateField(fmt.Sprintf("educations[%d].startDate", i), edu.StartDate)...)
		errs = append(errs, validateDateField(fmt.Sprintf("educations[%d].endDate", i), edu.EndDate)...)
	}
	return errs
}

func validateDateField(field, value string) []FieldError {
	if value == "" {
		return nil
	}
	if !ValidDate(value) {
		return []FieldError{{Field: field, Message: "must be a date in YYYY-MM-DD format"}}
	}
	return nil
}

// ValidateSaveRequest validates a full save payload. A nil return means valid.
func ValidateSaveRequest(req SaveRequest) *ValidationError {
	var errs []FieldError

	errs = append(errs, ValidateWorkExperiences(req.WorkExperiences)...)
	errs = append(errs, ValidateEducations(req.Educations)...)
	errs = append(errs, ValidatePhotoFile(req.Photo.File)...)

	if req.ColorHex != "" && !colorHexPattern.MatchString(req.ColorHex) {
		errs = append(errs, FieldError{Field: "colorHex", Message: "must be a #RRGGBB color"})
	}
	if req.BorderStyle != "" && !ValidBorderStyle(req.BorderStyle) {
		errs = append(errs, FieldError{Field: "borderStyle", Message: "must be one of squircle, square, circle"})
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// TrimSkills drops surrounding whitespace and empty entries, preserving order.
func TrimSkills(skills []string) []string {
	var out []string
	for _, s := range skills {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
