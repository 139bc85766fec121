package resumes

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

// Service contains business logic for resumes.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Save creates the resume when req.ID is empty and updates it otherwise.
// The work experience and education collections replace the stored ones.
// Photo handling: a new file replaces the stored blob, an explicit remove
// deletes it, and an omitted photo leaves the stored URL untouched.
func (s *Service) Save(ctx context.Context, userId string, req SaveRequest) (Resume, error) {
	if strings.TrimSpace(userId) == "" {
		return Resume{}, ErrUnauthenticated
	}
	if verr := ValidateSaveRequest(req); verr != nil {
		return Resume{}, verr
	}

	var existing Resume
	if req.ID != "" {
		var err error
		existing, err = s.Repo.GetByID(ctx, userId, req.ID)
		if err != nil {
			return Resume{}, err
		}
	}

	photoURL := existing.PhotoURL
	switch {
	case req.Photo.File != nil:
		if existing.PhotoURL != "" {
			if err := s.Store.Delete(ctx, existing.PhotoURL); err != nil {
				return Resume{}, err
			}
		}
		url, _, _, err := s.Store.Put(ctx, userId, req.Photo.File.Name, bytes.NewReader(req.Photo.File.Data))
		if err != nil {
			return Resume{}, err
		}
		photoURL = url
	case req.Photo.Remove:
		if existing.PhotoURL != "" {
			if err := s.Store.Delete(ctx, existing.PhotoURL); err != nil {
				return Resume{}, err
			}
		}
		photoURL = ""
	}

	now := time.Now().UTC()
	res := Resume{
		ID:              req.ID,
		UserID:          userId,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		JobTitle:        strings.TrimSpace(req.JobTitle),
		City:            strings.TrimSpace(req.City),
		Country:         strings.TrimSpace(req.Country),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		PhotoURL:        photoURL,
		WorkExperiences: req.WorkExperiences,
		Educations:      req.Educations,
		Skills:          TrimSkills(req.Skills),
		ColorHex:        req.ColorHex,
		BorderStyle:     req.BorderStyle,
		Summary:         strings.TrimSpace(req.Summary),
		UpdatedAt:       now,
	}
	if res.BorderStyle == "" {
		res.BorderStyle = BorderSquircle
	}

	if req.ID == "" {
		res.ID = uuid.NewString()
		res.CreatedAt = now
		if err := s.Repo.Create(ctx, res); err != nil {
			return Resume{}, err
		}
		telemetry.Info("resume.created", map[string]any{"resume_id": res.ID, "user_id": userId})
	} else {
		res.CreatedAt = existing.CreatedAt
		if err := s.Repo.Update(ctx, res); err != nil {
			return Resume{}, err
		}
	}

	return res, nil
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userId, id string) (Resume, error) {
	if strings.TrimSpace(userId) == "" {
		return Resume{}, ErrUnauthenticated
	}
	return s.Repo.GetByID(ctx, userId, id)
}

// List returns the user's resumes, most recently updated first.
func (s *Service) List(ctx context.Context, userId string) ([]Resume, error) {
	if strings.TrimSpace(userId) == "" {
		return nil, ErrUnauthenticated
	}
	return s.Repo.ListByUser(ctx, userId)
}

// Delete removes the resume row and its photo blob together. The blob goes
// first so the stored row never points at a deleted object.
func (s *Service) Delete(ctx context.Context, userId, id string) error {
	if strings.TrimSpace(userId) == "" {
		return ErrUnauthenticated
	}
	res, err := s.Repo.GetByID(ctx, userId, id)
	if err != nil {
		return err
	}
	if res.PhotoURL != "" {
		if err := s.Store.Delete(ctx, res.PhotoURL); err != nil {
			return err
		}
	}
	if err := s.Repo.Delete(ctx, userId, id); err != nil {
		return err
	}
	telemetry.Info("resume.deleted", map[string]any{"resume_id": id, "user_id": userId})
	return nil
}
