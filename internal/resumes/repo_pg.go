package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Work experience and education rows
// live in child tables and are replaced wholesale inside the same transaction
// as the parent row.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume with its child collections.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
INSERT INTO resumes (
    id, user_id, title, description, first_name, last_name, job_title,
    city, country, phone, email, photo_url, skills, color_hex, border_style,
    summary, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	skills, err := marshalSkills(res.Skills)
	if err != nil {
		return err
	}

	var photoURL sql.NullString
	if res.PhotoURL != "" {
		photoURL = sql.NullString{String: res.PhotoURL, Valid: true}
	}

	if _, err := tx.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.Title,
		res.Description,
		res.FirstName,
		res.LastName,
		res.JobTitle,
		res.City,
		res.Country,
		res.Phone,
		res.Email,
		photoURL,
		skills,
		res.ColorHex,
		string(res.BorderStyle),
		res.Summary,
		res.CreatedAt,
		res.UpdatedAt,
	); err != nil {
		return err
	}

	if err := insertChildren(ctx, tx, res.ID, res.WorkExperiences, res.Educations); err != nil {
		return err
	}

	return tx.Commit()
}

// Update replaces the resume row and its child collections. Returns
// ErrNotFound when the id is absent or owned by someone else.
func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
UPDATE resumes
SET title = $1, description = $2, first_name = $3, last_name = $4,
    job_title = $5, city = $6, country = $7, phone = $8, email = $9,
    photo_url = $10, skills = $11, color_hex = $12, border_style = $13,
    summary = $14, updated_at = $15
WHERE id = $16 AND user_id = $17`

	skills, err := marshalSkills(res.Skills)
	if err != nil {
		return err
	}

	var photoURL sql.NullString
	if res.PhotoURL != "" {
		photoURL = sql.NullString{String: res.PhotoURL, Valid: true}
	}

	result, err := tx.ExecContext(
		ctx,
		query,
		res.Title,
		res.Description,
		res.FirstName,
		res.LastName,
		res.JobTitle,
		res.City,
		res.Country,
		res.Phone,
		res.Email,
		photoURL,
		skills,
		res.ColorHex,
		string(res.BorderStyle),
		res.Summary,
		res.UpdatedAt,
		res.ID,
		res.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_experiences WHERE resume_id = $1`, res.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM educations WHERE resume_id = $1`, res.ID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, res.ID, res.WorkExperiences, res.Educations); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID fetches a resume with its child collections.
func (r *PGRepo) GetByID(ctx context.Context, userId, id string) (Resume, error) {
	const query = `
SELECT id, user_id, title, description, first_name, last_name, job_title,
       city, country, phone, email, photo_url, skills, color_hex, border_style,
       summary, created_at, updated_at
FROM resumes
WHERE user_id = $1 AND id = $2`

	res, err := scanResume(r.DB.QueryRowContext(ctx, query, userId, id))
	if err != nil {
		return Resume{}, err
	}
	if err := r.loadChildren(ctx, &res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// ListByUser lists resumes, most recently updated first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Resume, error) {
	const query = `
SELECT id, user_id, title, description, first_name, last_name, job_title,
       city, country, phone, email, photo_url, skills, color_hex, border_style,
       summary, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete removes a resume; child rows go with it via ON DELETE CASCADE.
func (r *PGRepo) Delete(ctx context.Context, userId, id string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, userId, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var photoURL sql.NullString
	var skills []byte
	var borderStyle string
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Description,
		&res.FirstName,
		&res.LastName,
		&res.JobTitle,
		&res.City,
		&res.Country,
		&res.Phone,
		&res.Email,
		&photoURL,
		&skills,
		&res.ColorHex,
		&borderStyle,
		&res.Summary,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if photoURL.Valid {
		res.PhotoURL = photoURL.String
	}
	res.BorderStyle = BorderStyle(borderStyle)
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &res.Skills); err != nil {
			return Resume{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	return res, nil
}

func (r *PGRepo) loadChildren(ctx context.Context, res *Resume) error {
	const workQuery = `
SELECT job_title, company, start_date, end_date, description
FROM work_experiences
WHERE resume_id = $1
ORDER BY position`

	rows, err := r.DB.QueryContext(ctx, workQuery, res.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var exp WorkExperience
		if err := rows.Scan(&exp.Position, &exp.Company, &exp.StartDate, &exp.EndDate, &exp.Description); err != nil {
			return err
		}
		res.WorkExperiences = append(res.WorkExperiences, exp)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const eduQuery = `
SELECT degree, school, start_date, end_date
FROM educations
WHERE resume_id = $1
ORDER BY position`

	eduRows, err := r.DB.QueryContext(ctx, eduQuery, res.ID)
	if err != nil {
		return err
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var edu Education
		if err := eduRows.Scan(&edu.Degree, &edu.School, &edu.StartDate, &edu.EndDate); err != nil {
			return err
		}
		res.Educations = append(res.Educations, edu)
	}
	return eduRows.Err()
}

func insertChildren(ctx context.Context, tx *sql.Tx, resumeID string, work []WorkExperience, edu []Education) error {
	const workQuery = `
INSERT INTO work_experiences (resume_id, position, job_title, company, start_date, end_date, description)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, exp := range work {
		if _, err := tx.ExecContext(ctx, workQuery, resumeID, i, exp.Position, exp.Company, exp.StartDate, exp.EndDate, exp.Description); err != nil {
			return err
		}
	}

	const eduQuery = `
INSERT INTO educations (resume_id, position, degree, school, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6)`
	for i, entry := range edu {
		if _, err := tx.ExecContext(ctx, eduQuery, resumeID, i, entry.Degree, entry.School, entry.StartDate, entry.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	return data, nil
}

var _ Repo = (*PGRepo)(nil)
