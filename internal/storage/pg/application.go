package pg

import (
	"database/sql"
	"errors"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

const applicationColumns = `id, post_id, applicant_id, post_snapshot, applicant_snapshot,
	applied_for_skill, resume, cover_letter, answers, status, applied_at, reviewed_at, updated_at`

func (s *Storage) CreateApplication(a *domain.Application) error {
	postSnap, err := jsonb(a.Post)
	if err != nil {
		return err
	}
	applicantSnap, err := jsonb(a.Applicant)
	if err != nil {
		return err
	}
	answers, err := jsonb(a.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	INSERT INTO applications(`+applicationColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.Id, a.PostId, a.ApplicantId, postSnap, applicantSnap,
		a.AppliedForSkill, a.Resume, a.CoverLetter, answers, a.Status,
		a.AppliedAt, a.ReviewedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("You have already applied to this post")
	}
	return err
}

func (s *Storage) GetApplication(id string) (*domain.Application, error) {
	row := s.db.QueryRow(`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	application, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Application not found")
		}
		return nil, err
	}
	return application, nil
}

func (s *Storage) GetApplicationsByPost(postId string) ([]domain.Application, error) {
	return s.queryApplications(`SELECT `+applicationColumns+` FROM applications WHERE post_id = $1 ORDER BY applied_at`, postId)
}

func (s *Storage) GetApplicationsByApplicant(userId string) ([]domain.Application, error) {
	return s.queryApplications(`SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY applied_at`, userId)
}

func (s *Storage) UpdateApplication(a *domain.Application) error {
	result, err := s.db.Exec(`
	UPDATE applications SET status = $2, reviewed_at = $3, updated_at = $4
	WHERE id = $1`,
		a.Id, a.Status, a.ReviewedAt, a.UpdatedAt)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperrors.NotFound("Application not found")
	}
	return nil
}

func (s *Storage) queryApplications(query string, args ...any) ([]domain.Application, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		application, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *application)
	}
	return applications, rows.Err()
}

func scanApplication(scan func(...any) error) (*domain.Application, error) {
	var a domain.Application
	var postSnap, applicantSnap, answers []byte
	err := scan(&a.Id, &a.PostId, &a.ApplicantId, &postSnap, &applicantSnap,
		&a.AppliedForSkill, &a.Resume, &a.CoverLetter, &answers, &a.Status,
		&a.AppliedAt, &a.ReviewedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := scanJSON(postSnap, &a.Post); err != nil {
		return nil, err
	}
	if err := scanJSON(applicantSnap, &a.Applicant); err != nil {
		return nil, err
	}
	if err := scanJSON(answers, &a.Answers); err != nil {
		return nil, err
	}
	return &a, nil
}
