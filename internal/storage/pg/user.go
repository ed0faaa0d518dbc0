package pg

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateUser(u *domain.User) error {
	_, err := s.db.Exec(`
	INSERT INTO users(id, name, email, pass_hash, role, department, skills, created_at)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.Id, u.Name, u.Email, u.PassHash, u.Role, u.Department, pq.Array(u.Skills), u.CreatedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("Email already registered")
	}
	return err
}

func (s *Storage) GetUser(id string) (*domain.User, error) {
	return s.scanUser(s.db.QueryRow(`
	SELECT id, name, email, pass_hash, role, department, skills, created_at
	FROM users WHERE id = $1`, id))
}

func (s *Storage) GetUserByEmail(email string) (*domain.User, error) {
	return s.scanUser(s.db.QueryRow(`
	SELECT id, name, email, pass_hash, role, department, skills, created_at
	FROM users WHERE email = $1`, email))
}

func (s *Storage) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Name, &u.Email, &u.PassHash, &u.Role, &u.Department, pq.Array(&u.Skills), &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
