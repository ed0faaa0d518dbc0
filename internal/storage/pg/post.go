package pg

import (
	"database/sql"
	"errors"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

const postColumns = `id, title, description, purpose, skill_requirements, author, deadline,
	max_members, current_members, status, chatroom_id, chat_grace_days, expires_at, created_at, updated_at`

func (s *Storage) CreatePost(p *domain.Post) error {
	skills, err := jsonb(p.SkillRequirements)
	if err != nil {
		return err
	}
	author, err := jsonb(p.Author)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	INSERT INTO posts(`+postColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.Id, p.Title, p.Description, p.Purpose, skills, author, p.Deadline,
		p.MaxMembers, p.CurrentMembers, p.Status, p.ChatroomId, p.ChatGraceDays,
		p.ExpiresAt, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *Storage) GetPost(id string) (*domain.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	post, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *Storage) GetPosts() ([]domain.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at`)
}

func (s *Storage) GetPostsByStatus(status domain.PostStatus) ([]domain.Post, error) {
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE status = $1 ORDER BY created_at`, status)
}

func (s *Storage) UpdatePost(p *domain.Post) error {
	skills, err := jsonb(p.SkillRequirements)
	if err != nil {
		return err
	}
	result, err := s.db.Exec(`
	UPDATE posts SET
		title = $2, description = $3, purpose = $4, skill_requirements = $5,
		deadline = $6, max_members = $7, current_members = $8, status = $9,
		chatroom_id = $10, chat_grace_days = $11, expires_at = $12, updated_at = $13
	WHERE id = $1`,
		p.Id, p.Title, p.Description, p.Purpose, skills, p.Deadline, p.MaxMembers,
		p.CurrentMembers, p.Status, p.ChatroomId, p.ChatGraceDays, p.ExpiresAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperrors.NotFound("Post not found")
	}
	return nil
}

func (s *Storage) queryPosts(query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(scan func(...any) error) (*domain.Post, error) {
	var p domain.Post
	var skills, author []byte
	err := scan(&p.Id, &p.Title, &p.Description, &p.Purpose, &skills, &author, &p.Deadline,
		&p.MaxMembers, &p.CurrentMembers, &p.Status, &p.ChatroomId, &p.ChatGraceDays,
		&p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := scanJSON(skills, &p.SkillRequirements); err != nil {
		return nil, err
	}
	if err := scanJSON(author, &p.Author); err != nil {
		return nil, err
	}
	return &p, nil
}
