package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

const chatroomColumns = `id, post_id, name, members, messages, status, created_at,
	last_activity, expires_at, read_only_at, deleted_at`

func (s *Storage) CreateChatroom(c *domain.Chatroom) error {
	members, err := jsonb(c.Members)
	if err != nil {
		return err
	}
	messages, err := jsonb(c.Messages)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	INSERT INTO chatrooms(`+chatroomColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.Id, c.PostId, c.Name, members, messages, c.Status, c.CreatedAt,
		c.LastActivity, c.ExpiresAt, c.ReadOnlyAt, c.DeletedAt)
	return err
}

func (s *Storage) GetChatroom(id string) (*domain.Chatroom, error) {
	row := s.db.QueryRow(`SELECT `+chatroomColumns+` FROM chatrooms WHERE id = $1`, id)
	room, err := scanChatroom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Chatroom not found")
		}
		return nil, err
	}
	return room, nil
}

// GetChatroomByPost finds the post's live room, deleted rooms are
// invisible to this lookup.
func (s *Storage) GetChatroomByPost(postId string) (*domain.Chatroom, error) {
	row := s.db.QueryRow(`
	SELECT `+chatroomColumns+` FROM chatrooms
	WHERE post_id = $1 AND status <> 'deleted'
	ORDER BY created_at LIMIT 1`, postId)
	room, err := scanChatroom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Chatroom not found")
		}
		return nil, err
	}
	return room, nil
}

func (s *Storage) GetChatroomsByStatus(status domain.ChatroomStatus) ([]domain.Chatroom, error) {
	return s.queryChatrooms(`SELECT `+chatroomColumns+` FROM chatrooms WHERE status = $1 ORDER BY created_at`, status)
}

func (s *Storage) GetChatroomsByMember(userId string) ([]domain.Chatroom, error) {
	return s.queryChatrooms(`
	SELECT `+chatroomColumns+` FROM chatrooms
	WHERE members @> jsonb_build_array(jsonb_build_object('userId', $1::text))
	ORDER BY last_activity DESC`, userId)
}

func (s *Storage) UpdateChatroom(c *domain.Chatroom) error {
	members, err := jsonb(c.Members)
	if err != nil {
		return err
	}
	messages, err := jsonb(c.Messages)
	if err != nil {
		return err
	}
	result, err := s.db.Exec(`
	UPDATE chatrooms SET
		members = $2, messages = $3, status = $4, last_activity = $5,
		expires_at = $6, read_only_at = $7, deleted_at = $8
	WHERE id = $1`,
		c.Id, members, messages, c.Status, c.LastActivity,
		c.ExpiresAt, c.ReadOnlyAt, c.DeletedAt)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperrors.NotFound("Chatroom not found")
	}
	return nil
}

func (s *Storage) ArchiveChatroom(c *domain.Chatroom) error {
	record, err := jsonb(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	INSERT INTO chatroom_archives(id, record, archived_at)
	VALUES($1, $2, $3)
	ON CONFLICT (id) DO NOTHING`,
		c.Id, record, time.Now().UTC())
	return err
}

func (s *Storage) queryChatrooms(query string, args ...any) ([]domain.Chatroom, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []domain.Chatroom{}
	for rows.Next() {
		room, err := scanChatroom(rows.Scan)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func scanChatroom(scan func(...any) error) (*domain.Chatroom, error) {
	var c domain.Chatroom
	var members, messages []byte
	err := scan(&c.Id, &c.PostId, &c.Name, &members, &messages, &c.Status, &c.CreatedAt,
		&c.LastActivity, &c.ExpiresAt, &c.ReadOnlyAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	if err := scanJSON(members, &c.Members); err != nil {
		return nil, err
	}
	if err := scanJSON(messages, &c.Messages); err != nil {
		return nil, err
	}
	return &c, nil
}
