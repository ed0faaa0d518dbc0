package pg

import (
	"database/sql"
	"errors"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

const notificationColumns = `id, user_id, type, title, message, link,
	related_user_id, related_post_id, related_chatroom_id, read, created_at`

func (s *Storage) CreateNotification(n *domain.Notification) error {
	_, err := s.db.Exec(`
	INSERT INTO notifications(`+notificationColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.Id, n.UserId, n.Type, n.Title, n.Message, n.Link,
		n.RelatedUserId, n.RelatedPostId, n.RelatedChatroomId, n.Read, n.CreatedAt)
	return err
}

func (s *Storage) GetNotification(id string) (*domain.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Notification not found")
		}
		return nil, err
	}
	return n, nil
}

func (s *Storage) GetNotificationsByUser(userId string) ([]domain.Notification, error) {
	rows, err := s.db.Query(`
	SELECT `+notificationColumns+` FROM notifications
	WHERE user_id = $1 ORDER BY created_at DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *Storage) UpdateNotification(n *domain.Notification) error {
	result, err := s.db.Exec(`UPDATE notifications SET read = $2 WHERE id = $1`, n.Id, n.Read)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperrors.NotFound("Notification not found")
	}
	return nil
}

func scanNotification(scan func(...any) error) (*domain.Notification, error) {
	var n domain.Notification
	err := scan(&n.Id, &n.UserId, &n.Type, &n.Title, &n.Message, &n.Link,
		&n.RelatedUserId, &n.RelatedPostId, &n.RelatedChatroomId, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
