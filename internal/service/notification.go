package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
	"github.com/campuslink-dev/campuslink/internal/logger"
)

// Notifier is the fire-and-forget sink the engines emit into. Delivery
// failures must never fail the mutation that triggered them; engines go
// through emit() which logs and drops errors.
type Notifier interface {
	Notify(data domain.NotificationCreationData) (*domain.Notification, error)
}

type NotificationStorage interface {
	CreateNotification(n *domain.Notification) error
	GetNotification(id string) (*domain.Notification, error)
	GetNotificationsByUser(userId string) ([]domain.Notification, error)
	UpdateNotification(n *domain.Notification) error
}

type Notification struct {
	storage NotificationStorage
}

func NewNotification(storage NotificationStorage) *Notification {
	return &Notification{storage}
}

func (s *Notification) Notify(data domain.NotificationCreationData) (*domain.Notification, error) {
	n := &domain.Notification{
		Id:                uuid.NewString(),
		UserId:            data.UserId,
		Type:              data.Type,
		Title:             data.Title,
		Message:           data.Message,
		Link:              data.Link,
		RelatedUserId:     data.RelatedUserId,
		RelatedPostId:     data.RelatedPostId,
		RelatedChatroomId: data.RelatedChatroomId,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.storage.CreateNotification(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Notification) ListForUser(userId string) ([]domain.Notification, error) {
	notifications, err := s.storage.GetNotificationsByUser(userId)
	if err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *Notification) UnreadCount(userId string) (int, error) {
	notifications, err := s.storage.GetNotificationsByUser(userId)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead is idempotent, re-reading an already read notification no-ops.
func (s *Notification) MarkRead(notificationId, userId string) error {
	n, err := s.storage.GetNotification(notificationId)
	if err != nil {
		return err
	}
	if n.UserId != userId {
		return apperrors.Forbidden("Not your notification")
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return s.storage.UpdateNotification(n)
}

func (s *Notification) MarkAllRead(userId string) error {
	notifications, err := s.storage.GetNotificationsByUser(userId)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].Read {
			continue
		}
		notifications[i].Read = true
		if err := s.storage.UpdateNotification(&notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

// emit delivers a notification best-effort. The engines call this after
// their writes committed, so a sink failure can only lose the badge
// update, never the mutation.
func emit(n Notifier, data domain.NotificationCreationData) {
	if n == nil {
		return
	}
	if _, err := n.Notify(data); err != nil {
		logger.Log.Warn("notification emit failed",
			"user_id", data.UserId,
			"type", data.Type,
			"error", err)
	}
}
