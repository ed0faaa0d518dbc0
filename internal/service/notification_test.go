package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func TestNotificationNotify(t *testing.T) {
	var created *domain.Notification
	storage := &MockNotificationStorage{
		createNotificationFunc: func(n *domain.Notification) error { created = n; return nil },
	}
	s := NewNotification(storage)

	n, err := s.Notify(domain.NotificationCreationData{
		UserId:        "u1",
		Type:          domain.NotifInvitationReceived,
		Title:         "New invitation",
		RelatedPostId: "p1",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, n.Id)
	assert.False(t, n.Read)
	assert.Equal(t, "p1", n.RelatedPostId)
}

func TestNotificationListForUser(t *testing.T) {
	now := time.Now().UTC()
	storage := &MockNotificationStorage{
		getNotificationsByUserFunc: func(userId string) ([]domain.Notification, error) {
			return []domain.Notification{
				{Id: "older", CreatedAt: now.Add(-time.Hour)},
				{Id: "newer", CreatedAt: now},
			}, nil
		},
	}
	s := NewNotification(storage)

	list, err := s.ListForUser("u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Id, "newest first")
}

func TestNotificationUnreadCount(t *testing.T) {
	storage := &MockNotificationStorage{
		getNotificationsByUserFunc: func(userId string) ([]domain.Notification, error) {
			return []domain.Notification{
				{Id: "n1", Read: true},
				{Id: "n2"},
				{Id: "n3"},
			}, nil
		},
	}
	s := NewNotification(storage)

	count, err := s.UnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNotificationMarkRead(t *testing.T) {
	t.Run("marks unread notification", func(t *testing.T) {
		n := &domain.Notification{Id: "n1", UserId: "u1"}
		updates := 0
		storage := &MockNotificationStorage{
			getNotificationFunc:    func(id string) (*domain.Notification, error) { return n, nil },
			updateNotificationFunc: func(n *domain.Notification) error { updates++; return nil },
		}
		s := NewNotification(storage)

		require.NoError(t, s.MarkRead("n1", "u1"))
		assert.True(t, n.Read)
		assert.Equal(t, 1, updates)

		// idempotent
		require.NoError(t, s.MarkRead("n1", "u1"))
		assert.Equal(t, 1, updates)
	})

	t.Run("other users forbidden", func(t *testing.T) {
		storage := &MockNotificationStorage{
			getNotificationFunc: func(id string) (*domain.Notification, error) {
				return &domain.Notification{Id: "n1", UserId: "u1"}, nil
			},
		}
		s := NewNotification(storage)
		err := s.MarkRead("n1", "u2")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})
}

func TestNotificationMarkAllRead(t *testing.T) {
	notifications := []domain.Notification{
		{Id: "n1", UserId: "u1", Read: true},
		{Id: "n2", UserId: "u1"},
		{Id: "n3", UserId: "u1"},
	}
	var updated []string
	storage := &MockNotificationStorage{
		getNotificationsByUserFunc: func(userId string) ([]domain.Notification, error) { return notifications, nil },
		updateNotificationFunc: func(n *domain.Notification) error {
			updated = append(updated, n.Id)
			return nil
		},
	}
	s := NewNotification(storage)

	require.NoError(t, s.MarkAllRead("u1"))
	assert.Equal(t, []string{"n2", "n3"}, updated, "already read entries are skipped")
}

func TestEmit(t *testing.T) {
	t.Run("nil notifier is safe", func(t *testing.T) {
		emit(nil, domain.NotificationCreationData{UserId: "u1"})
	})

	t.Run("sink failure is swallowed", func(t *testing.T) {
		notifier := &RecordingNotifier{notifyErr: errors.New("sink down")}
		emit(notifier, domain.NotificationCreationData{UserId: "u1"})
		assert.Equal(t, 0, notifier.count())
	})
}
