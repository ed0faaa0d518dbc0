package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateNotification(n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := loadSlice[domain.Notification](s, keyNotifications)
	if err != nil {
		return err
	}
	notifications = append(notifications, *n)
	return s.save(keyNotifications, notifications)
}

func (s *Storage) GetNotification(id string) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := loadSlice[domain.Notification](s, keyNotifications)
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		if notifications[i].Id == id {
			return &notifications[i], nil
		}
	}
	return nil, apperrors.NotFound("Notification not found")
}

func (s *Storage) GetNotificationsByUser(userId string) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := loadSlice[domain.Notification](s, keyNotifications)
	if err != nil {
		return nil, err
	}
	matching := []domain.Notification{}
	for _, n := range notifications {
		if n.UserId == userId {
			matching = append(matching, n)
		}
	}
	return matching, nil
}

func (s *Storage) UpdateNotification(n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := loadSlice[domain.Notification](s, keyNotifications)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].Id == n.Id {
			notifications[i] = *n
			return s.save(keyNotifications, notifications)
		}
	}
	return apperrors.NotFound("Notification not found")
}
