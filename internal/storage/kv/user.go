package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateUser(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadSlice[domain.User](s, keyUsers)
	if err != nil {
		return err
	}
	users = append(users, *u)
	return s.save(keyUsers, users)
}

func (s *Storage) GetUser(id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadSlice[domain.User](s, keyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Id == id {
			return &users[i], nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (s *Storage) GetUserByEmail(email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadSlice[domain.User](s, keyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}
