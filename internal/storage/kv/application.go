package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateApplication(a *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications, err := loadSlice[domain.Application](s, keyApplications)
	if err != nil {
		return err
	}
	applications = append(applications, *a)
	return s.save(keyApplications, applications)
}

func (s *Storage) GetApplication(id string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications, err := loadSlice[domain.Application](s, keyApplications)
	if err != nil {
		return nil, err
	}
	for i := range applications {
		if applications[i].Id == id {
			return &applications[i], nil
		}
	}
	return nil, apperrors.NotFound("Application not found")
}

func (s *Storage) GetApplicationsByPost(postId string) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications, err := loadSlice[domain.Application](s, keyApplications)
	if err != nil {
		return nil, err
	}
	matching := []domain.Application{}
	for _, a := range applications {
		if a.PostId == postId {
			matching = append(matching, a)
		}
	}
	return matching, nil
}

func (s *Storage) GetApplicationsByApplicant(userId string) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications, err := loadSlice[domain.Application](s, keyApplications)
	if err != nil {
		return nil, err
	}
	matching := []domain.Application{}
	for _, a := range applications {
		if a.ApplicantId == userId {
			matching = append(matching, a)
		}
	}
	return matching, nil
}

func (s *Storage) UpdateApplication(a *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications, err := loadSlice[domain.Application](s, keyApplications)
	if err != nil {
		return err
	}
	for i := range applications {
		if applications[i].Id == a.Id {
			applications[i] = *a
			return s.save(keyApplications, applications)
		}
	}
	return apperrors.NotFound("Application not found")
}
