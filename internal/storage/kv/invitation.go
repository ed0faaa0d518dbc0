package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateInvitation(i *domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations, err := loadSlice[domain.Invitation](s, keyInvitations)
	if err != nil {
		return err
	}
	invitations = append(invitations, *i)
	return s.save(keyInvitations, invitations)
}

func (s *Storage) GetInvitation(id string) (*domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations, err := loadSlice[domain.Invitation](s, keyInvitations)
	if err != nil {
		return nil, err
	}
	for i := range invitations {
		if invitations[i].Id == id {
			return &invitations[i], nil
		}
	}
	return nil, apperrors.NotFound("Invitation not found")
}

func (s *Storage) GetInvitationsByInvitee(userId string) ([]domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations, err := loadSlice[domain.Invitation](s, keyInvitations)
	if err != nil {
		return nil, err
	}
	matching := []domain.Invitation{}
	for _, inv := range invitations {
		if inv.InviteeId == userId {
			matching = append(matching, inv)
		}
	}
	return matching, nil
}

func (s *Storage) GetInvitationsByPost(postId string) ([]domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations, err := loadSlice[domain.Invitation](s, keyInvitations)
	if err != nil {
		return nil, err
	}
	matching := []domain.Invitation{}
	for _, inv := range invitations {
		if inv.PostId == postId {
			matching = append(matching, inv)
		}
	}
	return matching, nil
}

func (s *Storage) UpdateInvitation(i *domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invitations, err := loadSlice[domain.Invitation](s, keyInvitations)
	if err != nil {
		return err
	}
	for idx := range invitations {
		if invitations[idx].Id == i.Id {
			invitations[idx] = *i
			return s.save(keyInvitations, invitations)
		}
	}
	return apperrors.NotFound("Invitation not found")
}
