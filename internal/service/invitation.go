package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

type InvitationStorage interface {
	CreateInvitation(i *domain.Invitation) error
	GetInvitation(id string) (*domain.Invitation, error)
	GetInvitationsByInvitee(userId string) ([]domain.Invitation, error)
	GetInvitationsByPost(postId string) ([]domain.Invitation, error)
	UpdateInvitation(i *domain.Invitation) error
}

// Invitation implements the owner-to-candidate workflow. Accepting an
// invitation only unblocks applying, it never creates an Application;
// the candidate submits separately through the Application engine.
type Invitation struct {
	storage  InvitationStorage
	posts    PostStorage
	users    UserStorage
	notifier Notifier
}

func NewInvitation(storage InvitationStorage, posts PostStorage, users UserStorage, notifier Notifier) *Invitation {
	return &Invitation{storage, posts, users, notifier}
}

func (s *Invitation) Create(postId, inviterId, inviteeId, message string) (*domain.Invitation, error) {
	post, err := s.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostActive {
		return nil, apperrors.InvalidState("Post is not accepting invitations")
	}
	if post.Author.Id != inviterId {
		return nil, apperrors.Forbidden("Only the post author can invite")
	}
	inviter, err := s.users.GetUser(inviterId)
	if err != nil {
		return nil, err
	}
	invitee, err := s.users.GetUser(inviteeId)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.GetInvitationsByPost(postId)
	if err != nil {
		return nil, err
	}
	for _, inv := range existing {
		if inv.InviteeId == inviteeId && inv.Pending() {
			return nil, apperrors.Conflict("A pending invitation for this user already exists")
		}
	}

	invitation := &domain.Invitation{
		Id:        uuid.NewString(),
		PostId:    postId,
		InviterId: inviterId,
		InviteeId: inviteeId,
		Post:      post.Snapshot(),
		Inviter:   inviter.Snapshot(),
		Invitee:   invitee.Snapshot(),
		Message:   message,
		Status:    domain.InvitationPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	emit(s.notifier, domain.NotificationCreationData{
		UserId:        inviteeId,
		Type:          domain.NotifInvitationReceived,
		Title:         "New invitation",
		Message:       fmt.Sprintf("%s invited you to apply to %q", inviter.Name, post.Title),
		Link:          "/posts/" + postId,
		RelatedUserId: inviterId,
		RelatedPostId: postId,
	})
	return invitation, nil
}

// MarkSeen is idempotent, the first view wins.
func (s *Invitation) MarkSeen(invitationId, userId string) (*domain.Invitation, error) {
	invitation, err := s.storage.GetInvitation(invitationId)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeId != userId {
		return nil, apperrors.Forbidden("Not your invitation")
	}
	if invitation.SeenAt != nil {
		return invitation, nil
	}
	now := time.Now().UTC()
	invitation.SeenAt = &now
	if err := s.storage.UpdateInvitation(invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

func (s *Invitation) Respond(invitationId, userId string, action domain.InvitationStatus) (*domain.Invitation, error) {
	if action != domain.InvitationAccepted && action != domain.InvitationDeclined {
		return nil, &apperrors.Error{Message: "Action must be accepted or declined", StatusCode: 400}
	}
	invitation, err := s.storage.GetInvitation(invitationId)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeId != userId {
		return nil, apperrors.Forbidden("Not your invitation")
	}
	if !invitation.Pending() {
		return nil, apperrors.InvalidState("Invitation already responded to")
	}

	now := time.Now().UTC()
	invitation.Status = action
	invitation.RespondedAt = &now
	if invitation.SeenAt == nil {
		invitation.SeenAt = &now
	}
	if err := s.storage.UpdateInvitation(invitation); err != nil {
		return nil, err
	}

	emit(s.notifier, domain.NotificationCreationData{
		UserId:        invitation.InviterId,
		Type:          domain.NotifInvitationResponded,
		Title:         "Invitation " + string(action),
		Message:       fmt.Sprintf("%s %s your invitation to %q", invitation.Invitee.Name, action, invitation.Post.Title),
		Link:          "/posts/" + invitation.PostId,
		RelatedUserId: userId,
		RelatedPostId: invitation.PostId,
	})
	return invitation, nil
}

func (s *Invitation) Cancel(invitationId, userId string) (*domain.Invitation, error) {
	invitation, err := s.storage.GetInvitation(invitationId)
	if err != nil {
		return nil, err
	}
	if invitation.InviterId != userId {
		return nil, apperrors.Forbidden("Only the inviter can cancel")
	}
	if !invitation.Pending() {
		return nil, apperrors.InvalidState("Invitation already responded to")
	}

	now := time.Now().UTC()
	invitation.Status = domain.InvitationCancelled
	invitation.RespondedAt = &now
	if err := s.storage.UpdateInvitation(invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

func (s *Invitation) ListForUser(userId string) ([]domain.Invitation, error) {
	invitations, err := s.storage.GetInvitationsByInvitee(userId)
	if err != nil {
		return nil, err
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

func (s *Invitation) ListForPost(postId, ownerId string) ([]domain.Invitation, error) {
	post, err := s.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	if post.Author.Id != ownerId {
		return nil, apperrors.Forbidden("Only the post author can list invitations")
	}
	return s.storage.GetInvitationsByPost(postId)
}
