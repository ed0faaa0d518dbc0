package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
	"github.com/campuslink-dev/campuslink/internal/logger"
)

type ApplicationStorage interface {
	CreateApplication(a *domain.Application) error
	GetApplication(id string) (*domain.Application, error)
	GetApplicationsByPost(postId string) ([]domain.Application, error)
	GetApplicationsByApplicant(userId string) ([]domain.Application, error)
	UpdateApplication(a *domain.Application) error
}

// ChatroomProvisioner is the slice of the chatroom engine the
// application engine needs when an acceptance lands.
type ChatroomProvisioner interface {
	Create(postId, ownerId string, memberIds []string) (*domain.Chatroom, error)
	AddMember(chatroomId, userId string) (*domain.Chatroom, error)
}

type Application struct {
	storage   ApplicationStorage
	posts     PostStorage
	users     UserStorage
	chatrooms ChatroomProvisioner
	notifier  Notifier
}

func NewApplication(storage ApplicationStorage, posts PostStorage, users UserStorage, chatrooms ChatroomProvisioner, notifier Notifier) *Application {
	return &Application{storage, posts, users, chatrooms, notifier}
}

// Create validates every precondition before touching storage, in a
// fixed order so each failure mode surfaces as its own error.
func (s *Application) Create(data domain.ApplicationCreationData) (*domain.Application, error) {
	post, err := s.posts.GetPost(data.PostId)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostActive {
		return nil, apperrors.InvalidState("Post is no longer accepting applications")
	}
	if post.AtCapacity() {
		return nil, apperrors.CapacityExceeded("Post has reached its member limit")
	}
	if post.DeadlinePassed(time.Now().UTC()) {
		return nil, apperrors.DeadlinePassed("Application deadline has passed")
	}
	applicant, err := s.users.GetUser(data.ApplicantId)
	if err != nil {
		return nil, err
	}
	existing, err := s.storage.GetApplicationsByPost(data.PostId)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.ApplicantId == data.ApplicantId && a.Active() {
			return nil, apperrors.Conflict("You have already applied to this post")
		}
	}

	now := time.Now().UTC()
	application := &domain.Application{
		Id:              uuid.NewString(),
		PostId:          data.PostId,
		ApplicantId:     data.ApplicantId,
		Post:            post.Snapshot(),
		Applicant:       applicant.Snapshot(),
		AppliedForSkill: data.AppliedForSkill,
		Resume:          data.Resume,
		CoverLetter:     data.CoverLetter,
		Answers:         data.Answers,
		Status:          domain.ApplicationApplied,
		AppliedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.storage.CreateApplication(application); err != nil {
		return nil, err
	}

	emit(s.notifier, domain.NotificationCreationData{
		UserId:        post.Author.Id,
		Type:          domain.NotifApplicationReceived,
		Title:         "New application",
		Message:       fmt.Sprintf("%s applied to %q", applicant.Name, post.Title),
		Link:          "/posts/" + post.Id + "/applications",
		RelatedUserId: applicant.Id,
		RelatedPostId: post.Id,
	})
	return application, nil
}

// UpdateStatus moves an application through review. Only the post
// author may call it, and only while the post is still active.
//
// On acceptance the chatroom is provisioned best-effort: a chat
// failure is logged but never rolls back the acceptance. Accepted
// state is authoritative even if chat setup fails.
func (s *Application) UpdateStatus(applicationId, ownerId string, status domain.ApplicationStatus) (*domain.Application, error) {
	switch status {
	case domain.ApplicationShortlisted, domain.ApplicationAccepted, domain.ApplicationRejected:
	default:
		return nil, &apperrors.Error{Message: "Status must be shortlisted, accepted or rejected", StatusCode: 400}
	}

	application, err := s.storage.GetApplication(applicationId)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPost(application.PostId)
	if err != nil {
		return nil, err
	}
	if post.Author.Id != ownerId {
		return nil, apperrors.Forbidden("Only the post author can review applications")
	}
	if post.Status != domain.PostActive {
		return nil, apperrors.InvalidState("Cannot review applications on an inactive post")
	}
	if application.Status == domain.ApplicationWithdrawn {
		return nil, apperrors.InvalidState("Application has been withdrawn")
	}
	if application.Status == domain.ApplicationAccepted {
		return nil, apperrors.InvalidState("Application is already accepted")
	}

	now := time.Now().UTC()
	postFilled := false
	if status == domain.ApplicationAccepted {
		if post.AtCapacity() {
			return nil, apperrors.CapacityExceeded("Post has reached its member limit")
		}
		post.CurrentMembers++
		if post.AtCapacity() {
			post.Status = domain.PostFilled
			postFilled = true
		}
	}

	application.Status = status
	application.ReviewedAt = &now
	application.UpdatedAt = now
	if err := s.storage.UpdateApplication(application); err != nil {
		return nil, err
	}

	if status == domain.ApplicationAccepted {
		post.UpdatedAt = now
		if err := s.posts.UpdatePost(post); err != nil {
			return nil, err
		}
		s.provisionChatroom(post, application.ApplicantId)
		if postFilled {
			emit(s.notifier, domain.NotificationCreationData{
				UserId:        post.Author.Id,
				Type:          domain.NotifPostStatusChanged,
				Title:         "Team complete",
				Message:       fmt.Sprintf("%q has reached its member limit", post.Title),
				Link:          "/posts/" + post.Id,
				RelatedPostId: post.Id,
			})
		}
	}

	if status == domain.ApplicationAccepted || status == domain.ApplicationRejected {
		emit(s.notifier, domain.NotificationCreationData{
			UserId:        application.ApplicantId,
			Type:          domain.NotifApplicationUpdated,
			Title:         "Application " + string(status),
			Message:       fmt.Sprintf("Your application to %q was %s", post.Title, status),
			Link:          "/posts/" + post.Id,
			RelatedPostId: post.Id,
		})
	}
	return application, nil
}

// provisionChatroom creates the post's room on first acceptance or
// adds the new member to the existing one. Failures are swallowed on
// purpose: acceptance must not be blocked by chat infrastructure.
func (s *Application) provisionChatroom(post *domain.Post, applicantId string) {
	var err error
	if post.ChatroomId == "" {
		_, err = s.chatrooms.Create(post.Id, post.Author.Id, []string{applicantId})
	} else {
		_, err = s.chatrooms.AddMember(post.ChatroomId, applicantId)
	}
	if err != nil {
		logger.Log.Error("chatroom provisioning failed",
			"post_id", post.Id,
			"applicant_id", applicantId,
			"error", err)
	}
}

// Withdraw releases the applicant's slot. Withdrawing an accepted
// application frees post capacity and can revert a filled post back to
// active. The applicant stays in the post's chatroom, the team keeps
// its communication channel.
func (s *Application) Withdraw(applicationId, userId string) (*domain.Application, error) {
	application, err := s.storage.GetApplication(applicationId)
	if err != nil {
		return nil, err
	}
	if application.ApplicantId != userId {
		return nil, apperrors.Forbidden("Only the applicant can withdraw")
	}
	if application.Status == domain.ApplicationWithdrawn {
		return application, nil
	}
	if application.Status == domain.ApplicationRejected {
		return nil, apperrors.InvalidState("Application was already rejected")
	}

	now := time.Now().UTC()
	if application.Status == domain.ApplicationAccepted {
		post, err := s.posts.GetPost(application.PostId)
		if err != nil {
			return nil, err
		}
		if post.CurrentMembers > 0 {
			post.CurrentMembers--
		}
		if post.Status == domain.PostFilled && !post.AtCapacity() {
			post.Status = domain.PostActive
		}
		post.UpdatedAt = now
		if err := s.posts.UpdatePost(post); err != nil {
			return nil, err
		}
	}

	application.Status = domain.ApplicationWithdrawn
	application.UpdatedAt = now
	if err := s.storage.UpdateApplication(application); err != nil {
		return nil, err
	}
	return application, nil
}

// StatsForPost is a pure aggregate, no mutation.
func (s *Application) StatsForPost(postId string) (*domain.ApplicationStats, error) {
	applications, err := s.storage.GetApplicationsByPost(postId)
	if err != nil {
		return nil, err
	}
	stats := &domain.ApplicationStats{Total: len(applications)}
	for _, a := range applications {
		switch a.Status {
		case domain.ApplicationApplied:
			stats.Applied++
		case domain.ApplicationShortlisted:
			stats.Shortlisted++
		case domain.ApplicationAccepted:
			stats.Accepted++
		case domain.ApplicationRejected:
			stats.Rejected++
		case domain.ApplicationWithdrawn:
			stats.Withdrawn++
		}
	}
	return stats, nil
}

func (s *Application) ListForPost(postId, ownerId string) ([]domain.Application, error) {
	post, err := s.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	if post.Author.Id != ownerId {
		return nil, apperrors.Forbidden("Only the post author can list applications")
	}
	applications, err := s.storage.GetApplicationsByPost(postId)
	if err != nil {
		return nil, err
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].AppliedAt.Before(applications[j].AppliedAt)
	})
	return applications, nil
}

func (s *Application) ListForUser(userId string) ([]domain.Application, error) {
	applications, err := s.storage.GetApplicationsByApplicant(userId)
	if err != nil {
		return nil, err
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].AppliedAt.After(applications[j].AppliedAt)
	})
	return applications, nil
}
