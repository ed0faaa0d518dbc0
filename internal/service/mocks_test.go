package service

import (
	"sync"
	"time"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

// Func-field mocks shared by the engine tests. A nil func falls back to
// an empty-store default (not found / empty list) so tests only wire
// the calls they care about.

type MockUserStorage struct {
	createUserFunc     func(u *domain.User) error
	getUserFunc        func(id string) (*domain.User, error)
	getUserByEmailFunc func(email string) (*domain.User, error)
}

func (m *MockUserStorage) CreateUser(u *domain.User) error {
	if m.createUserFunc != nil {
		return m.createUserFunc(u)
	}
	return nil
}

func (m *MockUserStorage) GetUser(id string) (*domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(id)
	}
	return nil, apperrors.NotFound("User not found")
}

func (m *MockUserStorage) GetUserByEmail(email string) (*domain.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(email)
	}
	return nil, apperrors.NotFound("User not found")
}

// knownUsers returns a MockUserStorage that resolves the given users by
// id and 404s everyone else.
func knownUsers(users ...*domain.User) *MockUserStorage {
	index := make(map[string]*domain.User, len(users))
	for _, u := range users {
		index[u.Id] = u
	}
	return &MockUserStorage{
		getUserFunc: func(id string) (*domain.User, error) {
			if u, ok := index[id]; ok {
				return u, nil
			}
			return nil, apperrors.NotFound("User not found")
		},
	}
}

type MockPostStorage struct {
	createPostFunc       func(p *domain.Post) error
	getPostFunc          func(id string) (*domain.Post, error)
	getPostsFunc         func() ([]domain.Post, error)
	getPostsByStatusFunc func(status domain.PostStatus) ([]domain.Post, error)
	updatePostFunc       func(p *domain.Post) error
}

func (m *MockPostStorage) CreatePost(p *domain.Post) error {
	if m.createPostFunc != nil {
		return m.createPostFunc(p)
	}
	return nil
}

func (m *MockPostStorage) GetPost(id string) (*domain.Post, error) {
	if m.getPostFunc != nil {
		return m.getPostFunc(id)
	}
	return nil, apperrors.NotFound("Post not found")
}

func (m *MockPostStorage) GetPosts() ([]domain.Post, error) {
	if m.getPostsFunc != nil {
		return m.getPostsFunc()
	}
	return []domain.Post{}, nil
}

func (m *MockPostStorage) GetPostsByStatus(status domain.PostStatus) ([]domain.Post, error) {
	if m.getPostsByStatusFunc != nil {
		return m.getPostsByStatusFunc(status)
	}
	return []domain.Post{}, nil
}

func (m *MockPostStorage) UpdatePost(p *domain.Post) error {
	if m.updatePostFunc != nil {
		return m.updatePostFunc(p)
	}
	return nil
}

type MockApplicationStorage struct {
	createApplicationFunc          func(a *domain.Application) error
	getApplicationFunc             func(id string) (*domain.Application, error)
	getApplicationsByPostFunc      func(postId string) ([]domain.Application, error)
	getApplicationsByApplicantFunc func(userId string) ([]domain.Application, error)
	updateApplicationFunc          func(a *domain.Application) error
}

func (m *MockApplicationStorage) CreateApplication(a *domain.Application) error {
	if m.createApplicationFunc != nil {
		return m.createApplicationFunc(a)
	}
	return nil
}

func (m *MockApplicationStorage) GetApplication(id string) (*domain.Application, error) {
	if m.getApplicationFunc != nil {
		return m.getApplicationFunc(id)
	}
	return nil, apperrors.NotFound("Application not found")
}

func (m *MockApplicationStorage) GetApplicationsByPost(postId string) ([]domain.Application, error) {
	if m.getApplicationsByPostFunc != nil {
		return m.getApplicationsByPostFunc(postId)
	}
	return []domain.Application{}, nil
}

func (m *MockApplicationStorage) GetApplicationsByApplicant(userId string) ([]domain.Application, error) {
	if m.getApplicationsByApplicantFunc != nil {
		return m.getApplicationsByApplicantFunc(userId)
	}
	return []domain.Application{}, nil
}

func (m *MockApplicationStorage) UpdateApplication(a *domain.Application) error {
	if m.updateApplicationFunc != nil {
		return m.updateApplicationFunc(a)
	}
	return nil
}

type MockInvitationStorage struct {
	createInvitationFunc       func(i *domain.Invitation) error
	getInvitationFunc          func(id string) (*domain.Invitation, error)
	getInvitationsByInviteeFunc func(userId string) ([]domain.Invitation, error)
	getInvitationsByPostFunc   func(postId string) ([]domain.Invitation, error)
	updateInvitationFunc       func(i *domain.Invitation) error
}

func (m *MockInvitationStorage) CreateInvitation(i *domain.Invitation) error {
	if m.createInvitationFunc != nil {
		return m.createInvitationFunc(i)
	}
	return nil
}

func (m *MockInvitationStorage) GetInvitation(id string) (*domain.Invitation, error) {
	if m.getInvitationFunc != nil {
		return m.getInvitationFunc(id)
	}
	return nil, apperrors.NotFound("Invitation not found")
}

func (m *MockInvitationStorage) GetInvitationsByInvitee(userId string) ([]domain.Invitation, error) {
	if m.getInvitationsByInviteeFunc != nil {
		return m.getInvitationsByInviteeFunc(userId)
	}
	return []domain.Invitation{}, nil
}

func (m *MockInvitationStorage) GetInvitationsByPost(postId string) ([]domain.Invitation, error) {
	if m.getInvitationsByPostFunc != nil {
		return m.getInvitationsByPostFunc(postId)
	}
	return []domain.Invitation{}, nil
}

func (m *MockInvitationStorage) UpdateInvitation(i *domain.Invitation) error {
	if m.updateInvitationFunc != nil {
		return m.updateInvitationFunc(i)
	}
	return nil
}

type MockChatroomStorage struct {
	createChatroomFunc       func(c *domain.Chatroom) error
	getChatroomFunc          func(id string) (*domain.Chatroom, error)
	getChatroomByPostFunc    func(postId string) (*domain.Chatroom, error)
	getChatroomsByStatusFunc func(status domain.ChatroomStatus) ([]domain.Chatroom, error)
	getChatroomsByMemberFunc func(userId string) ([]domain.Chatroom, error)
	updateChatroomFunc       func(c *domain.Chatroom) error
	archiveChatroomFunc      func(c *domain.Chatroom) error
}

func (m *MockChatroomStorage) CreateChatroom(c *domain.Chatroom) error {
	if m.createChatroomFunc != nil {
		return m.createChatroomFunc(c)
	}
	return nil
}

func (m *MockChatroomStorage) GetChatroom(id string) (*domain.Chatroom, error) {
	if m.getChatroomFunc != nil {
		return m.getChatroomFunc(id)
	}
	return nil, apperrors.NotFound("Chatroom not found")
}

func (m *MockChatroomStorage) GetChatroomByPost(postId string) (*domain.Chatroom, error) {
	if m.getChatroomByPostFunc != nil {
		return m.getChatroomByPostFunc(postId)
	}
	return nil, apperrors.NotFound("Chatroom not found")
}

func (m *MockChatroomStorage) GetChatroomsByStatus(status domain.ChatroomStatus) ([]domain.Chatroom, error) {
	if m.getChatroomsByStatusFunc != nil {
		return m.getChatroomsByStatusFunc(status)
	}
	return []domain.Chatroom{}, nil
}

func (m *MockChatroomStorage) GetChatroomsByMember(userId string) ([]domain.Chatroom, error) {
	if m.getChatroomsByMemberFunc != nil {
		return m.getChatroomsByMemberFunc(userId)
	}
	return []domain.Chatroom{}, nil
}

func (m *MockChatroomStorage) UpdateChatroom(c *domain.Chatroom) error {
	if m.updateChatroomFunc != nil {
		return m.updateChatroomFunc(c)
	}
	return nil
}

func (m *MockChatroomStorage) ArchiveChatroom(c *domain.Chatroom) error {
	if m.archiveChatroomFunc != nil {
		return m.archiveChatroomFunc(c)
	}
	return nil
}

type MockNotificationStorage struct {
	createNotificationFunc     func(n *domain.Notification) error
	getNotificationFunc        func(id string) (*domain.Notification, error)
	getNotificationsByUserFunc func(userId string) ([]domain.Notification, error)
	updateNotificationFunc     func(n *domain.Notification) error
}

func (m *MockNotificationStorage) CreateNotification(n *domain.Notification) error {
	if m.createNotificationFunc != nil {
		return m.createNotificationFunc(n)
	}
	return nil
}

func (m *MockNotificationStorage) GetNotification(id string) (*domain.Notification, error) {
	if m.getNotificationFunc != nil {
		return m.getNotificationFunc(id)
	}
	return nil, apperrors.NotFound("Notification not found")
}

func (m *MockNotificationStorage) GetNotificationsByUser(userId string) ([]domain.Notification, error) {
	if m.getNotificationsByUserFunc != nil {
		return m.getNotificationsByUserFunc(userId)
	}
	return []domain.Notification{}, nil
}

func (m *MockNotificationStorage) UpdateNotification(n *domain.Notification) error {
	if m.updateNotificationFunc != nil {
		return m.updateNotificationFunc(n)
	}
	return nil
}

// RecordingNotifier captures everything the engines emit.
type RecordingNotifier struct {
	mu        sync.Mutex
	notifyErr error
	sent      []domain.NotificationCreationData
}

func (r *RecordingNotifier) Notify(data domain.NotificationCreationData) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notifyErr != nil {
		return nil, r.notifyErr
	}
	r.sent = append(r.sent, data)
	return &domain.Notification{Id: "n", UserId: data.UserId, Type: data.Type}, nil
}

func (r *RecordingNotifier) sentTo(userId string, t domain.NotificationType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.sent {
		if d.UserId == userId && d.Type == t {
			return true
		}
	}
	return false
}

func (r *RecordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type MockChatroomProvisioner struct {
	createFunc     func(postId, ownerId string, memberIds []string) (*domain.Chatroom, error)
	addMemberFunc  func(chatroomId, userId string) (*domain.Chatroom, error)
	createCalls    int
	addMemberCalls int
}

func (m *MockChatroomProvisioner) Create(postId, ownerId string, memberIds []string) (*domain.Chatroom, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(postId, ownerId, memberIds)
	}
	return &domain.Chatroom{Id: "room-" + postId, PostId: postId}, nil
}

func (m *MockChatroomProvisioner) AddMember(chatroomId, userId string) (*domain.Chatroom, error) {
	m.addMemberCalls++
	if m.addMemberFunc != nil {
		return m.addMemberFunc(chatroomId, userId)
	}
	return &domain.Chatroom{Id: chatroomId}, nil
}

type MockChatroomCleaner struct {
	cleanupFunc func() ChatroomCleanupStats
}

func (m *MockChatroomCleaner) CleanupExpired(now time.Time) ChatroomCleanupStats {
	if m.cleanupFunc != nil {
		return m.cleanupFunc()
	}
	return ChatroomCleanupStats{Errors: []string{}}
}
