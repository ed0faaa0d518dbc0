package service

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
	"github.com/campuslink-dev/campuslink/internal/logger"
)

type ChatroomStorage interface {
	CreateChatroom(c *domain.Chatroom) error
	GetChatroom(id string) (*domain.Chatroom, error)
	GetChatroomByPost(postId string) (*domain.Chatroom, error)
	GetChatroomsByStatus(status domain.ChatroomStatus) ([]domain.Chatroom, error)
	GetChatroomsByMember(userId string) ([]domain.Chatroom, error)
	UpdateChatroom(c *domain.Chatroom) error
	ArchiveChatroom(c *domain.Chatroom) error
}

// Chatroom implements the per-post team conversation. Rooms move
// active -> read_only -> deleted and never back; messages are
// append-only.
type Chatroom struct {
	storage     ChatroomStorage
	posts       PostStorage
	users       UserStorage
	notifier    Notifier
	deleteDelay time.Duration
}

// ChatroomCleanupStats tracks what one expiry sweep did.
type ChatroomCleanupStats struct {
	RoomsScanned  int
	MadeReadOnly  int
	Deleted       int
	Errors        []string
}

func NewChatroom(storage ChatroomStorage, posts PostStorage, users UserStorage, notifier Notifier, deleteDelay time.Duration) *Chatroom {
	if deleteDelay <= 0 {
		deleteDelay = 24 * time.Hour
	}
	return &Chatroom{storage, posts, users, notifier, deleteDelay}
}

// Create is idempotent per post: a second call returns the existing
// room untouched. Member ids that resolve to no user are dropped
// silently, matching how acceptance-time provisioning tolerates stale
// ids.
func (s *Chatroom) Create(postId, ownerId string, memberIds []string) (*domain.Chatroom, error) {
	existing, err := s.storage.GetChatroomByPost(postId)
	if err == nil {
		return existing, nil
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	post, err := s.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetUser(ownerId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	members := []domain.Member{{
		UserId:   owner.Id,
		Name:     owner.Name,
		Role:     domain.MemberOwner,
		JoinedAt: now,
	}}
	for _, id := range memberIds {
		if id == ownerId || slices.ContainsFunc(members, func(m domain.Member) bool { return m.UserId == id }) {
			continue
		}
		user, err := s.users.GetUser(id)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				logger.Log.Warn("dropping unknown chatroom member", "user_id", id, "post_id", postId)
				continue
			}
			return nil, err
		}
		members = append(members, domain.Member{
			UserId:   user.Id,
			Name:     user.Name,
			Role:     domain.MemberRegular,
			JoinedAt: now,
		})
	}

	var expiresAt *time.Time
	if post.Deadline != nil {
		graceDays := post.ChatGraceDays
		if graceDays <= 0 {
			graceDays = domain.DefaultChatGraceDays
		}
		t := post.Deadline.Add(time.Duration(graceDays) * 24 * time.Hour)
		expiresAt = &t
	}

	room := &domain.Chatroom{
		Id:      uuid.NewString(),
		PostId:  postId,
		Name:    post.Title,
		Members: members,
		Messages: []domain.ChatMessage{{
			Id:       uuid.NewString(),
			Content:  fmt.Sprintf("Welcome to the team for %q!", post.Title),
			Type:     domain.MessageSystem,
			SentAt:   now,
			ReadBy:   []string{},
		}},
		Status:       domain.ChatroomActive,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    expiresAt,
	}
	if err := s.storage.CreateChatroom(room); err != nil {
		return nil, err
	}

	post.ChatroomId = room.Id
	post.UpdatedAt = now
	if err := s.posts.UpdatePost(post); err != nil {
		return nil, err
	}

	for _, m := range room.Members {
		emit(s.notifier, domain.NotificationCreationData{
			UserId:            m.UserId,
			Type:              domain.NotifChatroomCreated,
			Title:             "Team chat created",
			Message:           fmt.Sprintf("A chatroom for %q is ready", post.Title),
			Link:              "/chatrooms/" + room.Id,
			RelatedPostId:     postId,
			RelatedChatroomId: room.Id,
		})
	}
	return room, nil
}

// AddMember is idempotent: adding an existing member no-ops.
func (s *Chatroom) AddMember(chatroomId, userId string) (*domain.Chatroom, error) {
	room, err := s.storage.GetChatroom(chatroomId)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.ChatroomDeleted {
		return nil, apperrors.InvalidState("Chatroom has been deleted")
	}
	if room.IsMember(userId) {
		return room, nil
	}
	user, err := s.users.GetUser(userId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	room.Members = append(room.Members, domain.Member{
		UserId:   user.Id,
		Name:     user.Name,
		Role:     domain.MemberRegular,
		JoinedAt: now,
	})
	room.Messages = append(room.Messages, domain.ChatMessage{
		Id:      uuid.NewString(),
		Content: fmt.Sprintf("%s joined the team", user.Name),
		Type:    domain.MessageSystem,
		SentAt:  now,
		ReadBy:  []string{},
	})
	room.LastActivity = now
	if err := s.storage.UpdateChatroom(room); err != nil {
		return nil, err
	}

	emit(s.notifier, domain.NotificationCreationData{
		UserId:            userId,
		Type:              domain.NotifChatroomCreated,
		Title:             "Added to team chat",
		Message:           fmt.Sprintf("You joined the chatroom %q", room.Name),
		Link:              "/chatrooms/" + room.Id,
		RelatedPostId:     room.PostId,
		RelatedChatroomId: room.Id,
	})
	return room, nil
}

func (s *Chatroom) SendMessage(data domain.MessageCreationData) (*domain.ChatMessage, error) {
	room, err := s.storage.GetChatroom(data.ChatroomId)
	if err != nil {
		return nil, err
	}
	switch room.Status {
	case domain.ChatroomDeleted:
		return nil, apperrors.InvalidState("Chatroom has been deleted")
	case domain.ChatroomReadOnly:
		return nil, apperrors.InvalidState("Chatroom is read-only")
	}
	if !room.IsMember(data.SenderId) {
		return nil, apperrors.Forbidden("Only members can send messages")
	}

	senderName := ""
	for _, m := range room.Members {
		if m.UserId == data.SenderId {
			senderName = m.Name
			break
		}
	}

	msgType := data.Type
	if msgType == "" {
		msgType = domain.MessageText
	}

	now := time.Now().UTC()
	message := domain.ChatMessage{
		Id:         uuid.NewString(),
		SenderId:   data.SenderId,
		SenderName: senderName,
		Content:    data.Content,
		Type:       msgType,
		FileUrl:    data.FileUrl,
		FileName:   data.FileName,
		SentAt:     now,
		ReadBy:     []string{data.SenderId}, // read by its own sender only
	}
	room.Messages = append(room.Messages, message)
	room.LastActivity = now
	if err := s.storage.UpdateChatroom(room); err != nil {
		return nil, err
	}

	for _, m := range room.Members {
		if m.UserId == data.SenderId {
			continue
		}
		emit(s.notifier, domain.NotificationCreationData{
			UserId:            m.UserId,
			Type:              domain.NotifChatroomMessage,
			Title:             "New message in " + room.Name,
			Message:           fmt.Sprintf("%s sent a message", senderName),
			Link:              "/chatrooms/" + room.Id,
			RelatedUserId:     data.SenderId,
			RelatedChatroomId: room.Id,
		})
	}
	return &message, nil
}

// MarkRead stamps every message in the room as read by userId.
func (s *Chatroom) MarkRead(chatroomId, userId string) error {
	room, err := s.storage.GetChatroom(chatroomId)
	if err != nil {
		return err
	}
	if room.Status == domain.ChatroomDeleted {
		return apperrors.InvalidState("Chatroom has been deleted")
	}
	if !room.IsMember(userId) {
		return apperrors.Forbidden("Only members can read messages")
	}

	changed := false
	for i := range room.Messages {
		if !slices.Contains(room.Messages[i].ReadBy, userId) {
			room.Messages[i].ReadBy = append(room.Messages[i].ReadBy, userId)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.storage.UpdateChatroom(room)
}

func (s *Chatroom) Get(chatroomId, userId string) (*domain.Chatroom, error) {
	room, err := s.storage.GetChatroom(chatroomId)
	if err != nil {
		return nil, err
	}
	if !room.IsMember(userId) {
		return nil, apperrors.Forbidden("Only members can view the chatroom")
	}
	return room, nil
}

func (s *Chatroom) ListForUser(userId string) ([]domain.Chatroom, error) {
	rooms, err := s.storage.GetChatroomsByMember(userId)
	if err != nil {
		return nil, err
	}
	visible := rooms[:0]
	for _, r := range rooms {
		if r.Status != domain.ChatroomDeleted {
			visible = append(visible, r)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].LastActivity.After(visible[j].LastActivity)
	})
	return visible, nil
}

// MarkReadOnly freezes the room and stamps ReadOnlyAt, which the
// cleanup sweep later compares against the delete delay. Idempotent.
func (s *Chatroom) MarkReadOnly(chatroomId string) error {
	room, err := s.storage.GetChatroom(chatroomId)
	if err != nil {
		return err
	}
	if room.Status == domain.ChatroomDeleted {
		return apperrors.InvalidState("Chatroom has been deleted")
	}
	if room.Status == domain.ChatroomReadOnly {
		return nil
	}

	now := time.Now().UTC()
	room.Status = domain.ChatroomReadOnly
	room.ReadOnlyAt = &now
	if err := s.storage.UpdateChatroom(room); err != nil {
		return err
	}

	for _, m := range room.Members {
		emit(s.notifier, domain.NotificationCreationData{
			UserId:            m.UserId,
			Type:              domain.NotifChatroomExpiring,
			Title:             "Chatroom expiring",
			Message:           fmt.Sprintf("The chatroom %q is now read-only and will be deleted soon", room.Name),
			Link:              "/chatrooms/" + room.Id,
			RelatedChatroomId: room.Id,
		})
	}
	return nil
}

// Delete is terminal. With archive=true the full record is copied to
// the archive store before the room disappears from normal lookups.
func (s *Chatroom) Delete(chatroomId string, archive bool) error {
	room, err := s.storage.GetChatroom(chatroomId)
	if err != nil {
		return err
	}
	if room.Status == domain.ChatroomDeleted {
		return nil
	}
	if archive {
		if err := s.storage.ArchiveChatroom(room); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	room.Status = domain.ChatroomDeleted
	room.DeletedAt = &now
	return s.storage.UpdateChatroom(room)
}

// CleanupExpired is the idempotent expiry sweep: active rooms past
// ExpiresAt become read-only, read-only rooms past the delete delay
// are archived and deleted. Re-running it cannot regress a room.
func (s *Chatroom) CleanupExpired(now time.Time) ChatroomCleanupStats {
	stats := ChatroomCleanupStats{Errors: []string{}}

	active, err := s.storage.GetChatroomsByStatus(domain.ChatroomActive)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("listing active chatrooms: %v", err))
		return stats
	}
	stats.RoomsScanned += len(active)
	for _, room := range active {
		if !room.Expired(now) {
			continue
		}
		if err := s.MarkReadOnly(room.Id); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("chatroom %s: mark read-only: %v", room.Id, err))
			continue
		}
		stats.MadeReadOnly++
	}

	readOnly, err := s.storage.GetChatroomsByStatus(domain.ChatroomReadOnly)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("listing read-only chatrooms: %v", err))
		return stats
	}
	stats.RoomsScanned += len(readOnly)
	for _, room := range readOnly {
		if room.ReadOnlyAt == nil || now.Before(room.ReadOnlyAt.Add(s.deleteDelay)) {
			continue
		}
		if err := s.Delete(room.Id, true); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("chatroom %s: delete: %v", room.Id, err))
			continue
		}
		stats.Deleted++
	}
	return stats
}
