package kv

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func (s *Storage) CreateChatroom(c *domain.Chatroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return err
	}
	rooms = append(rooms, *c)
	return s.save(keyChatrooms, rooms)
}

func (s *Storage) GetChatroom(id string) (*domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].Id == id {
			return &rooms[i], nil
		}
	}
	return nil, apperrors.NotFound("Chatroom not found")
}

func (s *Storage) GetChatroomByPost(postId string) (*domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].PostId == postId && rooms[i].Status != domain.ChatroomDeleted {
			return &rooms[i], nil
		}
	}
	return nil, apperrors.NotFound("Chatroom not found")
}

func (s *Storage) GetChatroomsByStatus(status domain.ChatroomStatus) ([]domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return nil, err
	}
	matching := []domain.Chatroom{}
	for _, r := range rooms {
		if r.Status == status {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

func (s *Storage) GetChatroomsByMember(userId string) ([]domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return nil, err
	}
	matching := []domain.Chatroom{}
	for _, r := range rooms {
		if r.IsMember(userId) {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

func (s *Storage) UpdateChatroom(c *domain.Chatroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := loadSlice[domain.Chatroom](s, keyChatrooms)
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].Id == c.Id {
			rooms[i] = *c
			return s.save(keyChatrooms, rooms)
		}
	}
	return apperrors.NotFound("Chatroom not found")
}

// ArchiveChatroom copies the full record into the archive blob. The
// live record stays where it is; deletion happens separately.
func (s *Storage) ArchiveChatroom(c *domain.Chatroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	archived, err := loadSlice[domain.Chatroom](s, keyChatroomArchives)
	if err != nil {
		return err
	}
	for _, r := range archived {
		if r.Id == c.Id {
			return nil // already archived
		}
	}
	archived = append(archived, *c)
	return s.save(keyChatroomArchives, archived)
}

// GetArchivedChatrooms lists the archive blob, oldest first.
func (s *Storage) GetArchivedChatrooms() ([]domain.Chatroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return loadSlice[domain.Chatroom](s, keyChatroomArchives)
}
