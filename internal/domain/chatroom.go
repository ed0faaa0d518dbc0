package domain

import (
	"slices"
	"time"
)

type ChatroomStatus string

const (
	ChatroomActive   ChatroomStatus = "active"
	ChatroomReadOnly ChatroomStatus = "read_only"
	ChatroomDeleted  ChatroomStatus = "deleted"
)

type MemberRole string

const (
	MemberOwner   MemberRole = "owner"
	MemberRegular MemberRole = "member"
)

type Member struct {
	UserId   string     `json:"userId"`
	Name     string     `json:"name"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

type ChatMessage struct {
	Id         string      `json:"id"`
	SenderId   string      `json:"senderId"`
	SenderName string      `json:"senderName"`
	Content    string      `json:"content"`
	Type       MessageType `json:"type"`
	FileUrl    string      `json:"fileUrl,omitempty"`
	FileName   string      `json:"fileName,omitempty"`
	SentAt     time.Time   `json:"sentAt"`
	ReadBy     []string    `json:"readBy"`
}

type MessageCreationData struct {
	ChatroomId string
	SenderId   string
	Content    string
	Type       MessageType
	FileUrl    string
	FileName   string
}

type Chatroom struct {
	Id           string
	PostId       string
	Name         string
	Members      []Member
	Messages     []ChatMessage
	Status       ChatroomStatus
	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    *time.Time
	ReadOnlyAt   *time.Time
	DeletedAt    *time.Time
}

func (c *Chatroom) IsMember(userId string) bool {
	return slices.ContainsFunc(c.Members, func(m Member) bool {
		return m.UserId == userId
	})
}

// Expired reports whether the room passed its expiry moment.
// Rooms without ExpiresAt never expire.
func (c *Chatroom) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
