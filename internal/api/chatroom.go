package api

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
)

// Request DTOs

type SendMessageRequest struct {
	Content  string `json:"content,omitempty"`
	Type     string `json:"type,omitempty"` // defaults to "text"
	FileUrl  string `json:"file_url,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// Response DTOs

type ChatroomResponse struct {
	domain.Chatroom
}

type ChatroomListResponse struct {
	Chatrooms []domain.Chatroom `json:"chatrooms"`
}

type MessageResponse struct {
	domain.ChatMessage
}
