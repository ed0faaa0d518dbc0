package api

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
)

// Response DTOs

type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
