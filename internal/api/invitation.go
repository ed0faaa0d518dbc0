package api

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
)

// Request DTOs

type CreateInvitationRequest struct {
	InviteeId string `json:"invitee_id" validate:"required"`
	Message   string `json:"message,omitempty"`
}

type RespondInvitationRequest struct {
	Action string `json:"action" validate:"required"` // "accepted" or "declined"
}

// Response DTOs

type InvitationResponse struct {
	domain.Invitation
}

type InvitationListResponse struct {
	Invitations []domain.Invitation `json:"invitations"`
}
