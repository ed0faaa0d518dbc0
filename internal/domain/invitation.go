package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"
)

type Invitation struct {
	Id          string
	PostId      string
	InviterId   string
	InviteeId   string
	Post        PostSnapshot
	Inviter     UserSnapshot
	Invitee     UserSnapshot
	Message     string
	Status      InvitationStatus
	CreatedAt   time.Time
	SeenAt      *time.Time
	RespondedAt *time.Time
}

// Pending reports whether the invitation still awaits a response.
// Every other status is terminal.
func (i *Invitation) Pending() bool {
	return i.Status == InvitationPending
}
