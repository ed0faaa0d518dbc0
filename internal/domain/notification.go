package domain

import "time"

type NotificationType string

const (
	NotifInvitationReceived  NotificationType = "invitation_received"
	NotifInvitationResponded NotificationType = "invitation_responded"
	NotifApplicationReceived NotificationType = "application_received"
	NotifApplicationUpdated  NotificationType = "application_updated"
	NotifPostStatusChanged   NotificationType = "post_status_changed"
	NotifChatroomCreated     NotificationType = "chatroom_created"
	NotifChatroomMessage     NotificationType = "chatroom_message"
	NotifChatroomExpiring    NotificationType = "chatroom_expiring"
)

type NotificationCreationData struct {
	UserId            string
	Type              NotificationType
	Title             string
	Message           string
	Link              string
	RelatedUserId     string
	RelatedPostId     string
	RelatedChatroomId string
}

type Notification struct {
	Id                string
	UserId            string
	Type              NotificationType
	Title             string
	Message           string
	Link              string
	RelatedUserId     string
	RelatedPostId     string
	RelatedChatroomId string
	Read              bool
	CreatedAt         time.Time
}
