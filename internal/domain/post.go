package domain

import "time"

type PostPurpose string

const (
	PurposeResearchWork PostPurpose = "research_work"
	PurposeProjects     PostPurpose = "projects"
	PurposeHackathons   PostPurpose = "hackathons"
)

type PostStatus string

const (
	PostActive   PostStatus = "active"
	PostFilled   PostStatus = "filled"
	PostClosed   PostStatus = "closed"
	PostArchived PostStatus = "archived"
)

const DefaultChatGraceDays = 7

type SkillRequirement struct {
	Skill         string `json:"skill"`
	RequiredCount int    `json:"requiredCount"`
	AcceptedCount int    `json:"acceptedCount"`
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Title             string
	Description       string
	Purpose           PostPurpose
	SkillRequirements []SkillRequirement
	AuthorId          string
	Deadline          *time.Time
	MaxMembers        *int
	ChatGraceDays     int
}

type Post struct {
	Id                string
	Title             string
	Description       string
	Purpose           PostPurpose
	SkillRequirements []SkillRequirement
	Author            UserSnapshot
	Deadline          *time.Time
	MaxMembers        *int
	CurrentMembers    int
	Status            PostStatus
	ChatroomId        string
	ChatGraceDays     int
	ExpiresAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PostSnapshot is embedded into applications and invitations at
// submission time, same staleness contract as UserSnapshot.
type PostSnapshot struct {
	Id      string      `json:"id"`
	Title   string      `json:"title"`
	Purpose PostPurpose `json:"purpose"`
}

func (p *Post) Snapshot() PostSnapshot {
	return PostSnapshot{Id: p.Id, Title: p.Title, Purpose: p.Purpose}
}

// AtCapacity reports whether the post cannot take another member.
// Posts without MaxMembers never fill up.
func (p *Post) AtCapacity() bool {
	return p.MaxMembers != nil && p.CurrentMembers >= *p.MaxMembers
}

// DeadlinePassed reports whether the application deadline elapsed.
// Posts without a deadline accept applications indefinitely.
func (p *Post) DeadlinePassed(now time.Time) bool {
	return p.Deadline != nil && now.After(*p.Deadline)
}
