package api

import (
	"time"

	"github.com/campuslink-dev/campuslink/internal/domain"
)

// Request DTOs

type CreatePostRequest struct {
	Title             string                    `json:"title" validate:"required"`
	Description       string                    `json:"description,omitempty"`
	Purpose           string                    `json:"purpose" validate:"required"`
	SkillRequirements []domain.SkillRequirement `json:"skill_requirements,omitempty"`
	Deadline          *time.Time                `json:"deadline,omitempty"`
	MaxMembers        *int                      `json:"max_members,omitempty"`
	ChatGraceDays     int                       `json:"chat_grace_days,omitempty"`
}

// Response DTOs

// PostResponse wraps a full post. DescriptionHtml is rendered
// server-side from the markdown description.
type PostResponse struct {
	domain.Post
	DescriptionHtml string `json:"descriptionHtml,omitempty"`
}

// PostListResponse wraps a list of posts
type PostListResponse struct {
	Posts []domain.Post `json:"posts"`
}
