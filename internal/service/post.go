package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

type PostStorage interface {
	CreatePost(p *domain.Post) error
	GetPost(id string) (*domain.Post, error)
	GetPosts() ([]domain.Post, error)
	GetPostsByStatus(status domain.PostStatus) ([]domain.Post, error)
	UpdatePost(p *domain.Post) error
}

type Post struct {
	storage PostStorage
	users   UserStorage
}

func NewPost(storage PostStorage, users UserStorage) *Post {
	return &Post{storage, users}
}

func (s *Post) Create(data domain.PostCreationData) (*domain.Post, error) {
	author, err := s.users.GetUser(data.AuthorId)
	if err != nil {
		return nil, err
	}
	if data.Title == "" {
		return nil, &apperrors.Error{Message: "Title is required", StatusCode: 400}
	}
	switch data.Purpose {
	case domain.PurposeResearchWork, domain.PurposeProjects, domain.PurposeHackathons:
	default:
		return nil, &apperrors.Error{Message: "Unknown purpose", StatusCode: 400}
	}
	if data.MaxMembers != nil && *data.MaxMembers < 1 {
		return nil, &apperrors.Error{Message: "maxMembers must be positive", StatusCode: 400}
	}

	graceDays := data.ChatGraceDays
	if graceDays <= 0 {
		graceDays = domain.DefaultChatGraceDays
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Id:                uuid.NewString(),
		Title:             data.Title,
		Description:       data.Description,
		Purpose:           data.Purpose,
		SkillRequirements: data.SkillRequirements,
		Author:            author.Snapshot(),
		Deadline:          data.Deadline,
		MaxMembers:        data.MaxMembers,
		Status:            domain.PostActive,
		ChatGraceDays:     graceDays,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.storage.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Post) Get(id string) (*domain.Post, error) {
	return s.storage.GetPost(id)
}

// List returns non-archived posts, newest first.
func (s *Post) List() ([]domain.Post, error) {
	posts, err := s.storage.GetPosts()
	if err != nil {
		return nil, err
	}
	visible := posts[:0]
	for _, p := range posts {
		if p.Status != domain.PostArchived {
			visible = append(visible, p)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}
