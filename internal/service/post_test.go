package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func TestPostCreate(t *testing.T) {
	author := &domain.User{Id: "owner", Name: "Owner", Role: domain.RoleFaculty, Department: "CS"}

	t.Run("successful creation", func(t *testing.T) {
		var created *domain.Post
		storage := &MockPostStorage{
			createPostFunc: func(p *domain.Post) error { created = p; return nil },
		}
		s := NewPost(storage, knownUsers(author))

		maxMembers := 3
		post, err := s.Create(domain.PostCreationData{
			Title:      "Lab assistants wanted",
			Purpose:    domain.PurposeResearchWork,
			AuthorId:   "owner",
			MaxMembers: &maxMembers,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.PostActive, post.Status)
		assert.Equal(t, author.Snapshot(), post.Author)
		assert.Equal(t, domain.DefaultChatGraceDays, post.ChatGraceDays)
		assert.Equal(t, 0, post.CurrentMembers)
	})

	t.Run("unknown author should 404", func(t *testing.T) {
		s := NewPost(&MockPostStorage{}, &MockUserStorage{})
		_, err := s.Create(domain.PostCreationData{Title: "x", Purpose: domain.PurposeProjects, AuthorId: "ghost"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("empty title rejected", func(t *testing.T) {
		s := NewPost(&MockPostStorage{}, knownUsers(author))
		_, err := s.Create(domain.PostCreationData{Purpose: domain.PurposeProjects, AuthorId: "owner"})
		require.Error(t, err)
	})

	t.Run("unknown purpose rejected", func(t *testing.T) {
		s := NewPost(&MockPostStorage{}, knownUsers(author))
		_, err := s.Create(domain.PostCreationData{Title: "x", Purpose: "gardening", AuthorId: "owner"})
		require.Error(t, err)
	})

	t.Run("non-positive maxMembers rejected", func(t *testing.T) {
		s := NewPost(&MockPostStorage{}, knownUsers(author))
		zero := 0
		_, err := s.Create(domain.PostCreationData{Title: "x", Purpose: domain.PurposeProjects, AuthorId: "owner", MaxMembers: &zero})
		require.Error(t, err)
	})
}

func TestPostList(t *testing.T) {
	now := time.Now().UTC()
	storage := &MockPostStorage{
		getPostsFunc: func() ([]domain.Post, error) {
			return []domain.Post{
				{Id: "older", Status: domain.PostActive, CreatedAt: now.Add(-time.Hour)},
				{Id: "hidden", Status: domain.PostArchived, CreatedAt: now},
				{Id: "newer", Status: domain.PostClosed, CreatedAt: now},
			}, nil
		},
	}
	s := NewPost(storage, &MockUserStorage{})

	posts, err := s.List()
	require.NoError(t, err)
	require.Len(t, posts, 2, "archived posts are hidden")
	assert.Equal(t, "newer", posts[0].Id, "newest first")
}
