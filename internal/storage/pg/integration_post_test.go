package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink-dev/campuslink/internal/domain"
)

func TestPostRoundTripPg(t *testing.T) {
	author := mustCreateUser(t)
	deadline := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Microsecond)
	maxMembers := 4
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &domain.Post{
		Id:      "post-roundtrip",
		Title:   "Distributed tracing study group",
		Purpose: domain.PurposeResearchWork,
		SkillRequirements: []domain.SkillRequirement{
			{Skill: "go", RequiredCount: 2},
			{Skill: "grafana", RequiredCount: 1},
		},
		Author:        author.Snapshot(),
		Deadline:      &deadline,
		MaxMembers:    &maxMembers,
		Status:        domain.PostActive,
		ChatGraceDays: 7,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, storage.CreatePost(p))
	t.Cleanup(func() {
		_, err := storage.db.Exec("DELETE FROM posts WHERE id = $1", p.Id)
		require.NoError(t, err)
	})

	got, err := storage.GetPost(p.Id)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.SkillRequirements, got.SkillRequirements)
	assert.Equal(t, p.Author, got.Author)
	require.NotNil(t, got.Deadline)
	assert.True(t, got.Deadline.Equal(deadline))
	require.NotNil(t, got.MaxMembers)
	assert.Equal(t, maxMembers, *got.MaxMembers)
	assert.Nil(t, got.ExpiresAt)
}

func TestGetPostsByStatusPg(t *testing.T) {
	author := mustCreateUser(t)
	active := mustCreatePost(t, author)

	closed := mustCreatePost(t, author)
	closed.Status = domain.PostClosed
	require.NoError(t, storage.UpdatePost(closed))

	activePosts, err := storage.GetPostsByStatus(domain.PostActive)
	require.NoError(t, err)
	assert.True(t, containsPost(activePosts, active.Id))
	assert.False(t, containsPost(activePosts, closed.Id))

	closedPosts, err := storage.GetPostsByStatus(domain.PostClosed)
	require.NoError(t, err)
	assert.True(t, containsPost(closedPosts, closed.Id))
}

func TestUpdatePostPg(t *testing.T) {
	author := mustCreateUser(t)
	p := mustCreatePost(t, author)

	t.Run("update existing post", func(t *testing.T) {
		p.Status = domain.PostFilled
		p.CurrentMembers = 3
		p.ChatroomId = "room-1"
		require.NoError(t, storage.UpdatePost(p))

		got, err := storage.GetPost(p.Id)
		require.NoError(t, err)
		assert.Equal(t, domain.PostFilled, got.Status)
		assert.Equal(t, 3, got.CurrentMembers)
		assert.Equal(t, "room-1", got.ChatroomId)
	})

	t.Run("update nonexistent post should 404", func(t *testing.T) {
		missing := *p
		missing.Id = "nonexistent"
		requireNotFoundError(t, storage.UpdatePost(&missing))
	})

	t.Run("get nonexistent post should 404", func(t *testing.T) {
		_, err := storage.GetPost("nonexistent")
		requireNotFoundError(t, err)
	})
}

func containsPost(posts []domain.Post, id string) bool {
	for _, p := range posts {
		if p.Id == id {
			return true
		}
	}
	return false
}
