package kv

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink-dev/campuslink/internal/domain"
	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func TestEmptyStoreDefaults(t *testing.T) {
	s := NewMemory()

	posts, err := s.GetPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = s.GetPost("missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = s.GetUser("missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestPostRoundTrip(t *testing.T) {
	s := NewMemory()

	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	post := &domain.Post{
		Id:       "p1",
		Title:    "Research assistant",
		Purpose:  domain.PurposeResearchWork,
		Status:   domain.PostActive,
		Deadline: &deadline,
	}
	require.NoError(t, s.CreatePost(post))

	got, err := s.GetPost("p1")
	require.NoError(t, err)
	assert.Equal(t, "Research assistant", got.Title)
	require.NotNil(t, got.Deadline)
	assert.True(t, got.Deadline.Equal(deadline))

	got.Status = domain.PostClosed
	require.NoError(t, s.UpdatePost(got))

	closed, err := s.GetPostsByStatus(domain.PostClosed)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "p1", closed[0].Id)

	err = s.UpdatePost(&domain.Post{Id: "missing"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestFilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(&domain.User{Id: "u1", Name: "Alice", Email: "alice@uni.edu"}))
	require.NoError(t, s.CreatePost(&domain.Post{Id: "p1", Title: "Hackathon team", Status: domain.PostActive}))

	// Reopen and verify both collections survived the flush.
	reopened, err := New(path)
	require.NoError(t, err)

	user, err := reopened.GetUserByEmail("alice@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.Id)

	post, err := reopened.GetPost("p1")
	require.NoError(t, err)
	assert.Equal(t, "Hackathon team", post.Title)
}

func TestChatroomArchive(t *testing.T) {
	s := NewMemory()

	room := &domain.Chatroom{Id: "c1", PostId: "p1", Status: domain.ChatroomReadOnly}
	require.NoError(t, s.CreateChatroom(room))

	require.NoError(t, s.ArchiveChatroom(room))
	require.NoError(t, s.ArchiveChatroom(room)) // idempotent

	archived, err := s.GetArchivedChatrooms()
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "c1", archived[0].Id)

	// Deleted rooms disappear from the per-post lookup.
	room.Status = domain.ChatroomDeleted
	require.NoError(t, s.UpdateChatroom(room))
	_, err = s.GetChatroomByPost("p1")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestMemberLookup(t *testing.T) {
	s := NewMemory()

	require.NoError(t, s.CreateChatroom(&domain.Chatroom{
		Id:      "c1",
		PostId:  "p1",
		Status:  domain.ChatroomActive,
		Members: []domain.Member{{UserId: "u1", Role: domain.MemberOwner}},
	}))
	require.NoError(t, s.CreateChatroom(&domain.Chatroom{
		Id:      "c2",
		PostId:  "p2",
		Status:  domain.ChatroomActive,
		Members: []domain.Member{{UserId: "u2", Role: domain.MemberOwner}},
	}))

	rooms, err := s.GetChatroomsByMember("u1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "c1", rooms[0].Id)
}
