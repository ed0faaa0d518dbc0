package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/campuslink-dev/campuslink/internal/errors"
)

func TestCreateUser(t *testing.T) {
	u := mustCreateUser(t)

	t.Run("duplicate email should conflict", func(t *testing.T) {
		dup := *u
		dup.Id = u.Id + "-copy"
		err := storage.CreateUser(&dup)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestGetUser(t *testing.T) {
	u := mustCreateUser(t)

	t.Run("get existing user", func(t *testing.T) {
		got, err := storage.GetUser(u.Id)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Skills, got.Skills)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := storage.GetUserByEmail(u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.Id, got.Id)
	})

	t.Run("nonexistent user should 404", func(t *testing.T) {
		_, err := storage.GetUser("nonexistent")
		requireNotFoundError(t, err)

		_, err = storage.GetUserByEmail("nobody@campus.test")
		requireNotFoundError(t, err)
	})
}
