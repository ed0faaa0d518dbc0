package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink-dev/campuslink/internal/config"
	"github.com/campuslink-dev/campuslink/internal/domain"
	"github.com/campuslink-dev/campuslink/internal/markdown"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	"github.com/campuslink-dev/campuslink/internal/service"
	"github.com/campuslink-dev/campuslink/internal/storage/kv"
)

func createRequest(t *testing.T, method, url string, body []byte, user *domain.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	if user != nil {
		req = req.WithContext(mw.ContextWithUser(req.Context(), user))
	}
	return req
}

type staticTokens struct{}

func (s *staticTokens) NewToken(user domain.User) (string, error) {
	return "token-" + user.Id, nil
}

// newTestHandler wires real services over an in-memory store, the same
// composition main() builds for the kv backend.
func newTestHandler(t *testing.T) (*Handler, *kv.Storage) {
	t.Helper()
	store := kv.NewMemory()
	notifications := service.NewNotification(store)
	chatrooms := service.NewChatroom(store, store, store, notifications, 24*time.Hour)
	h := New(
		service.NewAuth(store, &staticTokens{}),
		service.NewPost(store, store),
		service.NewApplication(store, store, store, chatrooms, notifications),
		service.NewInvitation(store, store, store, notifications),
		chatrooms,
		notifications,
		service.NewPostLifecycle(store, chatrooms, notifications, 30),
		markdown.New(),
		&config.Config{Public: config.Public{JwtTTL: time.Hour}},
	)
	return h, store
}

func registerUser(t *testing.T, h *Handler, name string) *domain.User {
	t.Helper()
	user, err := h.auth.Register(service.RegisterData{
		Name:     name,
		Email:    name + "@campus.test",
		Password: "secret",
		Role:     domain.RoleStudent,
	})
	require.NoError(t, err)
	return user
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"message":"hello"}`+"\n", rr.Body.String())
}

func TestWriteJSONStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSONStatus(rr, http.StatusCreated, map[string]string{"message": "created"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"message":"created"}`+"\n", rr.Body.String())
}
