package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/campuslink-dev/campuslink/internal/config"
	"github.com/campuslink-dev/campuslink/internal/markdown"
	"github.com/campuslink-dev/campuslink/internal/service"
)

type Handler struct {
	auth          service.AuthService
	posts         *service.Post
	applications  *service.Application
	invitations   *service.Invitation
	chatrooms     *service.Chatroom
	notifications *service.Notification
	lifecycle     *service.PostLifecycle
	markdown      *markdown.TextProcessor
	cfg           *config.Config
}

func New(
	auth service.AuthService,
	posts *service.Post,
	applications *service.Application,
	invitations *service.Invitation,
	chatrooms *service.Chatroom,
	notifications *service.Notification,
	lifecycle *service.PostLifecycle,
	markdown *markdown.TextProcessor,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, posts, applications, invitations, chatrooms, notifications, lifecycle, markdown, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Print(err.Error())
	}
}
