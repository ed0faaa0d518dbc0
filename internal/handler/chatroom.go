package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuslink-dev/campuslink/internal/api"
	"github.com/campuslink-dev/campuslink/internal/domain"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

func (h *Handler) GetMyChatrooms(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	chatrooms, err := h.chatrooms.ListForUser(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ChatroomListResponse{Chatrooms: chatrooms})
}

func (h *Handler) GetChatroom(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	chatroomId := mux.Vars(r)["chatroom"]

	chatroom, err := h.chatrooms.Get(chatroomId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ChatroomResponse{Chatroom: *chatroom})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	chatroomId := mux.Vars(r)["chatroom"]

	var body api.SendMessageRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// System messages are generated by the engine only.
	messageType := domain.MessageType(body.Type)
	switch messageType {
	case "":
		messageType = domain.MessageText
	case domain.MessageText, domain.MessageFile:
	default:
		http.Error(w, "Invalid message type", http.StatusBadRequest)
		return
	}

	message, err := h.chatrooms.SendMessage(domain.MessageCreationData{
		ChatroomId: chatroomId,
		SenderId:   user.Id,
		Content:    body.Content,
		Type:       messageType,
		FileUrl:    body.FileUrl,
		FileName:   body.FileName,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.MessageResponse{ChatMessage: *message})
}

func (h *Handler) MarkChatroomRead(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	chatroomId := mux.Vars(r)["chatroom"]

	if err := h.chatrooms.MarkRead(chatroomId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
