package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuslink-dev/campuslink/internal/api"
	"github.com/campuslink-dev/campuslink/internal/domain"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post"]

	var body api.CreateInvitationRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	invitation, err := h.invitations.Create(postId, user.Id, body.InviteeId, body.Message)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.InvitationResponse{Invitation: *invitation})
}

func (h *Handler) GetMyInvitations(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	invitations, err := h.invitations.ListForUser(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.InvitationListResponse{Invitations: invitations})
}

func (h *Handler) GetPostInvitations(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post"]

	invitations, err := h.invitations.ListForPost(postId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.InvitationListResponse{Invitations: invitations})
}

func (h *Handler) MarkInvitationSeen(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	invitationId := mux.Vars(r)["invitation"]

	invitation, err := h.invitations.MarkSeen(invitationId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.InvitationResponse{Invitation: *invitation})
}

func (h *Handler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	invitationId := mux.Vars(r)["invitation"]

	var body api.RespondInvitationRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	invitation, err := h.invitations.Respond(invitationId, user.Id, domain.InvitationStatus(body.Action))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.InvitationResponse{Invitation: *invitation})
}

func (h *Handler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	invitationId := mux.Vars(r)["invitation"]

	invitation, err := h.invitations.Cancel(invitationId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.InvitationResponse{Invitation: *invitation})
}
