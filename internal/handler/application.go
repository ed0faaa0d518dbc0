package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuslink-dev/campuslink/internal/api"
	"github.com/campuslink-dev/campuslink/internal/domain"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post"]

	var body api.CreateApplicationRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	application, err := h.applications.Create(domain.ApplicationCreationData{
		PostId:          postId,
		ApplicantId:     user.Id,
		AppliedForSkill: body.AppliedForSkill,
		Resume:          body.Resume,
		CoverLetter:     body.CoverLetter,
		Answers:         body.Answers,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.ApplicationResponse{Application: *application})
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	applicationId := mux.Vars(r)["application"]

	var body api.UpdateApplicationStatusRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	application, err := h.applications.UpdateStatus(applicationId, user.Id, domain.ApplicationStatus(body.Status))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ApplicationResponse{Application: *application})
}

func (h *Handler) WithdrawApplication(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	applicationId := mux.Vars(r)["application"]

	application, err := h.applications.Withdraw(applicationId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ApplicationResponse{Application: *application})
}

func (h *Handler) GetPostApplications(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post"]

	applications, err := h.applications.ListForPost(postId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ApplicationListResponse{Applications: applications})
}

func (h *Handler) GetPostApplicationStats(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["post"]

	stats, err := h.applications.StatsForPost(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ApplicationStatsResponse{ApplicationStats: *stats})
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	applications, err := h.applications.ListForUser(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ApplicationListResponse{Applications: applications})
}
