package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuslink-dev/campuslink/internal/api"
	"github.com/campuslink-dev/campuslink/internal/domain"
	mw "github.com/campuslink-dev/campuslink/internal/middleware"
	"github.com/campuslink-dev/campuslink/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	chatGraceDays := body.ChatGraceDays
	if chatGraceDays == 0 {
		chatGraceDays = h.cfg.Public.ChatGraceDays
	}

	post, err := h.posts.Create(domain.PostCreationData{
		Title:             body.Title,
		Description:       body.Description,
		Purpose:           domain.PostPurpose(body.Purpose),
		SkillRequirements: body.SkillRequirements,
		AuthorId:          user.Id,
		Deadline:          body.Deadline,
		MaxMembers:        body.MaxMembers,
		ChatGraceDays:     chatGraceDays,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.PostResponse{Post: *post})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["post"]

	post, err := h.posts.Get(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.PostResponse{Post: *post}
	if post.Description != "" {
		response.DescriptionHtml = h.markdown.Render(post.Description)
	}
	writeJSON(w, response)
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostListResponse{Posts: posts})
}
