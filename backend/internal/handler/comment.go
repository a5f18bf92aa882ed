package handler

import (
	"net/http"

	"github.com/coursehub-dev/coursehub/shared/api"
	"github.com/coursehub-dev/coursehub/shared/domain"
	mw "github.com/coursehub-dev/coursehub/shared/middleware"
	"github.com/coursehub-dev/coursehub/shared/utils"
	"github.com/gorilla/mux"
)

// ListComments returns one page of a thread's comments. With parentId set it
// pages that comment's replies instead of the root posts.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	courseCode := mux.Vars(r)["courseCode"]
	page, limit := utils.ParsePaging(r, h.cfg.Public.CommentsPerPage, h.cfg.Public.MaxCommentsPage)

	var parentId *domain.CommentId
	if raw := r.URL.Query().Get("parentId"); raw != "" {
		id, err := parseIntParam(raw, "parentId")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		parentId = &id
	}

	comments, err := h.comment.List(courseCode, parentId, page, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, comments)
}

// CreatePost creates a root post in a course thread.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	courseCode := mux.Vars(r)["courseCode"]
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.CreatePost(courseCode, *user, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, comment)
}

// CreateReply creates a reply under an existing comment.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseCode := vars["courseCode"]
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	commentId, err := parseIntParam(vars["commentId"], "comment ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.CreateReply(courseCode, commentId, *user, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, comment)
}

// ToggleLike flips the caller's like on a comment and returns the fresh count.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseCode := vars["courseCode"]
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	commentId, err := parseIntParam(vars["commentId"], "comment ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.comment.ToggleLike(courseCode, commentId, *user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, result)
}
