package handler

import (
	"net/http"

	"github.com/coursehub-dev/coursehub/shared/api"
	"github.com/coursehub-dev/coursehub/shared/utils"
	"github.com/gorilla/mux"
)

// GetThread returns the per-course aggregate, creating it lazily on first
// access. An optional courseTitle query param supplies the title for the lazy
// create; without it the code doubles as the title.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	courseCode := mux.Vars(r)["courseCode"]

	title := r.URL.Query().Get("courseTitle")

	thread, err := h.thread.GetOrCreate(courseCode, title)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.ThreadResponse{Thread: thread})
}
