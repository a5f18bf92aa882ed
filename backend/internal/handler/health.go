package handler

import (
	"net/http"

	"github.com/coursehub-dev/coursehub/shared/utils"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"})
}
