package handler

import (
	"net/http"

	"tb16pix/internal/service"
)

// Health reports the background graph state. A failed load answers 503;
// an unloaded graph is healthy because the next request loads it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.graph == nil {
		h.writeJSON(w, r, map[string]string{"status": "ok"}, http.StatusOK)
		return
	}
	st := h.graph.Status()
	status := http.StatusOK
	if st.State == service.StateFailed.String() {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, r, st, status)
}
