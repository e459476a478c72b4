package endpoints

import (
	"net/http"
	"strconv"

	"github.com/EasterCompany/dex-lipi-service/utils"
)

// HistoryHandler returns recent requests, newest first. ?limit caps the count.
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "request history needs the cache")
		return
	}
	limit := int64(50)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	events, err := s.history.RecentRequests(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []utils.RequestEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requests": events,
		"count":    len(events),
	})
}
