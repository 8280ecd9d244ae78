package httpadapter

import (
	"net/http"
	"strconv"

	"ad-rewards/internal/core/domain"
)

type historyResponse struct {
	UserID int64                `json:"userId"`
	Page   int                  `json:"page"`
	Size   int                  `json:"size"`
	Items  []joinRecordResponse `json:"items"`
}

// handleJoinHistory pages through the caller's joins. page is 1-based;
// size defaults to 20 and is capped at 50.
func (h *Handler) handleJoinHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "missing or invalid "+UserIDHeader, http.StatusBadRequest)
		return
	}

	q := domain.HistoryQuery{UserID: uid, Page: 1}
	var err error
	if v := r.URL.Query().Get("page"); v != "" {
		if q.Page, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if q.Size, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
	}

	page, err := h.svc.JoinHistory(r.Context(), q)
	if err != nil {
		h.writeError(w, "join history", err)
		return
	}
	resp := historyResponse{
		UserID: page.UserID,
		Page:   page.Page,
		Size:   page.Size,
		Items:  make([]joinRecordResponse, 0, len(page.Records)),
	}
	for i := range page.Records {
		resp.Items = append(resp.Items, newJoinRecordResponse(&page.Records[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
