package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ad-rewards/internal/core/domain"
)

type joinRecordResponse struct {
	ID           int64     `json:"id"`
	CampaignID   int64     `json:"campaignId"`
	UserID       int64     `json:"userId"`
	CampaignName string    `json:"campaignName"`
	RewardAmount int64     `json:"rewardAmount"`
	JoinedAt     time.Time `json:"joinedAt"`
}

func newJoinRecordResponse(r *domain.JoinRecord) joinRecordResponse {
	return joinRecordResponse{
		ID:           r.ID,
		CampaignID:   r.CampaignID,
		UserID:       r.UserID,
		CampaignName: r.CampaignName,
		RewardAmount: r.RewardAmount,
		JoinedAt:     r.JoinedAt,
	}
}

// handleJoin joins the {campaignID} campaign as the caller.
func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "missing or invalid "+UserIDHeader, http.StatusBadRequest)
		return
	}
	campaignID, err := strconv.ParseInt(chi.URLParam(r, "campaignID"), 10, 64)
	if err != nil || campaignID <= 0 {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	record, err := h.svc.Join(r.Context(), campaignID, uid)
	if err != nil {
		h.writeError(w, "join", err)
		return
	}
	h.writeJSON(w, http.StatusOK, newJoinRecordResponse(record))
}
