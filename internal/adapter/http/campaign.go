package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"ad-rewards/internal/core/domain"
)

const dateLayout = "2006-01-02"

type createCampaignRequest struct {
	Name            string          `json:"name"`
	RewardAmount    int64           `json:"rewardAmount"`
	JoinCount       int             `json:"joinCount"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"imageUrl"`
	StartedAt       string          `json:"startedAt"`
	EndedAt         string          `json:"endedAt"`
	ConditionKind   string          `json:"conditionKind"`
	ConditionConfig json.RawMessage `json:"conditionConfig"`
}

type campaignResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	RewardAmount    int64           `json:"rewardAmount"`
	RemainingSlots  int             `json:"remainingSlots"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"imageUrl"`
	StartedAt       time.Time       `json:"startedAt"`
	EndedAt         time.Time       `json:"endedAt"`
	ConditionKind   string          `json:"conditionKind"`
	ConditionConfig json.RawMessage `json:"conditionConfig,omitempty"`
}

func newCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:              c.ID,
		Name:            c.Name,
		RewardAmount:    c.RewardAmount,
		RemainingSlots:  c.RemainingSlots,
		Description:     c.Description,
		ImageURL:        c.ImageURL,
		StartedAt:       c.StartAt,
		EndedAt:         c.EndAt,
		ConditionKind:   c.ConditionKind.String(),
		ConditionConfig: c.ConditionConfig,
	}
}

// handleCreateCampaign registers a campaign. Dates are YYYY-MM-DD, where
// the start covers the whole first day and the end the whole last day, or
// RFC3339 timestamps.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	start, ok := parseDate(req.StartedAt, false)
	if !ok {
		http.Error(w, "invalid startedAt", http.StatusBadRequest)
		return
	}
	end, ok := parseDate(req.EndedAt, true)
	if !ok {
		http.Error(w, "invalid endedAt", http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCampaign(r.Context(), domain.CreateCampaignCommand{
		Name:            req.Name,
		RewardAmount:    req.RewardAmount,
		JoinSlots:       req.JoinCount,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		StartAt:         start,
		EndAt:           end,
		ConditionKind:   domain.ParseConditionKind(req.ConditionKind),
		ConditionConfig: req.ConditionConfig,
	})
	if err != nil {
		h.writeError(w, "create campaign", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newCampaignResponse(c))
}

// handleListJoinable returns up to ten campaigns the caller can join now,
// highest reward first.
func (h *Handler) handleListJoinable(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		http.Error(w, "missing or invalid "+UserIDHeader, http.StatusBadRequest)
		return
	}
	campaigns, err := h.svc.ListJoinable(r.Context(), uid)
	if err != nil {
		h.writeError(w, "list joinable", err)
		return
	}
	resp := make([]campaignResponse, 0, len(campaigns))
	for i := range campaigns {
		resp = append(resp, newCampaignResponse(&campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// parseDate accepts an empty value as the zero time so the domain reports
// the missing window.
func parseDate(s string, endOfDay bool) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, true
}
