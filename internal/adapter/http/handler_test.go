package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-rewards/internal/adapter/memory"
	"ad-rewards/internal/adapter/usecase"
	"ad-rewards/internal/core/condition"
	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
)

type nopPublisher struct{}

func (nopPublisher) PublishJoined(context.Context, domain.JoinedEvent) {}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(time.Second)
	for i := int64(1); i <= 3; i++ {
		store.PutUser(domain.User{ID: i, Name: "user"})
	}
	svc := usecase.NewCampaignService(store.Campaigns(), store.Ledger(), store, condition.Default())
	uc := usecase.NewCampaignUseCase(svc, store.Users(), nopPublisher{}, logger)

	srv := httptest.NewServer(NewHandler(uc, logger, opts).Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, user, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if user != "" {
		req.Header.Set(UserIDHeader, user)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createCampaign(t *testing.T, srv *httptest.Server, body string) campaignResponse {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/campaigns", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[campaignResponse](t, resp)
}

// campaignBody builds a create request. extra carries the condition
// fields; FIRST_JOIN is used when it is empty.
func campaignBody(name string, reward, slots int, extra string) string {
	if extra == "" {
		extra = `,"conditionKind":"FIRST_JOIN"`
	}
	start := time.Now().UTC().AddDate(0, 0, -1).Format(dateLayout)
	end := time.Now().UTC().AddDate(0, 0, 7).Format(dateLayout)
	return `{"name":"` + name + `","rewardAmount":` + strconv.Itoa(reward) +
		`,"joinCount":` + strconv.Itoa(slots) +
		`,"startedAt":"` + start + `","endedAt":"` + end + `"` + extra + `}`
}

func TestCreateCampaign(t *testing.T) {
	srv := newTestServer(t, Options{})

	got := createCampaign(t, srv, `{"name":"spring","rewardAmount":500,"joinCount":10,
		"startedAt":"2024-03-01","endedAt":"2024-03-31","conditionKind":"count_over",
		"conditionConfig":{"minimumJoinCount":2}}`)

	assert.NotZero(t, got.ID)
	assert.Equal(t, 10, got.RemainingSlots)
	assert.Equal(t, "COUNT_OVER", got.ConditionKind)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.StartedAt)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), got.EndedAt)
	assert.JSONEq(t, `{"minimumJoinCount":2}`, string(got.ConditionConfig))
}

func TestCreateCampaignRejects(t *testing.T) {
	srv := newTestServer(t, Options{})
	createCampaign(t, srv, campaignBody("taken", 100, 1, ""))

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed", `{`, "invalid JSON"},
		{"bad date", `{"name":"x","rewardAmount":1,"joinCount":1,"startedAt":"03/01/2024"}`, "invalid startedAt"},
		{"no name", campaignBody("", 100, 1, ""), "name required"},
		{"reward too high", campaignBody("x", 2_000_000, 1, ""), "invalid reward"},
		{"slots", campaignBody("x", 100, 101, ""), "invalid slot count"},
		{"window", `{"name":"x","rewardAmount":1,"joinCount":1,"startedAt":"2024-03-01"}`, "window required"},
		{"unknown kind", campaignBody("x", 100, 1, `,"conditionKind":"VIP"`), "invalid join condition"},
		{"duplicate", campaignBody("taken", 100, 1, ""), "duplicate name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/api/v1/campaigns", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.msg, strings.TrimSpace(string(body)))
		})
	}
}

func TestJoinFlow(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := createCampaign(t, srv, campaignBody("welcome", 300, 1, ""))
	joinURL := srv.URL + "/api/v1/campaigns/" + strconv.FormatInt(c.ID, 10) + "/join"

	resp := do(t, http.MethodPost, joinURL, "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, joinURL, "99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/campaigns/999/join", "1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, joinURL, "1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := decode[joinRecordResponse](t, resp)
	assert.Equal(t, c.ID, record.CampaignID)
	assert.Equal(t, int64(1), record.UserID)
	assert.Equal(t, "welcome", record.CampaignName)
	assert.Equal(t, int64(300), record.RewardAmount)

	// user 1 is no longer a first joiner
	resp = do(t, http.MethodPost, joinURL, "1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// the only slot is gone
	resp = do(t, http.MethodPost, joinURL, "2", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListJoinable(t *testing.T) {
	srv := newTestServer(t, Options{})
	low := createCampaign(t, srv, campaignBody("low", 100, 5, ""))
	high := createCampaign(t, srv, campaignBody("high", 900, 5, ""))
	createCampaign(t, srv, campaignBody("regulars", 5000, 5,
		`,"conditionKind":"COUNT_OVER","conditionConfig":{"minimumJoinCount":1}`))

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/campaigns", "2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[[]campaignResponse](t, resp)
	require.Len(t, got, 2)
	assert.Equal(t, high.ID, got[0].ID)
	assert.Equal(t, low.ID, got[1].ID)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/campaigns", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinHistory(t *testing.T) {
	srv := newTestServer(t, Options{})
	first := createCampaign(t, srv, campaignBody("first", 100, 5, ""))
	second := createCampaign(t, srv, campaignBody("second", 100, 5,
		`,"conditionKind":"SPECIFIC_CAMPAIGN","conditionConfig":{"requiredCampaignId":`+strconv.FormatInt(first.ID, 10)+`}`))

	for _, id := range []int64{first.ID, second.ID} {
		resp := do(t, http.MethodPost, srv.URL+"/api/v1/campaigns/"+strconv.FormatInt(id, 10)+"/join", "3", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := do(t, http.MethodGet, srv.URL+"/api/v1/campaigns/histories", "3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[historyResponse](t, resp)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.DefaultHistoryPageSize, page.Size)
	require.Len(t, page.Items, 2)
	assert.Equal(t, first.ID, page.Items[0].CampaignID)
	assert.Equal(t, second.ID, page.Items[1].CampaignID)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/campaigns/histories?page=2&size=1", "3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode[historyResponse](t, resp)
	require.Len(t, page.Items, 1)
	assert.Equal(t, second.ID, page.Items[0].CampaignID)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/campaigns/histories?page=9", "3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[historyResponse](t, resp).Items)

	for _, p := range []string{"-9223372036854775808", "9223372036854775807", "461168601842738791"} {
		resp = do(t, http.MethodGet, srv.URL+"/api/v1/campaigns/histories?page="+p, "3", "")
		require.Equal(t, http.StatusOK, resp.StatusCode, "page=%s", p)
		page = decode[historyResponse](t, resp)
		if p[0] == '-' {
			assert.Equal(t, 1, page.Page)
			assert.Len(t, page.Items, 2)
		} else {
			assert.Empty(t, page.Items)
		}
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/campaigns/histories?size=abc", "3", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinRateLimit(t *testing.T) {
	srv := newTestServer(t, Options{JoinRatePerSecond: 0.001, JoinBurst: 1})
	url := srv.URL + "/api/v1/campaigns/999/join"

	resp := do(t, http.MethodPost, url, "1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, url, "1", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// other users keep their own bucket
	resp = do(t, http.MethodPost, url, "2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/metrics", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// stubUseCase fails every call with err.
type stubUseCase struct{ err error }

func (s stubUseCase) CreateCampaign(context.Context, domain.CreateCampaignCommand) (*domain.Campaign, error) {
	return nil, s.err
}

func (s stubUseCase) Join(context.Context, int64, int64) (*domain.JoinRecord, error) {
	return nil, s.err
}

func (s stubUseCase) ListJoinable(context.Context, int64) ([]domain.Campaign, error) {
	return nil, s.err
}

func (s stubUseCase) JoinHistory(context.Context, domain.HistoryQuery) (*port.HistoryPage, error) {
	return nil, s.err
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		status     int
		retryAfter string
	}{
		{domain.ErrLockTimeout, http.StatusServiceUnavailable, "1"},
		{domain.ErrCapacityExhausted, http.StatusConflict, ""},
		{domain.ErrUnsupportedCondition, http.StatusInternalServerError, ""},
		{domain.ErrInvalidConditionConfig, http.StatusInternalServerError, ""},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(stubUseCase{err: tt.err}, logger, Options{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/1/join", nil)
			req.Header.Set(UserIDHeader, "1")
			rec := httptest.NewRecorder()

			h.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))
		})
	}
}
