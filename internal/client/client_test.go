package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/models"
	"speakroots/internal/services"
	contextutils "speakroots/internal/utils"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"server":{"service":"speakroots-server","version":"1.2.3","commit":"abc","buildTime":"now"},"store":"memory"}`))
	})
	mux.HandleFunc("/v1/levels", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"levels":[{"levelKey":"grade3-math","subject":"math","grade":3,"generators":["addition"]}]}`))
	})
	mux.HandleFunc("/v1/daily/indexes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("pool_size"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		assert.Equal(t, "mathA", r.URL.Query().Get("identifier"))
		_, _ = w.Write([]byte(`{"indexes":[6,7,4,5,1]}`))
	})
	mux.HandleFunc("/v1/daily/quiz/grade3-math", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-10-17", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"level_key":"grade3-math","date":"2026-10-17","pool_size":100,"indexes":[3],` +
			`"questions":[{"index":0,"prompt":"What is 1 + 1?","choices":["1","2","3","4"]}]}`))
	})
	mux.HandleFunc("/v1/daily/quiz/grade3-math/score", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Answers []models.Answer `json:"answers"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"levelKey":"grade3-math","date":"2026-10-17","correct":1,"total":1,"results":[]}`))
	})
	mux.HandleFunc("/v1/daily/quiz/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"INVALID_INPUT","severity":"warn","message":"Invalid input","details":"bad key"}`))
	})
	mux.HandleFunc("/v1/events", func(w http.ResponseWriter, r *http.Request) {
		var ev services.Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		_, _ = w.Write([]byte(`{"type":"` + string(ev.Type) + `","indexes":[1,2]}`))
	})
	mux.HandleFunc("/v1/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Endpoints(t *testing.T) {
	server := newFakeServer(t)
	c := New(server.URL + "/")
	ctx := context.Background()

	info, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)

	levels, err := c.Levels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "grade3-math", levels[0].LevelKey)

	indexes, err := c.DailyIndexes(ctx, 10, 5, "mathA")
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 4, 5, 1}, indexes)

	quiz, err := c.DailyQuiz(ctx, "grade3-math", "2026-10-17", 0)
	require.NoError(t, err)
	assert.Equal(t, 100, quiz.PoolSize)
	require.Len(t, quiz.Questions, 1)

	score, err := c.Score(ctx, "grade3-math", "", []models.Answer{{Index: 0, Answer: "2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)

	res, err := c.Dispatch(ctx, services.Event{Type: services.EventPickIndexes})
	require.NoError(t, err)
	assert.Equal(t, services.EventPickIndexes, res.Type)
}

func TestClient_Errors(t *testing.T) {
	server := newFakeServer(t)
	c := New(server.URL, WithHTTPClient(server.Client()))
	ctx := context.Background()

	_, err := c.DailyQuiz(ctx, "missing", "", 0)
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))
	assert.Contains(t, err.Error(), "bad key")

	err = c.do(ctx, http.MethodGet, "/v1/broken", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")

	_, err = New("http://127.0.0.1:1").Levels(ctx)
	assert.Equal(t, contextutils.ErrorCodeServiceUnavailable, contextutils.GetErrorCode(err))
}

func TestClient_DeadlineIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).Levels(ctx)
	require.Error(t, err)
	assert.True(t, contextutils.IsError(err, contextutils.ErrTimeout))
}
