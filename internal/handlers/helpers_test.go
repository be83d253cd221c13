package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"speakroots/internal/config"
	"speakroots/internal/daily"
	"speakroots/internal/kvstore"
	"speakroots/internal/quizgen"
	"speakroots/internal/services"
)

const (
	testAdminPassword = "correct horse battery staple"

	timeoutShort = 2 * time.Second
	tick         = 10 * time.Millisecond
)

type testServer struct {
	router *gin.Engine
	quiz   *services.QuizService
	plays  *services.PlaySessionManager
	store  *kvstore.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.NewDefaultConfig()
	cfg.Server.SessionSecret = "test-session-secret"
	cfg.Server.AdminPasswordHash = string(hash)

	store := kvstore.NewMemory(kvstore.Options{})
	now := func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	selector := daily.NewSelector(store, nil, daily.WithClock(now))
	quiz, err := services.NewQuizService(cfg, store, selector, quizgen.NewBuilder(), nil)
	require.NoError(t, err)
	plays := services.NewPlaySessionManager(quiz, nil)

	router := NewRouter(cfg, quiz, services.NewDispatcher(quiz, nil), plays, nil)
	gin.SetMode(gin.TestMode)
	return &testServer{router: router, quiz: quiz, plays: plays, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
