package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/config"
	"speakroots/internal/daily"
	"speakroots/internal/models"
	"speakroots/internal/quizgen"
	"speakroots/internal/services"
)

func TestRouter_HealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	w = s.do(t, http.MethodGet, "/v1/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "memory", body["store"])
	assert.Equal(t, ServiceName, body["server"].(map[string]interface{})["service"])
}

func TestRouter_RoutesListed(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/routes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Routes []RouteInfo `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	found := make(map[string]bool)
	for _, r := range body.Routes {
		found[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /v1/levels", "GET /v1/pools/:level", "GET /v1/daily/indexes", "GET /v1/daily/quiz/:level",
		"POST /v1/daily/quiz/:level/score", "PUT /v1/session/level", "POST /v1/events",
		"GET /v1/play/:level", "DELETE /v1/admin/pools/:level",
	} {
		assert.True(t, found[want], want)
	}
}

func TestRouter_Levels(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	levels := decodeBody(t, w)["levels"].([]interface{})
	assert.Len(t, levels, len(quizgen.KnownLevels))
}

func TestRouter_PoolPagination(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/pools/grade3-math?page=2&page_size=30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		LevelKey   string                  `json:"level_key"`
		Questions  []models.PublicQuestion `json:"questions"`
		Pagination Pagination              `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "grade3-math", body.LevelKey)
	assert.Len(t, body.Questions, 30)
	assert.Equal(t, 30, body.Questions[0].Index)
	assert.Equal(t, Pagination{Page: 2, PageSize: 30, Total: 100, TotalPages: 4}, body.Pagination)
	assert.NotContains(t, w.Body.String(), "correctAnswer")

	w = s.do(t, http.MethodGet, "/v1/pools/grade3-math?page=4&page_size=30", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Questions, 10)

	w = s.do(t, http.MethodGet, "/v1/pools/bad:key", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DailyIndexes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=10&count=5&identifier=mathA", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Date    string `json:"date"`
		Indexes []int  `json:"indexes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-17", body.Date)
	assert.Equal(t, []int{6, 7, 4, 5, 1}, body.Indexes)

	w = s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=0&count=5&identifier=mathA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Indexes)

	w = s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=ten&identifier=mathA", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DailyIndexes_PoolSizeBound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=50000000&count=1&identifier=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeBody(t, w)["code"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/v1/daily/indexes?pool_size=%d&count=1&identifier=x", config.MaxPoolSize), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := map[string]interface{}{"type": "pick_indexes", "pool_size": 2000000000, "count": 1, "identifier": "x"}
	w = s.do(t, http.MethodPost, "/v1/events", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DailyIndexes_ColonIdentifier(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/daily/indexes?pool_size=10&count=1&identifier=math:A", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeBody(t, w)["code"])
}

func TestRouter_DailyQuizAndScore(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	w := s.do(t, http.MethodGet, "/v1/daily/quiz/grade3-math", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var quizBody struct {
		Date      string                  `json:"date"`
		PoolSize  int                     `json:"pool_size"`
		Indexes   []int                   `json:"indexes"`
		Questions []models.PublicQuestion `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quizBody))
	assert.Equal(t, "2026-10-17", quizBody.Date)
	assert.Equal(t, daily.Compute("grade3-math", "2026-10-17", 100, 10), quizBody.Indexes)
	require.Len(t, quizBody.Questions, 10)
	assert.NotContains(t, w.Body.String(), "correctAnswer")

	quiz, err := s.quiz.DailyQuiz(ctx, "grade3-math", 0)
	require.NoError(t, err)
	answers := make([]models.Answer, 0, 10)
	for i, q := range quiz.Questions {
		if i%2 == 0 {
			answers = append(answers, models.Answer{Index: i, Answer: q.CorrectAnswer})
		}
	}

	w = s.do(t, http.MethodPost, "/v1/daily/quiz/grade3-math/score", ScoreRequest{Answers: answers})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var score models.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &score))
	assert.Equal(t, 5, score.Correct)
	assert.Equal(t, 10, score.Total)

	w = s.do(t, http.MethodPost, "/v1/daily/quiz/grade3-math/score",
		ScoreRequest{Answers: []models.Answer{{Index: 10, Answer: "x"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ANSWER", decodeBody(t, w)["code"])

	w = s.do(t, http.MethodPost, "/v1/daily/quiz/grade3-math/score",
		ScoreRequest{Answers: []models.Answer{{Index: -1, Answer: "x"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DailyQuizInputErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/daily/quiz/grade3-math?count=51", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/v1/daily/quiz/grade3-math?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decodeBody(t, w)["code"])

	w = s.do(t, http.MethodGet, "/v1/daily/quiz/grade3-math?date=2026-10-18&count=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-10-18", decodeBody(t, w)["date"])
}

func TestRouter_SessionLevel(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/v1/daily/quiz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/v1/session/level", SessionLevelRequest{LevelKey: "with space"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/v1/session/level", SessionLevelRequest{LevelKey: "english_class3"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = s.do(t, http.MethodGet, "/v1/daily/quiz?count=3", nil, func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "english_class3", body["level_key"])
	assert.Len(t, body["questions"], 3)
}

func TestRouter_Events(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/events", services.Event{
		Type: services.EventPickIndexes, PoolSize: 10, Count: 5, Identifier: "mathA",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var res services.EventResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []int{6, 7, 4, 5, 1}, res.Indexes)

	w = s.do(t, http.MethodPost, "/v1/events", services.Event{Type: services.EventStartDailyQuiz, LevelKey: "spelling", Count: 4})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Questions, 4)

	w = s.do(t, http.MethodPost, "/v1/events", services.Event{Type: "explode"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_EVENT", decodeBody(t, w)["code"])

	w = s.do(t, http.MethodPost, "/v1/events", map[string]string{"level_key": "spelling"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AdminInvalidatePool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.quiz.Pool(ctx, "grade1-math")
	require.NoError(t, err)

	w := s.do(t, http.MethodDelete, "/v1/admin/pools/grade1-math", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	w = s.do(t, http.MethodDelete, "/v1/admin/pools/grade1-math", nil, func(r *http.Request) {
		r.SetBasicAuth("admin", "wrong")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, "/v1/admin/pools/grade1-math", nil, func(r *http.Request) {
		r.SetBasicAuth("admin", testAdminPassword)
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["removed"])
	assert.Zero(t, s.store.Len())
}
