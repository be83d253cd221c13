package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"speakroots/internal/config"
	"speakroots/internal/models"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	cfg := config.NewDefaultConfig()
	rt := NewRuntime(cfg, nil)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })
	return rt
}

func execute(t *testing.T, rt *Runtime, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(rt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, newTestRuntime(t), "", "levels")
	require.NoError(t, err)
	assert.Contains(t, out, "LEVEL")
	assert.Contains(t, out, "grade1-math")
	assert.Contains(t, out, "grade3-math")
}

func TestPickCommand(t *testing.T) {
	rt := newTestRuntime(t)

	out, err := execute(t, rt, "", "pick", "--pool-size", "10", "--count", "5", "--id", "mathA", "--date", "2026-10-17")
	require.NoError(t, err)

	var sel models.DailySelection
	require.NoError(t, json.Unmarshal([]byte(out), &sel))
	assert.Equal(t, []int{6, 7, 4, 5, 1}, sel.Indexes)
	assert.Equal(t, "2026-10-17", sel.Date)

	_, err = execute(t, rt, "", "pick", "--pool-size", "10", "--id", "has space")
	assert.Error(t, err)

	_, err = execute(t, rt, "", "pick", "--pool-size", "10", "--id", "mathA", "--date", "17/10/2026")
	assert.Error(t, err)

	_, err = execute(t, rt, "", "pick", "--pool-size", "50000000", "--id", "mathA")
	assert.Error(t, err)

	_, err = execute(t, rt, "", "pick", "--id", "mathA")
	assert.Error(t, err, "pool-size is required")
}

func TestDailyAndCacheClear(t *testing.T) {
	rt := newTestRuntime(t)

	out, err := execute(t, rt, "", "daily", "grade1-math", "--date", "2026-10-17", "--count", "3", "--json")
	require.NoError(t, err)

	var quiz models.DailyQuiz
	require.NoError(t, json.Unmarshal([]byte(out), &quiz))
	assert.Equal(t, "grade1-math", quiz.LevelKey)
	assert.Len(t, quiz.Questions, 3)
	assert.True(t, models.IndexesValid(quiz.Indexes, quiz.PoolSize, 3))

	out, err = execute(t, rt, "", "daily", "grade1-math", "--date", "2026-10-17", "--count", "3", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "grade1-math on 2026-10-17")
	assert.Contains(t, out, quiz.Questions[0].Prompt)
	assert.Contains(t, out, "* "+quiz.Questions[0].CorrectAnswer)

	out, err = execute(t, rt, "", "cache", "clear", "--level", "grade1-math")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 2 keys")

	out, err = execute(t, rt, "", "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 keys")

	_, err = execute(t, rt, "", "cache", "clear", "--level", "a b")
	assert.Error(t, err)
}

func TestPoolCommand(t *testing.T) {
	out, err := execute(t, newTestRuntime(t), "", "pool", "grade3-math", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "grade3-math: 100 questions")
	assert.Contains(t, out, "  0. ")
	assert.Contains(t, out, "  1. ")
	assert.NotContains(t, out, "  2. ")
}

func TestHashPasswordCommand(t *testing.T) {
	rt := newTestRuntime(t)

	out, err := execute(t, rt, "correct horse\n", "hash-password", "--cost", "4")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))

	_, err = execute(t, rt, "\n", "hash-password")
	assert.Error(t, err)
}

func TestRemoteDailyCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/daily/quiz/grade1-math" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "2026-10-17", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"level_key":"grade1-math","date":"2026-10-17","pool_size":100,
			"indexes":[4],"questions":[{"index":0,"prompt":"2 + 2 = ?","choices":["3","4","5","6"]}]}`))
	}))
	defer srv.Close()

	out, err := execute(t, newTestRuntime(t), "", "remote", "--server", srv.URL, "daily", "grade1-math", "--date", "2026-10-17")
	require.NoError(t, err)
	assert.Contains(t, out, "grade1-math on 2026-10-17: indexes [4] of 100")
	assert.Contains(t, out, "2 + 2 = ?")

	_, err = execute(t, newTestRuntime(t), "", "remote", "--server", srv.URL, "daily", "grade9-math")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, newTestRuntime(t), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "adm "))
}
