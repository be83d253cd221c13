package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/config"
	"speakroots/internal/di"
)

func TestApplication_ServesAndShutsDown(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewDefaultConfig()
	cfg.Server.SessionSecret = "test"

	container := di.NewServiceContainer(cfg, nil)
	require.NoError(t, container.Initialize(ctx))

	app, err := NewApplication(container)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/daily/quiz/grade2-math?count=4", nil)
	app.server.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Questions []json.RawMessage `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Questions, 4)

	assert.NoError(t, app.Shutdown(ctx))
}

func TestNewApplication_UninitializedContainer(t *testing.T) {
	_, err := NewApplication(di.NewServiceContainer(config.NewDefaultConfig(), nil))
	assert.Error(t, err)
}
