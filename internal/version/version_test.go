package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev", Commit)
	assert.Equal(t, "unknown", BuildTime)
}

func TestGet(t *testing.T) {
	info := Get("speakroots")
	assert.Equal(t, "speakroots", info.Service)
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, "speakroots dev (commit dev, built unknown)", info.String())
}

func TestInfo_JSON(t *testing.T) {
	data, err := json.Marshal(Get("adm"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"service":"adm","version":"dev","commit":"dev","buildTime":"unknown"}`, string(data))
}
