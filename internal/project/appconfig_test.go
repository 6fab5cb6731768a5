package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

func TestAppConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 2.2
	cfg.RecentRequests = []string{"/tmp/job.json"}

	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), loaded)
}

func TestLoadAppConfig_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestAddRecentRequest_DedupesAndCaps(t *testing.T) {
	cfg := model.DefaultAppConfig()
	for i := 0; i < 12; i++ {
		AddRecentRequest(&cfg, filepath.Join("/jobs", string(rune('a'+i))+".json"))
	}
	AddRecentRequest(&cfg, "/jobs/a.json")

	assert.Len(t, cfg.RecentRequests, 10)
	assert.Equal(t, "/jobs/a.json", cfg.RecentRequests[0])
	for i, r := range cfg.RecentRequests {
		for j := i + 1; j < len(cfg.RecentRequests); j++ {
			assert.NotEqual(t, r, cfg.RecentRequests[j], "no duplicates")
		}
	}
}
