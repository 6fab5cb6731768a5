package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppConfig_MirrorsDefaultParams(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultCutParams()

	assert.Equal(t, defaults.Kerf, cfg.DefaultKerf)
	assert.Equal(t, defaults.MinOffcut, cfg.DefaultMinOffcut)
	assert.Equal(t, defaults.EdgeTrim, cfg.DefaultEdgeTrim)
	assert.Equal(t, "per-piece", cfg.DefaultRotation)
	assert.NotNil(t, cfg.RecentRequests)
}

func TestAppConfig_ApplyToParams(t *testing.T) {
	cfg := AppConfig{
		DefaultKerf:      2.2,
		DefaultMinOffcut: 80,
		DefaultEdgeTrim:  10,
		DefaultRotation:  "none",
	}

	var params CutParams
	cfg.ApplyToParams(&params)

	assert.Equal(t, 2.2, params.Kerf)
	assert.Equal(t, 80.0, params.MinOffcut)
	assert.Equal(t, 10.0, params.EdgeTrim)
	assert.Equal(t, RotationNone, params.Rotation)
}
