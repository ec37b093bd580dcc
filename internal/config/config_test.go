package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "downloads", cfg.Download.BaseDir)
	assert.Equal(t, 4, cfg.Download.Parallelism)
	assert.True(t, cfg.Download.AutoCleanup)
	assert.EqualValues(t, 0, cfg.Download.MaxFileBytes)
	assert.Equal(t, "yt-dlp", cfg.Download.YtDlpPath)
	assert.Empty(t, cfg.AllowedUserIDs)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DOWNLOAD_DIR", "/srv/media")
	t.Setenv("PARALLEL_DOWNLOADS", "8")
	t.Setenv("AUTO_CLEANUP", "false")
	t.Setenv("MAX_FILE_MB", "10")
	t.Setenv("ALLOWED_USER_IDS", "42, 43,bogus,44")

	cfg := Load()

	assert.Equal(t, "/srv/media", cfg.Download.BaseDir)
	assert.Equal(t, 8, cfg.Download.Parallelism)
	assert.False(t, cfg.Download.AutoCleanup)
	assert.EqualValues(t, 10*1024*1024, cfg.Download.MaxFileBytes)
	assert.Equal(t, []int64{42, 43, 44}, cfg.AllowedUserIDs)
}
