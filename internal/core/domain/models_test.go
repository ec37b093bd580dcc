package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedURL(t *testing.T) {
	assert.True(t, IsSupportedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, IsSupportedURL("check this out https://youtu.be/dQw4w9WgXcQ"))
	assert.False(t, IsSupportedURL("hello"))
	assert.False(t, IsSupportedURL("https://example.com/watch?v=abc"))
}

func TestSessionComplete(t *testing.T) {
	var nilSession *UserSession
	assert.False(t, nilSession.Complete())

	s := &UserSession{}
	assert.False(t, s.Complete())

	s.PendingURL = "https://youtu.be/abc"
	assert.False(t, s.Complete())

	s.DeliveryMode = DeliverySend
	s.SendMode = SendModeVideo
	assert.False(t, s.Complete())

	s.MaxHeight = "720"
	assert.True(t, s.Complete())
}

func TestParseFormat(t *testing.T) {
	for _, tag := range []string{"mp4", "mp3", "best"} {
		f, ok := ParseFormat(tag)
		require.True(t, ok, tag)
		assert.Equal(t, Format(tag), f)
	}
	_, ok := ParseFormat("deliver_send")
	assert.False(t, ok)
}

func TestNewJobRequestMP4(t *testing.T) {
	sess := &UserSession{
		PendingURL:   "https://youtu.be/abc",
		DeliveryMode: DeliverySend,
		SendMode:     SendModeVideo,
		MaxHeight:    "720",
	}

	req := NewJobRequest(42, sess, FormatMP4, "/tmp/downloads/42")

	assert.Equal(t, "bv*[ext=mp4][height<=720]+ba[ext=m4a]/mp4", req.FormatSelector)
	assert.Empty(t, req.ExtraArgs)
	assert.Equal(t, "https://youtu.be/abc", req.URL)
	assert.Equal(t, int64(42), req.Job.UserID)
	assert.NotEmpty(t, req.Job.ID)
	assert.Equal(t, "/tmp/downloads/42/%(playlist_title)s/%(title)s.%(ext)s", req.OutputTemplate)
}

func TestNewJobRequestMP3IgnoresQuality(t *testing.T) {
	sess := &UserSession{
		PendingURL:   "https://youtu.be/abc",
		DeliveryMode: DeliverySend,
		SendMode:     SendModeDocument,
		MaxHeight:    "1080",
	}

	req := NewJobRequest(42, sess, FormatMP3, "/tmp/downloads/42")

	assert.Equal(t, "bestaudio", req.FormatSelector)
	assert.Equal(t, []string{"--extract-audio", "--audio-format", "mp3"}, req.ExtraArgs)
}

func TestNewJobRequestBest(t *testing.T) {
	sess := &UserSession{
		PendingURL:   "https://youtu.be/abc",
		DeliveryMode: DeliverySave,
		SendMode:     SendModeVideo,
		MaxHeight:    "360",
	}

	req := NewJobRequest(7, sess, FormatBest, "/tmp/downloads/7")

	assert.Equal(t, "best", req.FormatSelector)
	assert.Empty(t, req.ExtraArgs)
	assert.Equal(t, DeliverySave, req.DeliveryMode)
}
