package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SendMode controls how a delivered file is presented in the chat.
type SendMode string

const (
	SendModeVideo    SendMode = "video"
	SendModeDocument SendMode = "doc"
)

// DeliveryMode controls what happens to produced files once the download ends.
type DeliveryMode string

const (
	DeliverySend DeliveryMode = "send" // transfer back through the chat
	DeliverySave DeliveryMode = "save" // leave on server storage
)

// Format is the output format the user picked.
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatMP3  Format = "mp3"
	FormatBest Format = "best"
)

// ParseFormat maps a button tag onto a Format.
func ParseFormat(tag string) (Format, bool) {
	switch Format(tag) {
	case FormatMP4, FormatMP3, FormatBest:
		return Format(tag), true
	default:
		return "", false
	}
}

// IsSupportedURL reports whether the text contains a recognized video host.
func IsSupportedURL(text string) bool {
	return strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be")
}

// UserSession accumulates one user's choices between the first link message
// and the job launch. All fields are optional until filled in by the flow.
type UserSession struct {
	PendingURL   string
	DeliveryMode DeliveryMode
	SendMode     SendMode
	MaxHeight    string
}

// Complete reports whether every choice needed to launch a job is present.
// It re-derives the answer on every call; completeness is never cached.
func (s *UserSession) Complete() bool {
	return s != nil &&
		s.PendingURL != "" &&
		s.DeliveryMode != "" &&
		s.SendMode != "" &&
		s.MaxHeight != ""
}

// Job identifies one download run for one user.
type Job struct {
	ID        string
	UserID    int64
	URL       string
	CreatedAt time.Time
}

// JobRequest fully specifies one external download-tool invocation. It is
// derived from a complete session and exists only on its way to the launcher.
type JobRequest struct {
	Job            Job
	URL            string
	FormatSelector string
	ExtraArgs      []string
	OutputTemplate string
	SendMode       SendMode
	DeliveryMode   DeliveryMode
	WorkDir        string
}

// NewJobRequest maps a completed session plus the chosen format onto concrete
// job parameters. MP4 constrains video height to the session's cap and falls
// back to a generic muxed mp4 stream; MP3 requests the best audio stream plus
// extraction flags; anything else takes the unconstrained best stream.
func NewJobRequest(userID int64, s *UserSession, f Format, workDir string) JobRequest {
	req := JobRequest{
		Job: Job{
			ID:        uuid.New().String(),
			UserID:    userID,
			URL:       s.PendingURL,
			CreatedAt: time.Now().UTC(),
		},
		URL:            s.PendingURL,
		SendMode:       s.SendMode,
		DeliveryMode:   s.DeliveryMode,
		WorkDir:        workDir,
		OutputTemplate: filepath.Join(workDir, "%(playlist_title)s", "%(title)s.%(ext)s"),
	}

	switch f {
	case FormatMP4:
		req.FormatSelector = fmt.Sprintf("bv*[ext=mp4][height<=%s]+ba[ext=m4a]/mp4", s.MaxHeight)
	case FormatMP3:
		req.FormatSelector = "bestaudio"
		req.ExtraArgs = []string{"--extract-audio", "--audio-format", "mp3"}
	default:
		req.FormatSelector = "best"
	}
	return req
}
