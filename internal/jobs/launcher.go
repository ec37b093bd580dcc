package jobs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"ytbot/internal/core/domain"
	"ytbot/internal/core/ports"
	"ytbot/internal/storage"
)

const msgLaunchFailed = "⚠️ Download failed to start. Please try again later."
const msgAlreadyRunning = "⏳ A download is already running. /cancel it first."

// LauncherConfig carries the external-tool settings a launch needs.
type LauncherConfig struct {
	YtDlpPath   string
	Parallelism int
	CookiesFile string
}

// Launcher turns a JobRequest into a running yt-dlp process, registered so it
// can be cancelled, with a watcher goroutine awaiting its completion.
type Launcher struct {
	cfg      LauncherConfig
	registry ports.JobRegistry
	workdirs *storage.Workdirs
	watcher  *Watcher
	msg      ports.Messenger
	logger   *zap.Logger
}

func NewLauncher(
	cfg LauncherConfig,
	registry ports.JobRegistry,
	workdirs *storage.Workdirs,
	watcher *Watcher,
	msg ports.Messenger,
	logger *zap.Logger,
) *Launcher {
	return &Launcher{
		cfg:      cfg,
		registry: registry,
		workdirs: workdirs,
		watcher:  watcher,
		msg:      msg,
		logger:   logger,
	}
}

// Start launches the job. The registry entry is written only after the
// process starts, so a failed start leaves no half-registered job behind.
func (l *Launcher) Start(ctx context.Context, req domain.JobRequest, chatID int64, messageID int) error {
	if _, running := l.registry.Lookup(req.Job.UserID); running {
		_ = l.msg.SendText(ctx, chatID, msgAlreadyRunning)
		return fmt.Errorf("job already running for user %d", req.Job.UserID)
	}

	if _, err := l.workdirs.Ensure(req.Job.UserID); err != nil {
		_ = l.msg.SendText(ctx, chatID, msgLaunchFailed)
		return err
	}

	args := l.BuildArgs(req)
	cmd := exec.Command(l.cfg.YtDlpPath, args...)
	// New session: the job tree becomes its own process group leader, so it
	// survives independently of the update handler and can be signaled as a
	// unit on /cancel.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		l.logger.Error("failed to start yt-dlp",
			zap.String("job_id", req.Job.ID),
			zap.Int64("user_id", req.Job.UserID),
			zap.Error(err))
		_ = l.msg.SendText(ctx, chatID, msgLaunchFailed)
		return fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	handle := newGroupHandle(cmd)
	l.registry.Register(req.Job.UserID, handle)

	l.logger.Info("job started",
		zap.String("job_id", req.Job.ID),
		zap.Int64("user_id", req.Job.UserID),
		zap.String("url", req.URL),
		zap.Int("pid", handle.Pid()))

	go l.watcher.Run(context.Background(), WatchedJob{
		Handle:   handle,
		JobID:    req.Job.ID,
		UserID:   req.Job.UserID,
		ChatID:   chatID,
		WorkDir:  req.WorkDir,
		SendMode: req.SendMode,
		Delivery: req.DeliveryMode,
	})
	return nil
}

// BuildArgs maps a JobRequest onto the yt-dlp argument list. The cookie file
// is passed through only when it exists on disk at launch time.
func (l *Launcher) BuildArgs(req domain.JobRequest) []string {
	args := []string{
		"-N", strconv.Itoa(l.cfg.Parallelism),
		"-f", req.FormatSelector,
		"-o", req.OutputTemplate,
		"--yes-playlist",
	}
	args = append(args, req.ExtraArgs...)

	if l.cfg.CookiesFile != "" {
		if _, err := os.Stat(l.cfg.CookiesFile); err == nil {
			args = append(args, "--cookies", l.cfg.CookiesFile)
		}
	}

	return append(args, req.URL)
}
