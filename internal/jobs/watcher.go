package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ytbot/internal/core/domain"
	"ytbot/internal/core/ports"
	"ytbot/internal/storage"
)

// WatchedJob is everything the delivery pipeline needs once the process exits.
type WatchedJob struct {
	Handle   ports.ProcessHandle
	JobID    string
	UserID   int64
	ChatID   int64
	WorkDir  string
	SendMode domain.SendMode
	Delivery domain.DeliveryMode
}

// Watcher awaits job completion and runs the delivery pipeline: enumerate
// produced files, apply the size policy, deliver or skip each, clean up, and
// release all per-user state exactly once.
type Watcher struct {
	msg          ports.Messenger
	sessions     ports.SessionStore
	registry     ports.JobRegistry
	workdirs     *storage.Workdirs
	maxFileBytes int64
	autoCleanup  bool
	logger       *zap.Logger
}

func NewWatcher(
	msg ports.Messenger,
	sessions ports.SessionStore,
	registry ports.JobRegistry,
	workdirs *storage.Workdirs,
	maxFileBytes int64,
	autoCleanup bool,
	logger *zap.Logger,
) *Watcher {
	return &Watcher{
		msg:          msg,
		sessions:     sessions,
		registry:     registry,
		workdirs:     workdirs,
		maxFileBytes: maxFileBytes,
		autoCleanup:  autoCleanup,
		logger:       logger,
	}
}

// Run blocks until the job's process exits, then delivers whatever the
// working directory holds. The registry entry and the session are cleared
// unconditionally, whichever way delivery went. A cancelled job lands here
// too: the signal makes the process exit and partial files are still
// delivered.
func (w *Watcher) Run(ctx context.Context, job WatchedJob) {
	defer func() {
		w.registry.Remove(job.UserID)
		w.sessions.Clear(job.UserID)
	}()

	// Exit status is deliberately not inspected: a non-zero exit still
	// proceeds over whatever partial files exist.
	if err := job.Handle.Wait(); err != nil {
		w.logger.Info("job exited with error",
			zap.String("job_id", job.JobID),
			zap.Int64("user_id", job.UserID),
			zap.Error(err))
	}

	files, err := w.workdirs.ListFiles(job.WorkDir)
	if err != nil {
		w.logger.Warn("failed to enumerate working directory",
			zap.String("job_id", job.JobID),
			zap.Int64("user_id", job.UserID),
			zap.Error(err))
		return
	}

	for _, path := range files {
		w.deliver(ctx, job, path)
	}

	// Saved files stay on disk regardless of the cleanup flag; cleanup of
	// persisted output would defeat the point of saving.
	if w.autoCleanup && job.Delivery == domain.DeliverySend {
		if err := w.workdirs.RemoveDir(job.WorkDir); err != nil {
			w.logger.Debug("workdir cleanup failed",
				zap.String("job_id", job.JobID), zap.Error(err))
		}
	}

	w.logger.Info("job finished",
		zap.String("job_id", job.JobID),
		zap.Int64("user_id", job.UserID),
		zap.Int("files", len(files)))
}

func (w *Watcher) deliver(ctx context.Context, job WatchedJob, path string) {
	w.logger.Info("user downloaded file",
		zap.Int64("user_id", job.UserID),
		zap.String("path", path))

	if job.Delivery == domain.DeliverySend {
		w.send(ctx, job, path)
		if w.autoCleanup {
			if err := w.workdirs.RemoveFile(path); err != nil {
				w.logger.Debug("file cleanup failed", zap.String("path", path), zap.Error(err))
			}
		}
	}
}

// send applies the size policy, then picks the attachment kind: a video-mode
// mp4 goes out as a streamable video, everything else as a document. Failures
// are reported per-file and never abort the remaining deliveries.
func (w *Watcher) send(ctx context.Context, job WatchedJob, path string) {
	name := filepath.Base(path)

	if w.maxFileBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Warn("stat failed before delivery", zap.String("path", path), zap.Error(err))
			return
		}
		if info.Size() > w.maxFileBytes {
			_ = w.msg.SendText(ctx, job.ChatID,
				fmt.Sprintf("⏭ Skipped %s: file is too large to send", name))
			return
		}
	}

	var err error
	if job.SendMode == domain.SendModeVideo && strings.EqualFold(filepath.Ext(path), ".mp4") {
		err = w.msg.SendVideo(ctx, job.ChatID, path)
	} else {
		err = w.msg.SendDocument(ctx, job.ChatID, path)
	}
	if err != nil {
		w.logger.Warn("delivery failed",
			zap.Int64("user_id", job.UserID),
			zap.String("path", path),
			zap.Error(err))
		_ = w.msg.SendText(ctx, job.ChatID, fmt.Sprintf("⚠️ Failed to send %s", name))
	}
}
