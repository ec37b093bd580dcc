package jobs

import (
	"errors"
	"os/exec"
	"syscall"
)

// groupHandle wraps a process started as the leader of its own session, so
// termination reaches the whole tree: yt-dlp spawns at least one worker
// child, and signaling only the parent would orphan it.
type groupHandle struct {
	cmd *exec.Cmd
}

func newGroupHandle(cmd *exec.Cmd) *groupHandle {
	return &groupHandle{cmd: cmd}
}

func (h *groupHandle) Pid() int {
	return h.cmd.Process.Pid
}

// Terminate sends SIGTERM to the process group. A group that no longer
// exists is not an error.
func (h *groupHandle) Terminate() error {
	if err := syscall.Kill(-h.cmd.Process.Pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}

func (h *groupHandle) Wait() error {
	return h.cmd.Wait()
}
