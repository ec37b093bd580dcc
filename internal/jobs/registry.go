package jobs

import (
	"sync"

	"go.uber.org/zap"

	"ytbot/internal/core/ports"
)

// Registry tracks at most one running job handle per user id.
type Registry struct {
	mu     sync.Mutex
	active map[int64]ports.ProcessHandle
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		active: make(map[int64]ports.ProcessHandle),
		logger: logger,
	}
}

// Register stores the handle, overwriting any prior one.
func (r *Registry) Register(userID int64, h ports.ProcessHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[userID] = h
}

func (r *Registry) Lookup(userID int64) (ports.ProcessHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.active[userID]
	return h, ok
}

// Remove is idempotent.
func (r *Registry) Remove(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, userID)
}

// Cancel terminates the user's job group and removes the entry. It reports
// whether there was anything to cancel; signal errors are swallowed because
// the target group may already be gone.
func (r *Registry) Cancel(userID int64) bool {
	r.mu.Lock()
	h, ok := r.active[userID]
	if ok {
		delete(r.active, userID)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	if err := h.Terminate(); err != nil {
		r.logger.Debug("terminate failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return true
}
