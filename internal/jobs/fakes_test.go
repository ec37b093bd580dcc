package jobs

import (
	"context"
	"errors"
	"sync"

	"ytbot/internal/core/ports"
)

// fakeHandle stands in for a running process group.
type fakeHandle struct {
	mu         sync.Mutex
	pid        int
	terminated int
	waitErr    error
	waitCh     chan struct{}
}

func newFakeHandle(pid int) *fakeHandle {
	return &fakeHandle{pid: pid}
}

func (h *fakeHandle) Pid() int { return h.pid }

func (h *fakeHandle) Terminate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terminated++
	return nil
}

func (h *fakeHandle) Terminations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terminated
}

func (h *fakeHandle) Wait() error {
	if h.waitCh != nil {
		<-h.waitCh
	}
	return h.waitErr
}

// fakeMessenger records every outgoing call.
type fakeMessenger struct {
	mu     sync.Mutex
	texts  []string
	edits  []string
	videos []string
	docs   []string

	failDocs bool
}

func (m *fakeMessenger) SendText(_ context.Context, _ int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

func (m *fakeMessenger) SendChoices(_ context.Context, _ int64, prompt string, _ [][]ports.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, prompt)
	return nil
}

func (m *fakeMessenger) EditText(_ context.Context, _ int64, _ int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, text)
	return nil
}

func (m *fakeMessenger) EditChoices(_ context.Context, _ int64, _ int, prompt string, _ [][]ports.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, prompt)
	return nil
}

func (m *fakeMessenger) SendVideo(_ context.Context, _ int64, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos = append(m.videos, path)
	return nil
}

func (m *fakeMessenger) SendDocument(_ context.Context, _ int64, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDocs {
		return errors.New("upload failed")
	}
	m.docs = append(m.docs, path)
	return nil
}
