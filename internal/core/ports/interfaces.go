package ports

import (
	"context"

	"ytbot/internal/core/domain"
)

// Button is one tappable choice in an interactive prompt.
type Button struct {
	Label string
	Tag   string
}

// Messenger delivers outgoing chat content. The core never performs chat
// transport itself, only constructs the content of these calls.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error

	// SendChoices sends a prompt with rows of inline buttons.
	SendChoices(ctx context.Context, chatID int64, prompt string, rows [][]Button) error

	// EditText replaces a previously sent prompt with plain text.
	EditText(ctx context.Context, chatID int64, messageID int, text string) error

	// EditChoices replaces a previously sent prompt with a new one plus buttons.
	EditChoices(ctx context.Context, chatID int64, messageID int, prompt string, rows [][]Button) error

	// SendVideo delivers a file as a streamable video attachment.
	SendVideo(ctx context.Context, chatID int64, path string) error

	// SendDocument delivers a file as a generic document attachment.
	SendDocument(ctx context.Context, chatID int64, path string) error
}

// SessionStore holds per-user pending selections. Clear is idempotent.
type SessionStore interface {
	Get(userID int64) (*domain.UserSession, bool)
	Put(userID int64, s *domain.UserSession)
	Clear(userID int64)
}

// ProcessHandle represents a whole running job tree, not a single pid.
type ProcessHandle interface {
	Pid() int

	// Terminate signals the entire process group. A group that is already
	// gone is not an error.
	Terminate() error

	// Wait blocks until the process exits, whatever the exit status.
	Wait() error
}

// JobRegistry holds at most one running job handle per user id.
type JobRegistry interface {
	// Register stores the handle, overwriting any prior one.
	Register(userID int64, h ProcessHandle)

	Lookup(userID int64) (ProcessHandle, bool)

	// Remove is idempotent.
	Remove(userID int64)

	// Cancel terminates the user's job group, removes the entry, and reports
	// whether there was anything to cancel. Signal errors are swallowed.
	Cancel(userID int64) bool
}

// JobStarter launches a fully-specified job. The flow hands completed
// requests to it and never touches the external tool itself.
type JobStarter interface {
	Start(ctx context.Context, req domain.JobRequest, chatID int64, messageID int) error
}
