package flow

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ytbot/internal/core/domain"
	"ytbot/internal/core/ports"
	"ytbot/internal/storage"
)

// Callback tags carried by the inline buttons.
const (
	TagDeliverSend = "deliver_send"
	TagDeliverSave = "deliver_save"
	qualityPrefix  = "q_"
)

const (
	msgInvalidLink = "❌ Send a valid YouTube link"
	msgAskDelivery = "What should I do after downloading?"
	msgAskSendMode = "How should I send the file?\n\n/video → playable video\n/doc → document"
	msgAskQuality  = "Select max quality:"
	msgAskFormat   = "Select format:"
	msgExpired     = "❌ Session expired. Send link again."
	msgDownloading = "⬇️ Downloading..."
	msgCancelled   = "🛑 Download cancelled"
	msgNoDownload  = "❌ No active download"
)

// Flow is the conversational state machine that accumulates one user's
// choices and, once complete, hands a JobRequest to the starter. The machine
// is strictly linear: URL, delivery mode, send mode, quality, format.
type Flow struct {
	sessions ports.SessionStore
	registry ports.JobRegistry
	starter  ports.JobStarter
	workdirs *storage.Workdirs
	msg      ports.Messenger
	logger   *zap.Logger
}

func New(
	sessions ports.SessionStore,
	registry ports.JobRegistry,
	starter ports.JobStarter,
	workdirs *storage.Workdirs,
	msg ports.Messenger,
	logger *zap.Logger,
) *Flow {
	return &Flow{
		sessions: sessions,
		registry: registry,
		starter:  starter,
		workdirs: workdirs,
		msg:      msg,
		logger:   logger,
	}
}

// HandleText processes a free-text message, expected to be a media link. A
// rejected link leaves any existing session untouched.
func (f *Flow) HandleText(ctx context.Context, userID, chatID int64, text string) {
	text = strings.TrimSpace(text)
	if !domain.IsSupportedURL(text) {
		_ = f.msg.SendText(ctx, chatID, msgInvalidLink)
		return
	}

	f.sessions.Put(userID, &domain.UserSession{PendingURL: text})
	_ = f.msg.SendChoices(ctx, chatID, msgAskDelivery, [][]ports.Button{{
		{Label: "📤 Send to Telegram", Tag: TagDeliverSend},
		{Label: "💾 Save to Server", Tag: TagDeliverSave},
	}})
}

// HandleSendMode processes the /video and /doc commands.
func (f *Flow) HandleSendMode(ctx context.Context, userID, chatID int64, mode domain.SendMode) {
	sess, ok := f.sessions.Get(userID)
	if !ok || sess.PendingURL == "" {
		f.expire(ctx, userID, chatID)
		return
	}

	sess.SendMode = mode
	f.sessions.Put(userID, sess)
	_ = f.msg.SendChoices(ctx, chatID, msgAskQuality, [][]ports.Button{{
		{Label: "360p", Tag: qualityPrefix + "360"},
		{Label: "720p", Tag: qualityPrefix + "720"},
		{Label: "1080p", Tag: qualityPrefix + "1080"},
	}})
}

// HandleCallback processes a button selection. Any selection arriving without
// a stored URL means the session completed or expired in the meantime; the
// flow resets and the user is asked to resend the link.
func (f *Flow) HandleCallback(ctx context.Context, userID, chatID int64, messageID int, tag string) {
	sess, ok := f.sessions.Get(userID)
	if !ok || sess.PendingURL == "" {
		f.sessions.Clear(userID)
		_ = f.msg.EditText(ctx, chatID, messageID, msgExpired)
		return
	}

	switch {
	case tag == TagDeliverSend || tag == TagDeliverSave:
		sess.DeliveryMode = domain.DeliverySend
		if tag == TagDeliverSave {
			sess.DeliveryMode = domain.DeliverySave
		}
		f.sessions.Put(userID, sess)
		_ = f.msg.EditText(ctx, chatID, messageID, msgAskSendMode)

	case strings.HasPrefix(tag, qualityPrefix):
		sess.MaxHeight = strings.TrimPrefix(tag, qualityPrefix)
		f.sessions.Put(userID, sess)
		_ = f.msg.EditChoices(ctx, chatID, messageID, msgAskFormat, [][]ports.Button{
			{
				{Label: "🎥 MP4", Tag: string(domain.FormatMP4)},
				{Label: "🎧 MP3", Tag: string(domain.FormatMP3)},
			},
			{
				{Label: "⭐ Best", Tag: string(domain.FormatBest)},
			},
		})

	default:
		format, valid := domain.ParseFormat(tag)
		if !valid {
			f.logger.Warn("unknown callback tag", zap.Int64("user_id", userID), zap.String("tag", tag))
			return
		}
		f.launch(ctx, userID, chatID, messageID, sess, format)
	}
}

// Cancel handles /cancel: a running job is signaled through the registry,
// otherwise any half-built selection is dropped so the user starts fresh.
func (f *Flow) Cancel(ctx context.Context, userID, chatID int64) {
	if f.registry.Cancel(userID) {
		_ = f.msg.SendText(ctx, chatID, msgCancelled)
		return
	}
	f.sessions.Clear(userID)
	_ = f.msg.SendText(ctx, chatID, msgNoDownload)
}

func (f *Flow) launch(ctx context.Context, userID, chatID int64, messageID int, sess *domain.UserSession, format domain.Format) {
	// Completeness is re-checked right before every launch.
	if !sess.Complete() {
		f.expireEdit(ctx, userID, chatID, messageID)
		return
	}

	_ = f.msg.EditText(ctx, chatID, messageID, msgDownloading)

	req := domain.NewJobRequest(userID, sess, format, f.workdirs.UserDir(userID))
	if err := f.starter.Start(ctx, req, chatID, messageID); err != nil {
		f.logger.Warn("launch failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (f *Flow) expire(ctx context.Context, userID, chatID int64) {
	f.sessions.Clear(userID)
	_ = f.msg.SendText(ctx, chatID, msgExpired)
}

func (f *Flow) expireEdit(ctx context.Context, userID, chatID int64, messageID int) {
	f.sessions.Clear(userID)
	_ = f.msg.EditText(ctx, chatID, messageID, msgExpired)
}
