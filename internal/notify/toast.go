package notify

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Toaster shows short-lived messages without blocking the caller.
type Toaster interface {
	Toast(msg string)
}

// NopToaster drops every message.
type NopToaster struct{}

func (NopToaster) Toast(string) {}

const toastTimeoutMs = 1500

// DesktopToaster turns toasts into low-urgency desktop notifications. Each
// toast replaces the previous one so repeated buffering does not pile up.
// At most one toast is in flight; toasts arriving meanwhile are dropped.
type DesktopToaster struct {
	n     Notifier
	title string
	log   zerolog.Logger

	inflight atomic.Bool
	lastID   atomic.Uint32
}

// NewDesktopToaster wraps n. Title is the notification summary.
func NewDesktopToaster(n Notifier, title string, log zerolog.Logger) *DesktopToaster {
	return &DesktopToaster{n: n, title: title, log: log}
}

// Toast sends msg in the background and returns immediately.
func (t *DesktopToaster) Toast(msg string) {
	if !t.inflight.CompareAndSwap(false, true) {
		t.log.Debug().Str("msg", msg).Msg("toast dropped, previous one still pending")
		return
	}
	go t.send(msg)
}

func (t *DesktopToaster) send(msg string) {
	defer t.inflight.Store(false)
	id, err := t.n.Notify(Notification{
		Title:      t.title,
		Body:       msg,
		Timeout:    toastTimeoutMs,
		ReplacesID: t.lastID.Load(),
		Urgency:    UrgencyLow,
	})
	if err != nil {
		t.log.Debug().Err(err).Msg("toast failed")
		return
	}
	t.lastID.Store(id)
}
