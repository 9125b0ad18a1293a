package tui

import (
	"time"

	"github.com/vovakirdan/lane-rush/internal/core"
)

// Toast display limits
const (
	toastLifetime = 2500 * time.Millisecond
	maxToasts     = 3
)

// Toast is a notice shown for a short wall-clock time.
type Toast struct {
	Level   core.NoticeLevel
	Text    string
	Expires time.Time
}

// ToastQueue keeps the most recent toasts, newest last.
type ToastQueue struct {
	items []Toast
}

// Push adds notices, dropping the oldest beyond the display limit.
func (q *ToastQueue) Push(now time.Time, notices ...core.Notice) {
	for _, n := range notices {
		q.items = append(q.items, Toast{Level: n.Level, Text: n.Text, Expires: now.Add(toastLifetime)})
	}
	if over := len(q.items) - maxToasts; over > 0 {
		q.items = append(q.items[:0], q.items[over:]...)
	}
}

// Prune drops expired toasts.
func (q *ToastQueue) Prune(now time.Time) {
	q.items = q.Visible(now)
}

// Visible returns the toasts that have not expired, without modifying the
// queue.
func (q ToastQueue) Visible(now time.Time) []Toast {
	var out []Toast
	for _, t := range q.items {
		if now.Before(t.Expires) {
			out = append(out, t)
		}
	}
	return out
}
