package tui

import (
	"sync"

	"go-gin-cinema-booking/internal/session"
)

const toastLimit = 5

type Toast struct {
	Level session.Level
	Msg   string
}

// Toasts is the session.Notifier of the kiosk screen. Notifications arrive
// from the load and submit goroutines and are read by View.
type Toasts struct {
	mu        sync.Mutex
	items     []Toast
	dismissed bool
}

func NewToasts() *Toasts {
	return &Toasts{}
}

func (t *Toasts) Notify(level session.Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Level: level, Msg: msg})
	if len(t.items) > toastLimit {
		t.items = t.items[len(t.items)-toastLimit:]
	}
	t.dismissed = false
}

// Last 最新一則尚未關閉的通知
func (t *Toasts) Last() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dismissed || len(t.items) == 0 {
		return Toast{}, false
	}
	return t.items[len(t.items)-1], true
}

func (t *Toasts) All() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

func (t *Toasts) Dismiss() {
	t.mu.Lock()
	t.dismissed = true
	t.mu.Unlock()
}
