package state

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/storage"
)

// SettingChangedMsg reports a stored preference change to the update loop
type SettingChangedMsg struct {
	Key string
}

// Session ties the screen's lifetime to its store subscription and to the
// context of its background lookups.
type Session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	sub     *storage.Subscription
	changes chan string
}

// NewSession subscribes to store. Change callbacks never block the writer;
// changes beyond the buffer are dropped with a warning.
func NewSession(store storage.Provider) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ctx:     ctx,
		cancel:  cancel,
		changes: make(chan string, constants.ChangeBufferSize),
	}
	s.sub = store.Subscribe(func(key string) {
		select {
		case s.changes <- key:
		default:
			logger.Warn("Dropping settings change notification", "key", key)
		}
	})
	return s
}

// Context is cancelled when the session closes
func (s *Session) Context() context.Context {
	return s.ctx
}

// WaitForChange returns a command that delivers the next change. It yields
// nil once the session is closed.
func (s *Session) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case key := <-s.changes:
			return SettingChangedMsg{Key: key}
		case <-s.ctx.Done():
			return nil
		}
	}
}

// Pending returns the number of undelivered changes
func (s *Session) Pending() int {
	return len(s.changes)
}

// Close unsubscribes and cancels the session context. It is safe to call
// more than once.
func (s *Session) Close() {
	s.cancel()
	s.sub.Close()
}
