package feedback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// ErrClosed is returned by Copy after Close.
var ErrClosed = errors.New("feedback tracker closed")

// Tracker copies text to a clipboard and keeps the copied flag raised for
// the feedback window. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	clip   ports.Clipboard
	clock  ports.Clock
	logger ports.Logger
	window time.Duration
	flags  *Flags
	timers map[string]ports.Timer
	closed bool
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithWindow overrides CopyFeedbackWindow.
func WithWindow(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		t.window = d
	}
}

// NewTracker creates a Tracker writing through cb, scheduling reverts on clk.
func NewTracker(cb ports.Clipboard, clk ports.Clock, logger ports.Logger, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		clip:   cb,
		clock:  clk,
		logger: logger,
		window: CopyFeedbackWindow,
		flags:  NewFlags(),
		timers: make(map[string]ports.Timer),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Copy writes text to the clipboard and raises the flag for id. On failure
// the flag is left untouched and a CLIPBOARD_FAILURE error is returned.
func (t *Tracker) Copy(ctx context.Context, text, id string) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if err := t.clip.Write(text); err != nil {
		t.logger.Warn(ctx, "clipboard write failed",
			ports.F("snippet", id),
			ports.F("backend", t.clip.Name()),
			ports.F("error", err),
		)
		return guide.NewClipboardError(t.clip.Name(), err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}

	tok := t.flags.Set(id)
	if old, ok := t.timers[id]; ok {
		old.Stop()
	}
	t.timers[id] = t.clock.AfterFunc(t.window, func() {
		t.expire(tok)
	})

	t.logger.Debug(ctx, "snippet copied",
		ports.F("snippet", id),
		ports.F("backend", t.clip.Name()),
		ports.F("bytes", len(text)),
	)
	return nil
}

func (t *Tracker) expire(tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.flags.Clear(tok) {
		delete(t.timers, tok.ID)
	}
}

// IsCopied reports whether id is inside its feedback window.
func (t *Tracker) IsCopied(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags.IsCopied(id)
}

// Copied returns the ids currently flagged, sorted.
func (t *Tracker) Copied() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags.Copied()
}

// Close stops every pending revert and clears all flags.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.flags.Close()
}
