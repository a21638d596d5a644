// Package feedback tracks the transient "Copied!" indicator shown after a
// snippet is placed on the clipboard.
//
// Each snippet id has its own flag. Setting a flag hands out a Token; the
// revert scheduled for that copy only clears the flag if the token is still
// current, so a re-copy extends the window and copies of other snippets
// never cancel each other. Closing the owning view bumps the epoch, which
// turns every outstanding token into a no-op.
package feedback

import (
	"sort"
	"time"
)

// CopyFeedbackWindow is how long a snippet shows as copied.
const CopyFeedbackWindow = 2 * time.Second

// Token identifies one copy event.
type Token struct {
	ID    string
	Gen   uint64
	Epoch uint64
}

// Flags holds per-snippet copied flags. It is not safe for concurrent use;
// Tracker adds locking for callers outside the TUI event loop.
type Flags struct {
	current map[string]uint64
	next    uint64
	epoch   uint64
}

// NewFlags returns an empty flag set.
func NewFlags() *Flags {
	return &Flags{current: make(map[string]uint64)}
}

// Set marks id as copied and returns the token its revert must present.
func (f *Flags) Set(id string) Token {
	if f.current == nil {
		f.current = make(map[string]uint64)
	}
	f.next++
	f.current[id] = f.next
	return Token{ID: id, Gen: f.next, Epoch: f.epoch}
}

// Clear reverts the flag for tok.ID if tok is still the latest copy of that
// id and the flags were not closed since. It reports whether the flag changed.
func (f *Flags) Clear(tok Token) bool {
	if tok.Epoch != f.epoch {
		return false
	}
	gen, ok := f.current[tok.ID]
	if !ok || gen != tok.Gen {
		return false
	}
	delete(f.current, tok.ID)
	return true
}

// IsCopied reports whether id is inside its feedback window.
func (f *Flags) IsCopied(id string) bool {
	_, ok := f.current[id]
	return ok
}

// Copied returns the ids currently flagged, sorted.
func (f *Flags) Copied() []string {
	ids := make([]string, 0, len(f.current))
	for id := range f.current {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close drops every flag and invalidates all outstanding tokens.
func (f *Flags) Close() {
	f.epoch++
	f.current = make(map[string]uint64)
}
