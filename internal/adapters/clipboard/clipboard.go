// Package clipboard provides ports.Clipboard backends: the operating system
// clipboard, the OSC 52 terminal escape sequence, an in-memory buffer for
// tests and a backend that always fails.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// Backend names accepted by New.
const (
	KindSystem = "system"
	KindOSC52  = "osc52"
	KindNone   = "none"
)

// Kinds lists the accepted backend names.
func Kinds() []string {
	return []string{KindSystem, KindOSC52, KindNone}
}

// New returns the backend named by kind. w receives OSC 52 sequences; nil
// means os.Stderr.
func New(kind string, w io.Writer) (ports.Clipboard, error) {
	if w == nil {
		w = os.Stderr
	}
	switch strings.ToLower(kind) {
	case KindSystem, "":
		return NewSystem(NewOSC52(w)), nil
	case KindOSC52:
		return NewOSC52(w), nil
	case KindNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q (want one of %s)", kind, strings.Join(Kinds(), ", "))
	}
}

// System writes to the operating system clipboard. When no clipboard
// utility is available it hands the text to the fallback, if any.
type System struct {
	fallback  ports.Clipboard
	write     func(string) error
	supported func() bool
}

// NewSystem creates the system backend. fallback may be nil.
func NewSystem(fallback ports.Clipboard) *System {
	return &System{
		fallback:  fallback,
		write:     clipboard.WriteAll,
		supported: func() bool { return !clipboard.Unsupported },
	}
}

// Write implements ports.Clipboard.
func (s *System) Write(text string) error {
	if !s.supported() {
		if s.fallback != nil {
			return s.fallback.Write(text)
		}
		return ports.ErrClipboardUnavailable
	}
	if err := s.write(text); err != nil {
		if s.fallback != nil {
			return s.fallback.Write(text)
		}
		return fmt.Errorf("%w: %w", ports.ErrClipboardUnavailable, err)
	}
	return nil
}

// Name implements ports.Clipboard.
func (s *System) Name() string {
	return KindSystem
}

// OSC52 asks the terminal emulator to set the clipboard. It works over SSH
// but gives no confirmation that the terminal honoured the request.
type OSC52 struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOSC52 creates an OSC 52 backend writing to w.
func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{w: w}
}

// Write implements ports.Clipboard.
func (o *OSC52) Write(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.w); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrClipboardUnavailable, err)
	}
	return nil
}

// Name implements ports.Clipboard.
func (o *OSC52) Name() string {
	return KindOSC52
}

// Memory keeps copied text in memory.
type Memory struct {
	mu      sync.Mutex
	history []string
	err     error
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// FailWith makes subsequent writes return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Write implements ports.Clipboard.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.history = append(m.history, text)
	return nil
}

// Name implements ports.Clipboard.
func (m *Memory) Name() string {
	return "memory"
}

// Last returns the most recent write, or "" if nothing was copied.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return ""
	}
	return m.history[len(m.history)-1]
}

// History returns every successful write in order.
func (m *Memory) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// Nop is a disabled clipboard.
type Nop struct{}

// Write always fails with ports.ErrClipboardUnavailable.
func (Nop) Write(string) error {
	return ports.ErrClipboardUnavailable
}

// Name implements ports.Clipboard.
func (Nop) Name() string {
	return KindNone
}

var (
	_ ports.Clipboard = (*System)(nil)
	_ ports.Clipboard = (*OSC52)(nil)
	_ ports.Clipboard = (*Memory)(nil)
	_ ports.Clipboard = Nop{}
)
