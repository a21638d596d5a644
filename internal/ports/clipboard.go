package ports

import "errors"

// ErrClipboardUnavailable is returned when no clipboard backend can be reached.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard writes text to the user's clipboard.
type Clipboard interface {
	// Write replaces the clipboard contents with text.
	Write(text string) error
	// Name identifies the backend in logs ("system", "osc52", ...).
	Name() string
}
