package pasteboard

import (
	"log/slog"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard is the system pasteboard as seen by the poller.
type Clipboard interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current text and image representations. Both are nil
	// when the clipboard is empty or holds only unsupported types.
	Read() (Payload, error)

	// Write replaces the clipboard contents with p.
	Write(p Payload) error
}

// NewSystemClipboard returns the platform clipboard, or a headless no-op
// backend when no display is available (containers, CI, SSH sessions).
// clipboard.Init is called here rather than in init() so commands that
// never touch the clipboard don't log spurious warnings.
func NewSystemClipboard() Clipboard {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessClipboard{}
	}
	return systemClipboard{}
}

type systemClipboard struct{}

func (systemClipboard) Name() string { return "system clipboard" }

func (systemClipboard) Read() (Payload, error) {
	return Payload{
		Text:  clipboard.Read(clipboard.FmtText),
		Image: clipboard.Read(clipboard.FmtImage),
	}, nil
}

func (systemClipboard) Write(p Payload) error {
	if len(p.Image) > 0 {
		clipboard.Write(clipboard.FmtImage, p.Image)
		return nil
	}
	clipboard.Write(clipboard.FmtText, p.Text)
	return nil
}

// headlessClipboard keeps writes in memory so activation still round-trips
// through the poller when there is no display server.
type headlessClipboard struct {
	mu      sync.Mutex
	payload Payload
}

func (c *headlessClipboard) Name() string { return "headless (in-memory)" }

func (c *headlessClipboard) Read() (Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload, nil
}

func (c *headlessClipboard) Write(p Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = p
	return nil
}
