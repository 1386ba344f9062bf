package capture

import (
	"context"
	"time"

	"github.com/atotto/clipboard"

	"github.com/pbaille/snipstack/internal/logging"
)

// DefaultPollInterval is how often the system clipboard is read.
const DefaultPollInterval = 750 * time.Millisecond

// Watcher polls the system clipboard and emits an Event whenever its text
// changes.
type Watcher struct {
	interval time.Duration
	read     func() (string, error)
	last     string
}

// NewWatcher creates a Watcher. read defaults to the system clipboard.
func NewWatcher(interval time.Duration, read func() (string, error)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if read == nil {
		read = clipboard.ReadAll
	}
	return &Watcher{interval: interval, read: read}
}

// Run polls until ctx is done, then closes out.
func (w *Watcher) Run(ctx context.Context, out chan<- Event) {
	defer close(out)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if ev, ok := w.poll(); ok {
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll reads the clipboard once. Empty text and read errors are skipped.
func (w *Watcher) poll() (Event, bool) {
	text, err := w.read()
	if err != nil {
		logging.Debug("clipboard read failed", "err", err)
		return Event{}, false
	}
	if text == "" || text == w.last {
		return Event{}, false
	}
	w.last = text
	return Event{Text: text}, true
}
