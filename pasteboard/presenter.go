package pasteboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrOutOfRange is returned when an index falls outside the current snapshot.
var ErrOutOfRange = errors.New("index out of range")

// Source is the polling engine the presenter reads from: an ordered,
// most-recent-first list plus a notification each time it changes.
type Source interface {
	// Start begins polling. Called at most once by the presenter.
	Start(ctx context.Context) error
	// Items returns the current list. The caller must not modify it.
	Items() []Item
	// Changes receives a value after each list change. Notifications may
	// be coalesced.
	Changes() <-chan struct{}
	// Promote pushes the item at index back onto the live pasteboard.
	Promote(index int) error
}

// Snapshot is one complete ordered list as observed at a single change.
type Snapshot struct {
	Seq   uint64
	Items []Item
}

// Len returns the number of items in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Items)
}

// Presenter bridges a Source into an indexable view plus a coalescing change
// signal. Readers always see a complete snapshot; the signal is sent only
// after the snapshot it announces is visible.
type Presenter struct {
	src     Source
	current atomic.Pointer[Snapshot]
	changes chan Snapshot

	// Serializes publish so seq order matches channel order.
	mu  sync.Mutex
	seq uint64

	start    sync.Once
	startErr error
}

// NewPresenter returns a presenter over src with an empty snapshot.
func NewPresenter(src Source) *Presenter {
	p := &Presenter{
		src:     src,
		changes: make(chan Snapshot, 1),
	}
	p.current.Store(&Snapshot{})
	return p
}

// StartPolling starts the source and begins forwarding its changes until ctx
// is done. Safe to call repeatedly; only the first call has any effect and
// every call returns its result.
func (p *Presenter) StartPolling(ctx context.Context) error {
	p.start.Do(func() {
		if err := p.src.Start(ctx); err != nil {
			p.startErr = fmt.Errorf("starting pasteboard source: %w", err)
			return
		}
		p.refresh()
		go p.forward(ctx)
	})
	return p.startErr
}

// forward republishes the source's list on every notification.
func (p *Presenter) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-p.src.Changes():
			if !ok {
				return
			}
			p.refresh()
		}
	}
}

// refresh copies the source's list into a new snapshot and announces it.
func (p *Presenter) refresh() {
	src := p.src.Items()
	items := make([]Item, len(src))
	copy(items, src)
	p.publish(items)
}

func (p *Presenter) publish(items []Item) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	snap := &Snapshot{Seq: p.seq, Items: items}
	p.current.Store(snap)

	// Replace any unconsumed snapshot: consumers only want the latest.
	select {
	case p.changes <- *snap:
	default:
		select {
		case <-p.changes:
		default:
		}
		p.changes <- *snap
	}
	slog.Debug("pasteboard snapshot", "seq", snap.Seq, "items", len(items))
}

// Changes receives the latest snapshot after each change. A snapshot that
// has not been received is replaced by newer ones.
func (p *Presenter) Changes() <-chan Snapshot {
	return p.changes
}

// Snapshot returns the current snapshot.
func (p *Presenter) Snapshot() Snapshot {
	return *p.current.Load()
}

// TotalItems returns the size of the current snapshot.
func (p *Presenter) TotalItems() int {
	return p.current.Load().Len()
}

// ItemAt returns the item at index in the current snapshot.
func (p *Presenter) ItemAt(index int) (Item, error) {
	return p.current.Load().ItemAt(index)
}

// ItemAt returns the item at index or ErrOutOfRange.
func (s Snapshot) ItemAt(index int) (Item, error) {
	if index < 0 || index >= len(s.Items) {
		return nil, fmt.Errorf("item %d of %d: %w", index, len(s.Items), ErrOutOfRange)
	}
	return s.Items[index], nil
}

// Activate asks the source to make the item at index the newest pasteboard
// entry. The reordering shows up in a later snapshot. An index that is no
// longer in range is ignored.
func (p *Presenter) Activate(index int) {
	if _, err := p.ItemAt(index); err != nil {
		slog.Debug("activate ignored", "index", index, "err", err)
		return
	}
	if err := p.src.Promote(index); err != nil {
		slog.Warn("activate failed", "index", index, "err", err)
	}
}
