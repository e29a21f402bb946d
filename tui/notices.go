package tui

import (
	"fmt"
	"sync"
)

// Notices collects the user-visible load events from the coordinator
// so the view can render them as a status toast. It implements
// catalog.Notifier.
type Notices struct {
	mu   sync.Mutex
	last string
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) LoadComplete(region string, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = fmt.Sprintf("All %d Pokémon from %s loaded", count, region)
}

func (n *Notices) LoadFailed(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = fmt.Sprintf("Load failed: %v (scroll again to retry)", err)
}

// Latest returns the most recent notice, "" when there is none.
func (n *Notices) Latest() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Clear drops the current notice.
func (n *Notices) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = ""
}
