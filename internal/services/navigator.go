package services

import "sync"

type pageKey struct {
	adminID   int64
	messageID int64
}

type pageHistory struct {
	back    []string
	current string
	forward []string
}

// Navigator keeps per-report cursor history with browser semantics:
// advancing to a fresh page discards the forward stack, back and
// forward walk the recorded tokens. The empty token is the first page.
// State is keyed by admin and report message so an admin can page two
// reports independently.
type Navigator struct {
	mu    sync.Mutex
	pages map[pageKey]*pageHistory
}

func NewNavigator() *Navigator {
	return &Navigator{pages: make(map[pageKey]*pageHistory)}
}

// Start resets the history of one report to its first page and returns
// the first-page token.
func (n *Navigator) Start(adminID, messageID int64) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pages[pageKey{adminID, messageID}] = &pageHistory{}
	return ""
}

// Advance records a move to the page behind nextToken and returns it.
// Any forward history becomes unreachable and is dropped.
func (n *Navigator) Advance(adminID, messageID int64, nextToken string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := n.history(pageKey{adminID, messageID})
	h.back = append(h.back, h.current)
	h.current = nextToken
	h.forward = nil
	return nextToken
}

// Back steps to the previous page's token. The second return is false
// when the current page is already the first one.
func (n *Navigator) Back(adminID, messageID int64) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := n.history(pageKey{adminID, messageID})
	if len(h.back) == 0 {
		return "", false
	}
	h.forward = append(h.forward, h.current)
	h.current = h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	return h.current, true
}

// Forward re-steps to a page previously left via Back.
func (n *Navigator) Forward(adminID, messageID int64) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := n.history(pageKey{adminID, messageID})
	if len(h.forward) == 0 {
		return "", false
	}
	h.back = append(h.back, h.current)
	h.current = h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	return h.current, true
}

// Drop forgets one report's history, typically when its message is
// closed.
func (n *Navigator) Drop(adminID, messageID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.pages, pageKey{adminID, messageID})
}

func (n *Navigator) history(key pageKey) *pageHistory {
	h, ok := n.pages[key]
	if !ok {
		h = &pageHistory{}
		n.pages[key] = h
	}
	return h
}
