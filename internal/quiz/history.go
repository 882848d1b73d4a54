package quiz

import "slices"

// HistorySize is how many recent targets are avoided when picking a word
const HistorySize = 5

// RecentHistory is a bounded FIFO of recently used target words
type RecentHistory struct {
	items    []string
	capacity int
}

// NewRecentHistory creates an empty history holding at most capacity words
func NewRecentHistory(capacity int) *RecentHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &RecentHistory{
		items:    make([]string, 0, capacity+1),
		capacity: capacity,
	}
}

// Push appends a word, evicting the oldest once capacity is exceeded
func (h *RecentHistory) Push(word string) {
	h.items = append(h.items, word)
	if len(h.items) > h.capacity {
		h.items = slices.Delete(h.items, 0, len(h.items)-h.capacity)
	}
}

// Contains reports whether word is among the recent targets
func (h *RecentHistory) Contains(word string) bool {
	return slices.Contains(h.items, word)
}

// Items returns the history oldest first
func (h *RecentHistory) Items() []string {
	return slices.Clone(h.items)
}

// Len returns the number of remembered words
func (h *RecentHistory) Len() int {
	return len(h.items)
}

// Clear forgets every word
func (h *RecentHistory) Clear() {
	h.items = h.items[:0]
}
