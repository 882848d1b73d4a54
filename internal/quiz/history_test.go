package quiz

import (
	"slices"
	"testing"
)

func TestRecentHistoryEviction(t *testing.T) {
	h := NewRecentHistory(HistorySize)

	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		h.Push(w)
		if h.Len() > HistorySize {
			t.Fatalf("Len() = %d exceeds capacity", h.Len())
		}
	}

	want := []string{"c", "d", "e", "f", "g"}
	if got := h.Items(); !slices.Equal(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
	if h.Contains("b") {
		t.Error("evicted word still reported as recent")
	}
	if !h.Contains("g") {
		t.Error("latest word missing")
	}
}

func TestRecentHistoryItemsIsCopy(t *testing.T) {
	h := NewRecentHistory(3)
	h.Push("cat")

	items := h.Items()
	items[0] = "dog"
	if !h.Contains("cat") || h.Contains("dog") {
		t.Error("Items() exposed internal storage")
	}
}

func TestRecentHistoryClear(t *testing.T) {
	h := NewRecentHistory(2)
	h.Push("cat")
	h.Push("dog")
	h.Clear()

	if h.Len() != 0 || h.Contains("cat") {
		t.Errorf("Clear() left %v", h.Items())
	}
}

func TestRecentHistoryMinimumCapacity(t *testing.T) {
	h := NewRecentHistory(0)
	h.Push("cat")
	h.Push("dog")
	if got := h.Items(); !slices.Equal(got, []string{"dog"}) {
		t.Errorf("Items() = %v, want [dog]", got)
	}
}
