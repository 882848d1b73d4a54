package quiz

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"codeberg.org/snonux/sightwords/internal/words"
)

// fakeBoard records the latest state of every button
type fakeBoard struct {
	words      []string
	enabled    map[string]bool
	highlights map[string]Highlight
	scoreText  string
	rebuilds   int
	resets     int
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		enabled:    make(map[string]bool),
		highlights: make(map[string]Highlight),
	}
}

func (b *fakeBoard) Rebuild(words []string) {
	b.rebuilds++
	b.words = append([]string(nil), words...)
	b.enabled = make(map[string]bool, len(words))
	b.highlights = make(map[string]Highlight, len(words))
	for _, w := range words {
		b.enabled[w] = true
	}
}

func (b *fakeBoard) SetEnabled(word string, enabled bool) { b.enabled[word] = enabled }

func (b *fakeBoard) SetHighlight(word string, h Highlight) { b.highlights[word] = h }

func (b *fakeBoard) ResetAll() {
	b.resets++
	for _, w := range b.words {
		b.enabled[w] = true
		b.highlights[w] = HighlightNone
	}
}

func (b *fakeBoard) SetScoreText(text string) { b.scoreText = text }

func (b *fakeBoard) disabled() []string {
	var out []string
	for w, on := range b.enabled {
		if !on {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// fakeSpeaker records what would have been said
type fakeSpeaker struct {
	spoken  []string
	effects []string
}

func (s *fakeSpeaker) Speak(word string)    { s.spoken = append(s.spoken, word) }
func (s *fakeSpeaker) PlayEffect(id string) { s.effects = append(s.effects, id) }

// fakeScheduler is a manual clock; callbacks run only from Advance
type fakeScheduler struct {
	now   time.Duration
	seq   int
	tasks []scheduledTask
}

type scheduledTask struct {
	at  time.Duration
	seq int
	f   func()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) {
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{at: s.now + d, seq: s.seq, f: f})
}

// Advance moves the clock forward, running due tasks in time order,
// including tasks scheduled by other tasks.
func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.at > end {
				continue
			}
			if idx == -1 || t.at < s.tasks[idx].at || (t.at == s.tasks[idx].at && t.seq < s.tasks[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		s.now = task.at
		task.f()
	}
	s.now = end
}

func (s *fakeScheduler) Pending() int { return len(s.tasks) }

type harness struct {
	engine    *Engine
	board     *fakeBoard
	speaker   *fakeSpeaker
	scheduler *fakeScheduler
	catalog   *words.Catalog
}

func newHarness(t *testing.T, texts []string, d Difficulty) *harness {
	t.Helper()

	catalog := words.NewCatalog()
	if err := catalog.Add("Test", texts); err != nil {
		t.Fatalf("catalog.Add: %v", err)
	}

	h := &harness{
		board:     newFakeBoard(),
		speaker:   &fakeSpeaker{},
		scheduler: &fakeScheduler{},
		catalog:   catalog,
	}

	engine, err := New(Config{
		Catalog:    catalog,
		Theme:      "Test",
		Difficulty: d,
		Board:      h.board,
		Speaker:    h.speaker,
		Scheduler:  h.scheduler,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.engine = engine
	return h
}

func wordList(n int) []string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	out := make([]string, n)
	for i := range out {
		out[i] = "w" + string(letters[i%26]) + string(letters[(i/26)%26])
	}
	return out
}
