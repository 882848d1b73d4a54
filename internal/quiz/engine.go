package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"codeberg.org/snonux/sightwords/internal/words"
)

// Timing of the feedback sequence
const (
	SpeechDelay      = 500 * time.Millisecond
	FeedbackDuration = 1000 * time.Millisecond
	NextRoundDelay   = 1500 * time.Millisecond
)

// Result is the outcome of a Submit call
type Result int

const (
	// NotInGame means the word was pronounced because no game is running.
	NotInGame Result = iota
	Correct
	Incorrect
	// Pending means the round is already solved and the next one has not
	// started yet; the click is ignored.
	Pending
)

func (r Result) String() string {
	switch r {
	case NotInGame:
		return "not-in-game"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Config wires an Engine to its collaborators
type Config struct {
	Catalog    *words.Catalog
	Theme      string
	Difficulty Difficulty

	Board     Board
	Speaker   Speaker
	Scheduler Scheduler

	// Rand drives target and distractor selection. Nil means a time-seeded source.
	Rand   *rand.Rand
	Logger *zerolog.Logger
}

// Snapshot is a read-only view of the game state
type Snapshot struct {
	Active     bool
	Target     string
	Solved     bool
	Score      int
	Difficulty Difficulty
	Theme      string
	Words      []string
	History    []string
	Hidden     []string
	// Rounds counts every round since start; Round only those of the
	// current game session.
	Rounds  int
	Round   int
	Session string
}

// Engine owns the game state and reacts to clicks and timers
type Engine struct {
	catalog   *words.Catalog
	board     Board
	speaker   Speaker
	scheduler Scheduler
	rng       *rand.Rand
	log       zerolog.Logger

	theme string
	set   *words.Set

	active     bool
	session    string
	target     *words.Word
	solved     bool
	score      int
	difficulty Difficulty
	history    *RecentHistory
	hidden     map[string]bool
	rounds     int
	round      int

	// epoch changes whenever a round starts or the game is reset; deferred
	// callbacks carrying an older epoch do nothing.
	epoch uint64
	// flashes tracks the latest highlight per word so an older revert
	// cannot clear a newer highlight.
	flashes  map[string]uint64
	flashSeq uint64
}

// New creates an inactive engine with the configured theme loaded onto the board
func New(cfg Config) (*Engine, error) {
	if cfg.Board == nil {
		return nil, errors.New("quiz: board is required")
	}
	if cfg.Speaker == nil {
		return nil, errors.New("quiz: speaker is required")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New("quiz: scheduler is required")
	}
	if !cfg.Difficulty.Valid() {
		return nil, fmt.Errorf("quiz: %w: %d", ErrInvalidDifficulty, cfg.Difficulty)
	}

	if cfg.Catalog == nil {
		cfg.Catalog = words.NewCatalog()
	}
	if cfg.Theme == "" {
		cfg.Theme = words.DefaultTheme
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>32|1))
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "quiz").Logger()
	}

	set, err := cfg.Catalog.Set(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}

	e := &Engine{
		catalog:    cfg.Catalog,
		board:      cfg.Board,
		speaker:    cfg.Speaker,
		scheduler:  cfg.Scheduler,
		rng:        cfg.Rand,
		log:        logger,
		theme:      cfg.Theme,
		set:        set,
		difficulty: cfg.Difficulty,
		history:    NewRecentHistory(HistorySize),
		flashes:    make(map[string]uint64),
	}

	e.board.Rebuild(set.Texts())
	e.board.ResetAll()
	e.pushScore()

	return e, nil
}

// StartRound picks a new target, hides distractors and schedules the
// target's pronunciation. It does nothing while the game is inactive.
func (e *Engine) StartRound() {
	if !e.active {
		return
	}
	if e.set.Len() == 0 {
		e.log.Warn().Str("theme", e.theme).Msg("no words to quiz on")
		return
	}

	e.epoch++
	epoch := e.epoch

	target := e.pickTarget()
	e.target = target
	e.solved = false
	e.history.Push(target.Text)
	e.hidden = e.pickHidden(target)
	e.rounds++
	e.round++

	for _, w := range e.set.Words() {
		e.flash(w.Text, HighlightNone)
		e.board.SetEnabled(w.Text, !e.hidden[w.Text])
	}

	e.log.Debug().
		Str("session", e.session).
		Int("round", e.rounds).
		Str("target", target.Text).
		Int("hidden", len(e.hidden)).
		Str("difficulty", e.difficulty.String()).
		Msg("round started")

	e.pushScore()

	e.scheduler.AfterFunc(SpeechDelay, func() {
		if !e.current(epoch) {
			return
		}
		e.speaker.Speak(target.Text)
	})
}

// ToggleGame switches game mode on or off. Both directions reset the
// score and the board; switching on starts a round immediately.
func (e *Engine) ToggleGame() {
	e.epoch++
	e.active = !e.active
	e.score = 0
	e.target = nil
	e.solved = false
	e.hidden = nil
	e.round = 0
	if e.active {
		e.session = uuid.NewString()
	}

	e.board.ResetAll()
	e.pushScore()

	if e.active {
		e.log.Info().Str("session", e.session).Str("theme", e.theme).Msg("game started")
		e.StartRound()
		return
	}

	e.log.Info().Str("session", e.session).Int("rounds", e.rounds).Msg("game stopped")
	e.session = ""
}

// Submit handles a click on a word button
func (e *Engine) Submit(word string) Result {
	if !e.active {
		if w, ok := e.set.Lookup(word); ok {
			w.ClickCount++
			e.log.Debug().Str("word", word).Int("clicks", w.ClickCount).Msg("word pronounced")
		}
		e.speaker.Speak(word)
		return NotInGame
	}

	if e.target == nil || e.solved {
		return Pending
	}

	epoch := e.epoch

	if word == e.target.Text {
		e.solved = true
		e.score++
		e.pushScore()
		e.flashFor(word, HighlightCorrect, epoch)
		e.speaker.PlayEffect(EffectCorrect)

		e.log.Debug().Str("session", e.session).Str("word", word).Int("score", e.score).Msg("correct answer")

		e.scheduler.AfterFunc(NextRoundDelay, func() {
			if !e.current(epoch) {
				return
			}
			e.StartRound()
		})
		return Correct
	}

	e.score = 0
	e.pushScore()
	e.flashFor(word, HighlightWrong, epoch)
	e.speaker.PlayEffect(EffectWrong)

	e.log.Debug().Str("session", e.session).Str("word", word).Str("target", e.target.Text).Msg("wrong answer")

	return Incorrect
}

// RepeatCurrentWord pronounces the target again
func (e *Engine) RepeatCurrentWord() {
	if !e.active || e.target == nil {
		return
	}
	e.speaker.Speak(e.target.Text)
}

// SetDifficulty changes the level used from the next round on
func (e *Engine) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
	}
	e.difficulty = d
	e.log.Info().Str("difficulty", d.String()).Msg("difficulty changed")
	return nil
}

// SetWordTheme swaps in another word set. The board is rebuilt and the
// recent history cleared; a running game restarts with a fresh round and
// a zero score.
func (e *Engine) SetWordTheme(name string) error {
	set, err := e.catalog.Set(name)
	if err != nil {
		return err
	}

	e.epoch++
	e.theme = name
	e.set = set
	e.history.Clear()
	e.target = nil
	e.solved = false
	e.hidden = nil
	clear(e.flashes)

	e.board.Rebuild(set.Texts())
	e.board.ResetAll()

	e.log.Info().Str("theme", name).Int("words", set.Len()).Msg("word theme changed")

	if e.active {
		e.score = 0
		e.pushScore()
		e.StartRound()
	}
	return nil
}

// Theme returns the name of the loaded word theme
func (e *Engine) Theme() string {
	return e.theme
}

// Difficulty returns the current level
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Active reports whether game mode is on
func (e *Engine) Active() bool {
	return e.active
}

// Snapshot copies the current state
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Active:     e.active,
		Solved:     e.solved,
		Score:      e.score,
		Difficulty: e.difficulty,
		Theme:      e.theme,
		Words:      e.set.Texts(),
		History:    e.history.Items(),
		Rounds:     e.rounds,
		Round:      e.round,
		Session:    e.session,
	}
	if e.target != nil {
		s.Target = e.target.Text
	}
	s.Hidden = lo.Keys(e.hidden)
	slices.Sort(s.Hidden)
	return s
}

func (e *Engine) current(epoch uint64) bool {
	return e.active && e.epoch == epoch
}

func (e *Engine) pickTarget() *words.Word {
	all := e.set.Words()
	candidates := lo.Filter(all, func(w *words.Word, _ int) bool {
		return !e.history.Contains(w.Text)
	})
	if len(candidates) == 0 {
		candidates = all
	}
	return candidates[e.rng.IntN(len(candidates))]
}

func (e *Engine) pickHidden(target *words.Word) map[string]bool {
	distractors := lo.Without(e.set.Words(), target)
	n := min(HideCount(e.difficulty, e.set.Len()), len(distractors))

	hidden := make(map[string]bool, n)
	for _, i := range e.rng.Perm(len(distractors))[:n] {
		hidden[distractors[i].Text] = true
	}
	return hidden
}

// flashFor highlights word and schedules the revert to theme colors
func (e *Engine) flashFor(word string, h Highlight, epoch uint64) {
	seq := e.flash(word, h)
	e.scheduler.AfterFunc(FeedbackDuration, func() {
		if !e.current(epoch) || e.flashes[word] != seq {
			return
		}
		e.flash(word, HighlightNone)
	})
}

func (e *Engine) flash(word string, h Highlight) uint64 {
	e.flashSeq++
	e.flashes[word] = e.flashSeq
	e.board.SetHighlight(word, h)
	return e.flashSeq
}

func (e *Engine) pushScore() {
	if !e.active {
		e.board.SetScoreText("Game off")
		return
	}
	e.board.SetScoreText(fmt.Sprintf("Score: %d", e.score))
}
