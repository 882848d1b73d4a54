package gui

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"codeberg.org/snonux/sightwords/internal/quiz"
	"codeberg.org/snonux/sightwords/internal/words"
)

// WindowTitle is shown in the title bar
const WindowTitle = "Learn to Read"

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	config    *Config
	log       zerolog.Logger
	engine    *quiz.Engine
	scheduler quiz.Scheduler

	// Board state
	visual     VisualTheme
	order      []string
	buttons    map[string]*WordButton
	highlights map[string]quiz.Highlight

	// UI elements
	background  *canvas.Rectangle
	grid        *fyne.Container
	scoreLabel  *widget.Label
	statusLabel *widget.Label
	toggleBtn   *ttwidget.Button
	repeatBtn   *ttwidget.Button
	helpBtn     *ttwidget.Button

	// Menus
	mainMenu        *fyne.MainMenu
	gameItem        *fyne.MenuItem
	repeatItem      *fyne.MenuItem
	themeItems      map[string]*fyne.MenuItem
	difficultyItems map[quiz.Difficulty]*fyne.MenuItem
	visualItems     map[string]*fyne.MenuItem

	dialogOpen bool
}

// Config holds GUI application configuration
type Config struct {
	Catalog     *words.Catalog
	WordTheme   string
	Difficulty  quiz.Difficulty
	VisualTheme string
	Speaker     quiz.Speaker
	Logger      zerolog.Logger

	// App defaults to a new Fyne application, Scheduler to a FyneScheduler.
	App       fyne.App
	Scheduler quiz.Scheduler
	Rand      *rand.Rand

	// OnClose runs after the window is closed
	OnClose func()
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog:     words.NewCatalog(),
		WordTheme:   words.DefaultTheme,
		Difficulty:  quiz.Easy,
		VisualTheme: DefaultVisualTheme,
		Logger:      zerolog.Nop(),
	}
}

// New creates the window and the quiz engine behind it
func New(config *Config) (*Application, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Speaker == nil {
		return nil, errors.New("gui: speaker is required")
	}

	// Fill in missing fields with defaults
	defaults := DefaultConfig()
	if config.Catalog == nil {
		config.Catalog = defaults.Catalog
	}
	if config.WordTheme == "" {
		config.WordTheme = defaults.WordTheme
	}
	if config.VisualTheme == "" {
		config.VisualTheme = defaults.VisualTheme
	}

	visual, err := LookupVisualTheme(config.VisualTheme)
	if err != nil {
		return nil, err
	}

	if config.App == nil {
		config.App = app.NewWithID("org.codeberg.snonux.sightwords")
	}
	config.App.SetIcon(GetAppIcon())

	if config.Scheduler == nil {
		config.Scheduler = NewFyneScheduler()
	}

	a := &Application{
		app:        config.App,
		config:     config,
		log:        config.Logger.With().Str("component", "gui").Logger(),
		scheduler:  config.Scheduler,
		visual:     visual,
		buttons:    make(map[string]*WordButton),
		highlights: make(map[string]quiz.Highlight),
	}

	a.setupUI()

	engineLogger := config.Logger
	a.engine, err = quiz.New(quiz.Config{
		Catalog:    config.Catalog,
		Theme:      config.WordTheme,
		Difficulty: config.Difficulty,
		Board:      a,
		Speaker:    config.Speaker,
		Scheduler:  config.Scheduler,
		Rand:       config.Rand,
		Logger:     &engineLogger,
	})
	if err != nil {
		a.window.Close()
		return nil, err
	}

	a.setupMenus()
	a.setupKeyboardShortcuts()
	a.updateGameControls()
	a.updateStatus()

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(WindowTitle)
	a.window.SetIcon(GetAppIcon())

	a.toggleBtn = ttwidget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), a.onToggleGame)
	a.toggleBtn.Importance = widget.HighImportance
	a.repeatBtn = ttwidget.NewButtonWithIcon("Repeat", theme.MediaReplayIcon(), a.onRepeat)
	a.helpBtn = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	a.scoreLabel = widget.NewLabel("")
	a.scoreLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.statusLabel = widget.NewLabel("")

	toolbar := container.NewHBox(
		a.toggleBtn,
		a.repeatBtn,
		layout.NewSpacer(),
		a.scoreLabel,
		layout.NewSpacer(),
		a.helpBtn,
	)

	a.grid = container.New(layout.NewGridLayoutWithColumns(MinColumns))
	a.background = canvas.NewRectangle(a.visual.Background)

	board := container.NewStack(
		a.background,
		container.NewVScroll(container.NewPadded(a.grid)),
	)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		a.statusLabel,
		nil, nil,
		board,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.toggleBtn.SetToolTip("Start game (g)")
	a.repeatBtn.SetToolTip("Repeat word (r)")
	a.helpBtn.SetToolTip("Show hotkeys (h)")

	a.window.SetOnClosed(func() {
		if s, ok := a.scheduler.(*FyneScheduler); ok {
			s.Stop()
		}
		if a.config.OnClose != nil {
			a.config.OnClose()
		}
	})
}

// setupMenus builds the main menu from the catalog and theme lists
func (a *Application) setupMenus() {
	a.gameItem = fyne.NewMenuItem("Start Game", a.onToggleGame)
	a.repeatItem = fyne.NewMenuItem("Repeat Word", a.onRepeat)
	quitItem := fyne.NewMenuItem("Quit", func() { a.window.Close() })
	quitItem.IsQuit = true

	gameMenu := fyne.NewMenu("Game",
		a.gameItem,
		a.repeatItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Keyboard Shortcuts", a.onShowHotkeys),
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	a.themeItems = make(map[string]*fyne.MenuItem)
	themeMenu := fyne.NewMenu("Word Themes")
	for _, name := range a.config.Catalog.Names() {
		item := fyne.NewMenuItem(name, func() { a.onSetWordTheme(name) })
		a.themeItems[name] = item
		themeMenu.Items = append(themeMenu.Items, item)
	}

	a.difficultyItems = make(map[quiz.Difficulty]*fyne.MenuItem)
	difficultyMenu := fyne.NewMenu("Difficulty")
	for _, d := range quiz.Difficulties() {
		item := fyne.NewMenuItem(d.String(), func() { a.onSetDifficulty(d) })
		a.difficultyItems[d] = item
		difficultyMenu.Items = append(difficultyMenu.Items, item)
	}

	a.visualItems = make(map[string]*fyne.MenuItem)
	visualMenu := fyne.NewMenu("Visual Theme")
	for _, name := range VisualThemeNames() {
		item := fyne.NewMenuItem(name, func() { a.onSetVisualTheme(name) })
		a.visualItems[name] = item
		visualMenu.Items = append(visualMenu.Items, item)
	}

	a.mainMenu = fyne.NewMainMenu(gameMenu, themeMenu, difficultyMenu, visualMenu)
	a.window.SetMainMenu(a.mainMenu)
	a.updateMenuChecks()
}

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(a.handleRune)
}

func (a *Application) handleRune(r rune) {
	if a.dialogOpen {
		return
	}

	s := shortcutFor(r)
	switch s {
	case shortcutToggleGame:
		a.onToggleGame()
	case shortcutRepeat:
		a.onRepeat()
	case shortcutHelp:
		a.onShowHotkeys()
	case shortcutQuit:
		a.window.Close()
	default:
		if d, ok := s.difficulty(); ok {
			a.onSetDifficulty(d)
		}
	}
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// Engine exposes the quiz engine driving the board
func (a *Application) Engine() *quiz.Engine {
	return a.engine
}

// Window returns the main window
func (a *Application) Window() fyne.Window {
	return a.window
}

// Button returns the tile for word
func (a *Application) Button(word string) (*WordButton, bool) {
	b, ok := a.buttons[word]
	return b, ok
}

// Rebuild implements quiz.Board
func (a *Application) Rebuild(ws []string) {
	a.order = append([]string(nil), ws...)
	a.buttons = make(map[string]*WordButton, len(ws))
	clear(a.highlights)

	longest := lo.MaxBy(ws, func(x, y string) bool {
		return utf8.RuneCountInString(x) > utf8.RuneCountInString(y)
	})
	size := ButtonSize(longest)

	objects := make([]fyne.CanvasObject, 0, len(ws))
	for _, w := range ws {
		bg, fg := a.visual.ButtonColors(quiz.HighlightNone)
		b := NewWordButton(w, bg, fg, a.onWordTapped)
		b.SetMinSize(size)
		a.buttons[w] = b
		objects = append(objects, b)
	}

	a.grid.Layout = layout.NewGridLayoutWithColumns(GridColumns(len(ws)))
	a.grid.Objects = objects
	a.grid.Refresh()

	a.window.Resize(WindowSize(len(ws), longest))

	a.log.Debug().Int("words", len(ws)).Int("columns", GridColumns(len(ws))).Msg("board rebuilt")
}

// SetEnabled implements quiz.Board
func (a *Application) SetEnabled(word string, enabled bool) {
	b, ok := a.buttons[word]
	if !ok {
		return
	}
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// SetHighlight implements quiz.Board
func (a *Application) SetHighlight(word string, h quiz.Highlight) {
	b, ok := a.buttons[word]
	if !ok {
		return
	}
	a.highlights[word] = h
	b.SetColors(a.visual.ButtonColors(h))
}

// ResetAll implements quiz.Board
func (a *Application) ResetAll() {
	for _, w := range a.order {
		a.SetEnabled(w, true)
		a.SetHighlight(w, quiz.HighlightNone)
	}
}

// SetScoreText implements quiz.Board
func (a *Application) SetScoreText(text string) {
	a.scoreLabel.SetText(text)
	if a.engine != nil {
		a.updateStatus()
	}
}

func (a *Application) onWordTapped(word string) {
	result := a.engine.Submit(word)
	a.log.Debug().Str("word", word).Stringer("result", result).Msg("word tapped")
}

func (a *Application) onToggleGame() {
	a.engine.ToggleGame()
	a.updateGameControls()
}

func (a *Application) onRepeat() {
	a.engine.RepeatCurrentWord()
}

func (a *Application) onSetDifficulty(d quiz.Difficulty) {
	if err := a.engine.SetDifficulty(d); err != nil {
		a.showError(err)
		return
	}
	a.updateMenuChecks()
	a.updateStatus()
}

func (a *Application) onSetWordTheme(name string) {
	if err := a.engine.SetWordTheme(name); err != nil {
		a.showError(err)
		return
	}
	a.updateMenuChecks()
	a.updateStatus()
}

func (a *Application) onSetVisualTheme(name string) {
	t, err := LookupVisualTheme(name)
	if err != nil {
		a.showError(err)
		return
	}

	a.visual = t
	a.background.FillColor = t.Background
	a.background.Refresh()

	for _, w := range a.order {
		a.buttons[w].SetColors(t.ButtonColors(a.highlights[w]))
	}

	a.log.Info().Str("visual_theme", t.Name).Msg("visual theme changed")
	a.updateMenuChecks()
}

// VisualTheme returns the active color scheme
func (a *Application) VisualTheme() VisualTheme {
	return a.visual
}

func (a *Application) updateGameControls() {
	if a.engine.Active() {
		a.toggleBtn.SetText("Stop")
		a.toggleBtn.SetIcon(theme.MediaStopIcon())
		a.toggleBtn.SetToolTip("Stop game (g)")
		a.repeatBtn.Enable()
		if a.gameItem != nil {
			a.gameItem.Label = "Stop Game"
			a.repeatItem.Disabled = false
		}
	} else {
		a.toggleBtn.SetText("Start")
		a.toggleBtn.SetIcon(theme.MediaPlayIcon())
		a.toggleBtn.SetToolTip("Start game (g)")
		a.repeatBtn.Disable()
		if a.gameItem != nil {
			a.gameItem.Label = "Start Game"
			a.repeatItem.Disabled = true
		}
	}

	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func (a *Application) updateMenuChecks() {
	for name, item := range a.themeItems {
		item.Checked = name == a.engine.Theme()
	}
	for d, item := range a.difficultyItems {
		item.Checked = d == a.engine.Difficulty()
	}
	for name, item := range a.visualItems {
		item.Checked = name == a.visual.Name
	}
	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func (a *Application) updateStatus() {
	a.statusLabel.SetText(statusText(a.engine.Snapshot()))
}

// statusText renders the bottom line; the session is shortened to the
// first uuid group so it can be matched against the log.
func statusText(s quiz.Snapshot) string {
	text := fmt.Sprintf("Words: %s · Difficulty: %s", s.Theme, s.Difficulty)
	if !s.Active {
		return text
	}
	session, _, _ := strings.Cut(s.Session, "-")
	return fmt.Sprintf("%s · Round %d · Game %s", text, s.Round, session)
}

func (a *Application) showError(err error) {
	a.log.Error().Err(err).Msg("action failed")
	dialog.ShowError(err, a.window)
}

func (a *Application) onShowHotkeys() {
	if a.dialogOpen {
		return
	}

	content := widget.NewRichTextFromMarkdown(hotkeysHelp)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(360, 360))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)
	a.dialogOpen = true

	// 'c' closes the dialog; other shortcuts stay off while it is open
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if r == 'c' || r == 'C' {
			d.Hide()
		}
	})

	d.SetOnClosed(func() {
		a.dialogOpen = false
		a.setupKeyboardShortcuts()
	})
	d.Show()
}
