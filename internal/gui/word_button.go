package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// WordTextSize is the font size of the words on the board
const WordTextSize = 32

// WordButton is a large tappable word tile whose colors are set from
// outside. Disabled tiles fade out and ignore taps.
type WordButton struct {
	widget.DisableableWidget

	Word     string
	OnTapped func(word string)

	bg      color.NRGBA
	fg      color.NRGBA
	minSize fyne.Size
}

// NewWordButton creates a button for word
func NewWordButton(word string, bg, fg color.NRGBA, tapped func(string)) *WordButton {
	b := &WordButton{
		Word:     word,
		OnTapped: tapped,
		bg:       bg,
		fg:       fg,
	}
	b.ExtendBaseWidget(b)
	return b
}

// SetColors changes the background and text colors
func (b *WordButton) SetColors(bg, fg color.NRGBA) {
	if b.bg == bg && b.fg == fg {
		return
	}
	b.bg = bg
	b.fg = fg
	b.Refresh()
}

// SetMinSize sets a lower bound for the tile size so every tile on a
// board can share one size
func (b *WordButton) SetMinSize(size fyne.Size) {
	b.minSize = size
	b.Refresh()
}

// colors returns the current background and text colors
func (b *WordButton) colors() (bg, fg color.NRGBA) {
	return b.bg, b.fg
}

// Tapped implements fyne.Tappable
func (b *WordButton) Tapped(*fyne.PointEvent) {
	if b.Disabled() || b.OnTapped == nil {
		return
	}
	b.OnTapped(b.Word)
}

// Cursor implements desktop.Cursorable
func (b *WordButton) Cursor() desktop.Cursor {
	if b.Disabled() {
		return desktop.DefaultCursor
	}
	return desktop.PointerCursor
}

// CreateRenderer implements fyne.Widget
func (b *WordButton) CreateRenderer() fyne.WidgetRenderer {
	b.ExtendBaseWidget(b)

	background := canvas.NewRectangle(b.bg)
	background.CornerRadius = theme.InputRadiusSize() * 2
	background.StrokeWidth = 1

	label := canvas.NewText(b.Word, b.fg)
	label.TextSize = WordTextSize
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Alignment = fyne.TextAlignCenter

	r := &wordButtonRenderer{
		button:     b,
		background: background,
		label:      label,
		objects:    []fyne.CanvasObject{background, label},
	}
	r.applyColors()
	return r
}

type wordButtonRenderer struct {
	button     *WordButton
	background *canvas.Rectangle
	label      *canvas.Text
	objects    []fyne.CanvasObject
}

func (r *wordButtonRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	textSize := r.label.MinSize()
	r.label.Resize(fyne.NewSize(size.Width, textSize.Height))
	r.label.Move(fyne.NewPos(0, (size.Height-textSize.Height)/2))
}

func (r *wordButtonRenderer) MinSize() fyne.Size {
	pad := theme.Padding() * 4
	text := r.label.MinSize()
	return fyne.NewSize(
		max(text.Width+pad*2, r.button.minSize.Width),
		max(text.Height+pad, r.button.minSize.Height),
	)
}

func (r *wordButtonRenderer) Refresh() {
	r.label.Text = r.button.Word
	r.applyColors()
	r.background.Refresh()
	r.label.Refresh()
}

func (r *wordButtonRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *wordButtonRenderer) Destroy() {}

func (r *wordButtonRenderer) applyColors() {
	bg, fg := r.button.bg, r.button.fg
	if r.button.Disabled() {
		bg = fade(bg)
		fg = fade(fg)
	}
	r.background.FillColor = bg
	r.background.StrokeColor = darken(bg)
	r.label.Color = fg
}

// fade makes c mostly transparent
func fade(c color.NRGBA) color.NRGBA {
	c.A = c.A / 4
	return c
}

// darken returns c at 80% brightness for the tile border
func darken(c color.NRGBA) color.NRGBA {
	c.R = uint8(int(c.R) * 4 / 5)
	c.G = uint8(int(c.G) * 4 / 5)
	c.B = uint8(int(c.B) * 4 / 5)
	return c
}
