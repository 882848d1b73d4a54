package gui

import (
	"math"
	"unicode/utf8"

	"fyne.io/fyne/v2"
)

// Grid and window sizing bounds
const (
	MinColumns = 3
	MaxColumns = 8

	MaxWindowWidth  = 1280
	MaxWindowHeight = 900
	MinWindowWidth  = 480
	MinWindowHeight = 360

	minButtonWidth = 140
	buttonHeight   = 80
	gridSpacing    = 8
	windowPadding  = 32

	// rough width of one bold glyph at WordTextSize
	charWidth    = 22
	// menu, toolbar and score row
	windowChrome = 120
)

// GridColumns picks a column count that keeps the board slightly wider
// than tall.
func GridColumns(n int) int {
	if n <= 0 {
		return MinColumns
	}
	cols := int(math.Ceil(math.Sqrt(float64(n) * 1.5)))
	return min(max(cols, MinColumns), MaxColumns)
}

// GridRows returns how many rows n buttons need in cols columns
func GridRows(n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// ButtonSize returns the tile size that fits the longest word
func ButtonSize(longest string) fyne.Size {
	width := max(minButtonWidth, utf8.RuneCountInString(longest)*charWidth+48)
	return fyne.NewSize(float32(width), buttonHeight)
}

// WindowSize derives the window size for n words, clamped to the bounds
func WindowSize(n int, longest string) fyne.Size {
	cols := GridColumns(n)
	rows := max(GridRows(n, cols), 1)
	btn := ButtonSize(longest)

	width := float32(cols)*(btn.Width+gridSpacing) + windowPadding
	height := float32(rows)*(btn.Height+gridSpacing) + windowChrome + windowPadding

	width = min(max(width, MinWindowWidth), MaxWindowWidth)
	height = min(max(height, MinWindowHeight), MaxWindowHeight)

	return fyne.NewSize(width, height)
}
