package gui

import (
	"codeberg.org/snonux/sightwords/internal/quiz"
)

type shortcut int

const (
	shortcutNone shortcut = iota
	shortcutToggleGame
	shortcutRepeat
	shortcutEasy
	shortcutMedium
	shortcutHard
	shortcutHelp
	shortcutQuit
)

// shortcutFor maps a typed character to its action
func shortcutFor(r rune) shortcut {
	switch r {
	case 'g', 'G':
		return shortcutToggleGame
	case 'r', 'R', ' ':
		return shortcutRepeat
	case '1':
		return shortcutEasy
	case '2':
		return shortcutMedium
	case '3':
		return shortcutHard
	case 'h', 'H', '?':
		return shortcutHelp
	case 'q', 'Q':
		return shortcutQuit
	default:
		return shortcutNone
	}
}

// difficulty returns the level chosen by a difficulty shortcut
func (s shortcut) difficulty() (quiz.Difficulty, bool) {
	switch s {
	case shortcutEasy:
		return quiz.Easy, true
	case shortcutMedium:
		return quiz.Medium, true
	case shortcutHard:
		return quiz.Hard, true
	default:
		return 0, false
	}
}

const hotkeysHelp = `## Game
**g** Start or stop the game  
**r** or **Space** Repeat the word  

## Difficulty
**1** Easy  
**2** Medium  
**3** Hard  

## Help
**h** Show hotkeys  
**c** Close dialog  
**q** Quit application  

---
Outside a game, click any word to hear it.`
