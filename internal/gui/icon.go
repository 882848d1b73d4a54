package gui

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconSVG []byte

var appIcon = fyne.NewStaticResource("sightwords.svg", iconSVG)

// GetAppIcon returns the window and application icon
func GetAppIcon() fyne.Resource {
	return appIcon
}
