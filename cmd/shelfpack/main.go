// ShelfPack - Shelf Bay Planner
//
// A cross-platform desktop application for placing, turning and stacking
// tetromino blocks inside a three-walled shelf bay.
//
// Build:
//   go build -o shelfpack ./cmd/shelfpack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o shelfpack.exe ./cmd/shelfpack
//   GOOS=darwin  GOARCH=amd64 go build -o shelfpack-darwin ./cmd/shelfpack
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/shelfpack/internal/ui"
)

func main() {
	logger := log.New(os.Stderr, "[shelfpack] ", log.LstdFlags)

	application := app.NewWithID("com.piwi3910.shelfpack")
	window := application.NewWindow("ShelfPack - Shelf Bay Planner")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
