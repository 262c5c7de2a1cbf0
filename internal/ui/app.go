package ui

import (
	"DrawPad/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// NewApp creates the application the board runs in. It must be called
// before NewBoardWidget so the board can query the driver.
func NewApp() fyne.App {
	return app.NewWithID("io.drawpad")
}

// RunApp shows the board and blocks until the window is closed. feedURL, if
// set, is shown in the status bar for viewers to connect to.
func RunApp(a fyne.App, cfg *config.Config, board *BoardWidget, feedURL string) {
	myWindow := a.NewWindow(cfg.Window.Title)
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	// Create the toolbar and pass it a reference to the board
	var toolbar fyne.CanvasObject
	if !board.ReadOnly() {
		toolbar = NewToolbar(board, myWindow, cfg.Window.Palette, cfg.Window.SignAs)
	}

	bottom := container.NewHBox(board.StatusBar())
	if feedURL != "" {
		link := widget.NewEntry()
		link.SetText(feedURL)
		bottom = container.NewBorder(nil, nil, widget.NewLabel("Feed:"), board.StatusBar(), link)
	}

	// Set up the main layout
	content := container.NewBorder(toolbar, bottom, nil, nil, board)

	myWindow.SetContent(content)
	myWindow.SetOnClosed(board.Close)
	myWindow.ShowAndRun()
}
