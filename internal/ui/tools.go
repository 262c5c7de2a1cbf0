package ui

import (
	"image/color"
	"io"
	"log"

	"DrawPad/internal/pad"
	"DrawPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const eraserWidth = 20.0

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// palette parses the configured swatch colours, skipping bad entries.
func palette(names []string) []color.Color {
	var colors []color.Color
	for _, name := range names {
		c, err := state.ParseColor(name)
		if err != nil {
			log.Printf("Skipping palette colour %q: %v", name, err)
			continue
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		colors = append(colors, color.Black)
	}
	return colors
}

// pen remembers the pen settings while the eraser is selected.
type pen struct {
	color color.Color
	width float64
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, win fyne.Window, swatches []string, signAs string) fyne.CanvasObject {
	colors := palette(swatches)
	last := pen{color: colors[0], width: board.Pad().Options().MaxWidth}
	erasing := false
	board.SetPenColor(last.color)

	strokeSlider := widget.NewSlider(0.5, 50.0)
	strokeSlider.Step = 0.5
	strokeSlider.SetValue(last.width)
	strokeSlider.OnChanged = func(val float64) {
		board.SetMaxWidth(val)
		if !erasing {
			last.width = val
		}
	}

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			erasing = false
			board.SetPenColor(last.color)
			strokeSlider.SetValue(last.width)
		}), // Pen
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			erasing = true
			bg, err := state.ParseColor(board.Pad().Options().BackgroundColor)
			if err != nil || bg.A == 0 {
				bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			board.SetPenColor(bg)
			strokeSlider.SetValue(eraserWidth)
		}), // Eraser
	)

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		erasing = false
		last.color = c
		board.SetPenColor(c)
		strokeSlider.SetValue(last.width)
	}
	colorBox := container.NewHBox()
	for _, c := range colors {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			dialog.ShowConfirm("Clear", "Remove every stroke?", func(ok bool) {
				if ok {
					board.Clear()
				}
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { openDrawing(board, win) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveDrawing(board, win) }),
		widget.NewToolbarAction(theme.DownloadIcon(), func() { exportDrawing(board, win) }),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { importBackground(board, win) }),
	)

	// --- Assemble everything ---
	bar := container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
	)
	if signAs != "" {
		bar.Add(signButton(board, win, signAs))
	}
	return bar
}

// signButton writes name on an empty board.
func signButton(board *BoardWidget, win fyne.Window, name string) *widget.Button {
	return widget.NewButtonWithIcon("Sign as "+name, theme.ConfirmIcon(), func() {
		if !board.Pad().IsEmpty() {
			board.SetStatus("Clear the board to sign as text")
			return
		}
		if err := board.SignAs(name); err != nil {
			dialog.ShowError(err, win)
		}
	})
}

func saveDrawing(board *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := board.Save(w); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFileName("drawing.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func openDrawing(board *BoardWidget, win fyne.Window) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if err := board.Load(r); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func exportDrawing(board *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := board.Export(w, w.URI().Extension()); err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Exported " + w.URI().Name())
	}, win)
	d.SetFileName("drawing.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".svg", ".pdf"}))
	d.Show()
}

func importBackground(board *BoardWidget, win fyne.Window) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Importing " + r.URI().Name())
		board.ImportBackground(pad.EncodeDataURL(r.URI().MimeType(), data), pad.DefaultImportOptions())
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".svg"}))
	d.Show()
}
