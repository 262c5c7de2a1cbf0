package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"runtime"

	"DrawPad/internal/input"
	"DrawPad/internal/pad"
	"DrawPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/font/gofont/goitalic"
)

// Change kinds reported through OnChange.
const (
	ChangeStroke = "stroke"
	ChangeUndo   = "undo"
	ChangeClear  = "clear"
	ChangeImport = "import"
	ChangeLoad   = "load"
	ChangeSign   = "sign"
)

// Change describes a finished edit of the drawing.
type Change struct {
	Kind string
	// Image is the drawing as a PNG data URL, empty when nothing is drawn.
	Image   string
	Strokes int
}

// BoardWidget hosts a draw pad: it feeds pointer input to the pad and shows
// the pad's surface.
type BoardWidget struct {
	widget.BaseWidget

	pad     *pad.Pad
	adapter *input.Adapter
	raster  *canvas.Raster

	mouse []*func(input.MouseEvent)
	touch []*func(input.TouchEvent)

	lastPos   fyne.Position
	size      fyne.Size
	statusBar *widget.Label
	readOnly  bool
	// image is the picture set by SetImage, shown again after a resize
	// while nothing has been drawn over it.
	image string

	OnChange func(Change)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)
var _ input.Source = (*BoardWidget)(nil)
var _ pad.Element = (*BoardWidget)(nil)

// BoardOption configures a BoardWidget during creation.
type BoardOption func(*BoardWidget)

// WithReadOnly shows the drawing without listening to input.
func WithReadOnly(readOnly bool) BoardOption {
	return func(b *BoardWidget) {
		b.readOnly = readOnly
	}
}

// NewBoardWidget creates a board drawing with opts.
func NewBoardWidget(opts pad.Options, options ...BoardOption) *BoardWidget {
	b := &BoardWidget{
		statusBar: widget.NewLabel("Ready"),
	}
	for _, o := range options {
		o(b)
	}
	b.pad = pad.New(b, opts, pad.WithDispatcher(fyne.Do))
	b.raster = canvas.NewRaster(func(w, h int) image.Image {
		if img := b.pad.Image(); img != nil && !img.Rect.Empty() {
			return img
		}
		return image.NewUniform(color.Transparent)
	})
	b.raster.SetMinSize(fyne.NewSize(300, 300))

	b.pad.On(pad.AfterUpdateStroke, func(input.Event) { b.raster.Refresh() })
	b.pad.On(pad.EndStroke, func(input.Event) { b.changed(ChangeStroke) })

	b.adapter = input.NewAdapter(b, b.pad, capabilities())
	if b.readOnly {
		b.statusBar.SetText("Read only")
	} else {
		b.adapter.Enable()
		log.Printf("Board input family: %s", b.adapter.Family())
	}

	b.ExtendBaseWidget(b)
	return b
}

func capabilities() input.Capabilities {
	mobileDevice := false
	if fyne.CurrentApp() != nil {
		mobileDevice = fyne.CurrentDevice().IsMobile()
	}
	return input.Capabilities{TouchEvents: mobileDevice, Platform: runtime.GOOS}
}

// Pad returns the engine behind the board.
func (b *BoardWidget) Pad() *pad.Pad {
	return b.pad
}

// Bounds returns the board's box in window coordinates.
func (b *BoardWidget) Bounds() pad.Rect {
	var pos fyne.Position
	if app := fyne.CurrentApp(); app != nil {
		pos = app.Driver().AbsolutePositionForObject(b)
	}
	size := b.Size()
	return pad.Rect{Left: float64(pos.X), Top: float64(pos.Y), Width: float64(size.Width), Height: float64(size.Height)}
}

// PixelRatio returns the scale of the canvas the board is shown on.
func (b *BoardWidget) PixelRatio() float64 {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(b); c != nil {
			return float64(c.Scale())
		}
	}
	return 1
}

// Resize redraws the record at the new size. Imported backgrounds are lost
// unless the board only shows the image given to SetImage.
func (b *BoardWidget) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	if size == b.size {
		return
	}
	b.size = size
	if b.image != "" && !b.pad.CanUndo() {
		b.ImportBackground(b.image, pad.DefaultImportOptions())
		return
	}
	b.pad.FromData(b.pad.ToData(), pad.FromDataOptions{})
	b.raster.Refresh()
}

// ReadOnly reports whether the board ignores input.
func (b *BoardWidget) ReadOnly() bool {
	return b.readOnly
}

// SetStatus shows text in the status bar.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// StatusBar returns the label SetStatus writes to.
func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

func (b *BoardWidget) changed(kind string) {
	b.raster.Refresh()
	if b.OnChange != nil {
		b.OnChange(Change{Kind: kind, Image: b.pad.ToPNG(), Strokes: len(b.pad.ToData())})
	}
}

// SetPenColor changes the colour of the next stroke.
func (b *BoardWidget) SetPenColor(c color.Color) {
	opts := b.pad.Options()
	opts.PenColor = state.ColorString(c)
	b.pad.SetOptions(opts)
}

// SetMaxWidth changes the widest line of the next stroke.
func (b *BoardWidget) SetMaxWidth(w float64) {
	opts := b.pad.Options()
	opts.MaxWidth = w
	if opts.MinWidth > w {
		opts.MinWidth = w
	}
	b.pad.SetOptions(opts)
}

// Undo removes the last stroke.
func (b *BoardWidget) Undo() {
	if !b.pad.CanUndo() {
		b.SetStatus("Nothing to undo")
		return
	}
	b.pad.Undo()
	b.changed(ChangeUndo)
}

// Clear wipes the board.
func (b *BoardWidget) Clear() {
	b.image = ""
	b.pad.Clear()
	b.changed(ChangeClear)
}

// Save writes the stroke record as JSON.
func (b *BoardWidget) Save(w io.Writer) error {
	groups := b.pad.ToData()
	if err := state.NewRecord(groups).Save(w); err != nil {
		return err
	}
	b.SetStatus(fmt.Sprintf("Saved %d strokes", len(groups)))
	return nil
}

// Load replaces the drawing with a record written by Save.
func (b *BoardWidget) Load(r io.Reader) error {
	groups, err := state.Load(r)
	if err != nil {
		return err
	}
	b.image = ""
	b.pad.FromData(groups, pad.FromDataOptions{})
	b.changed(ChangeLoad)
	b.SetStatus(fmt.Sprintf("Loaded %d strokes", len(groups)))
	return nil
}

// Export writes the drawing in the format named by ext.
func (b *BoardWidget) Export(w io.Writer, ext string) error {
	return b.pad.Export(w, ext)
}

// ImportBackground draws the image in dataURL behind future strokes.
func (b *BoardWidget) ImportBackground(dataURL string, opts pad.ImportOptions) *pad.Import {
	im := b.pad.FromDataURL(context.Background(), dataURL, opts)
	go func() {
		<-im.Done()
		fyne.Do(func() {
			if err := im.Err(); err != nil {
				log.Printf("Background import failed: %v", err)
				b.SetStatus("Could not import image")
				return
			}
			b.changed(ChangeImport)
		})
	}()
	return im
}

// SetImage replaces the drawing with the image in dataURL, scaled to fit.
// An empty dataURL clears the board and returns nil.
func (b *BoardWidget) SetImage(dataURL string) *pad.Import {
	if dataURL == "" {
		b.Clear()
		return nil
	}
	b.image = dataURL
	return b.ImportBackground(dataURL, pad.DefaultImportOptions())
}

// SignAs writes name across the board in a script face.
func (b *BoardWidget) SignAs(name string) error {
	if err := b.pad.SignAs(name, goitalic.TTF); err != nil {
		return err
	}
	b.changed(ChangeSign)
	return nil
}

// AddPointerListener is a no-op: Fyne reports mouse and touch separately.
func (b *BoardWidget) AddPointerListener(func(input.PointerEvent)) func() {
	return func() {}
}

func (b *BoardWidget) AddMouseListener(fn func(input.MouseEvent)) func() {
	l := &fn
	b.mouse = append(b.mouse, l)
	return func() { b.mouse = removeListener(b.mouse, l) }
}

func (b *BoardWidget) AddTouchListener(fn func(input.TouchEvent)) func() {
	l := &fn
	b.touch = append(b.touch, l)
	return func() { b.touch = removeListener(b.touch, l) }
}

func removeListener[T any](ls []*T, l *T) []*T {
	for i, x := range ls {
		if x == l {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}

func (b *BoardWidget) emitMouse(ev input.MouseEvent) {
	for _, l := range append([]*func(input.MouseEvent)(nil), b.mouse...) {
		(*l)(ev)
	}
}

func (b *BoardWidget) emitTouch(ev input.TouchEvent) {
	for _, l := range append([]*func(input.TouchEvent)(nil), b.touch...) {
		(*l)(ev)
	}
}

func mouseButton(btn desktop.MouseButton) input.MouseButtons {
	switch btn {
	case desktop.MouseButtonPrimary:
		return input.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonTertiary
	}
	return 0
}

func touchAt(pos fyne.Position) []input.Touch {
	return []input.Touch{{ClientX: float64(pos.X), ClientY: float64(pos.Y)}}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.lastPos = e.AbsolutePosition
	btn := mouseButton(e.Button)
	b.emitMouse(input.MouseEvent{
		Phase:   input.PhaseStart,
		ClientX: float64(e.AbsolutePosition.X),
		ClientY: float64(e.AbsolutePosition.Y),
		Button:  btn,
		Buttons: btn,
	})
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.lastPos = e.AbsolutePosition
	b.emitMouse(input.MouseEvent{
		Phase:   input.PhaseEnd,
		ClientX: float64(e.AbsolutePosition.X),
		ClientY: float64(e.AbsolutePosition.Y),
		Button:  mouseButton(e.Button),
	})
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = e.AbsolutePosition
	x, y := float64(e.AbsolutePosition.X), float64(e.AbsolutePosition.Y)
	b.emitMouse(input.MouseEvent{Phase: input.PhaseMove, ClientX: x, ClientY: y, Buttons: input.ButtonPrimary})
	b.emitTouch(input.TouchEvent{Phase: input.PhaseMove, Targets: touchAt(e.AbsolutePosition), OnSurface: true})
}

// DragEnd closes the stroke when the button is released outside the board.
func (b *BoardWidget) DragEnd() {
	x, y := float64(b.lastPos.X), float64(b.lastPos.Y)
	b.emitMouse(input.MouseEvent{Phase: input.PhaseEnd, ClientX: x, ClientY: y, Button: input.ButtonPrimary})
	b.emitTouch(input.TouchEvent{Phase: input.PhaseEnd, Changed: touchAt(b.lastPos), OnSurface: true})
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.lastPos = e.AbsolutePosition
	t := touchAt(e.AbsolutePosition)
	b.emitTouch(input.TouchEvent{Phase: input.PhaseStart, Targets: t, Changed: t, OnSurface: true})
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	b.lastPos = e.AbsolutePosition
	b.emitTouch(input.TouchEvent{Phase: input.PhaseEnd, Changed: touchAt(e.AbsolutePosition), OnSurface: true})
}

func (b *BoardWidget) TouchCancel(e *mobile.TouchEvent) {
	b.emitTouch(input.TouchEvent{Phase: input.PhaseEnd, Changed: touchAt(b.lastPos), OnSurface: true})
}

// Close stops listening to input and detaches the pad.
func (b *BoardWidget) Close() {
	b.adapter.Disable()
	b.pad.Close()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}
