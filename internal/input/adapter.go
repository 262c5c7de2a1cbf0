package input

import "sync"

// Sink consumes canonical stroke events. The pad implements it.
type Sink interface {
	StrokeBegin(Event)
	StrokeUpdate(Event)
	StrokeEnd(Event)
}

// Source delivers raw device events for one drawing surface. Each Add call
// returns a function that removes the listener.
type Source interface {
	AddPointerListener(func(PointerEvent)) (remove func())
	AddMouseListener(func(MouseEvent)) (remove func())
	AddTouchListener(func(TouchEvent)) (remove func())
}

// GestureCapturer is implemented by sources that can stop the platform from
// panning, zooming or selecting while the adapter is enabled.
type GestureCapturer interface {
	CaptureGestures(bool)
}

// Capabilities describes what the host platform can deliver.
type Capabilities struct {
	PointerEvents bool
	TouchEvents   bool
	// Platform is a GOOS-style name; iPadOS reports "darwin" with touch.
	Platform string
}

// InterceptsPointerEvents reports whether the platform is known to swallow
// pointer events during rapid taps (Apple pencil handwriting recognition).
func (c Capabilities) InterceptsPointerEvents() bool {
	return c.TouchEvents && (c.Platform == "ios" || c.Platform == "darwin")
}

// Select picks the one event family to listen to.
func Select(c Capabilities) Family {
	switch {
	case c.PointerEvents && !c.InterceptsPointerEvents():
		return FamilyPointer
	case c.TouchEvents:
		return FamilyTouch
	}
	return FamilyMouse
}

// Adapter routes the raw events of the selected family to a Sink.
type Adapter struct {
	src    Source
	sink   Sink
	family Family

	mu       sync.Mutex
	removers []func()
	drawing  bool
}

// NewAdapter creates a disabled adapter for src.
func NewAdapter(src Source, sink Sink, caps Capabilities) *Adapter {
	return &Adapter{src: src, sink: sink, family: Select(caps)}
}

// Family returns the selected event family.
func (a *Adapter) Family() Family {
	return a.family
}

// Enabled reports whether listeners are registered.
func (a *Adapter) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.removers != nil
}

// Enable registers the listeners of the selected family. It is a no-op when
// already enabled.
func (a *Adapter) Enable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.removers != nil {
		return
	}

	a.drawing = false
	switch a.family {
	case FamilyPointer:
		a.removers = append(a.removers, a.src.AddPointerListener(a.handlePointer))
	case FamilyTouch:
		a.removers = append(a.removers, a.src.AddTouchListener(a.handleTouch))
	default:
		a.removers = append(a.removers, a.src.AddMouseListener(a.handleMouse))
	}
	if gc, ok := a.src.(GestureCapturer); ok {
		gc.CaptureGestures(true)
	}
}

// Disable removes every listener registered by Enable.
func (a *Adapter) Disable() {
	a.mu.Lock()
	removers := a.removers
	a.removers = nil
	a.drawing = false
	a.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	if removers != nil {
		if gc, ok := a.src.(GestureCapturer); ok {
			gc.CaptureGestures(false)
		}
	}
}

func (a *Adapter) setDrawing(v bool) (was bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	was, a.drawing = a.drawing, v
	return was
}

func (a *Adapter) isDrawing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.drawing
}

func (a *Adapter) handlePointer(ev PointerEvent) {
	switch ev.Phase {
	case PhaseStart:
		a.setDrawing(true)
		a.sink.StrokeBegin(ev.canonical())
	case PhaseMove:
		if a.isDrawing() {
			a.sink.StrokeUpdate(ev.canonical())
		}
	case PhaseEnd:
		// pointer up is observed document wide; only ends on the surface count
		a.setDrawing(false)
		if ev.OnSurface {
			a.sink.StrokeEnd(ev.canonical())
		}
	}
}

func (a *Adapter) handleMouse(ev MouseEvent) {
	switch ev.Phase {
	case PhaseStart:
		if ev.Buttons == ButtonPrimary {
			a.setDrawing(true)
			a.sink.StrokeBegin(ev.canonical())
		}
	case PhaseMove:
		if a.isDrawing() {
			a.sink.StrokeUpdate(ev.canonical())
		}
	case PhaseEnd:
		if ev.Button == ButtonPrimary && a.setDrawing(false) {
			a.sink.StrokeEnd(ev.canonical())
		}
	}
}

func (a *Adapter) handleTouch(ev TouchEvent) {
	switch ev.Phase {
	case PhaseStart:
		// multi-finger gestures never start a stroke
		if len(ev.Targets) == 1 && len(ev.Changed) > 0 {
			a.setDrawing(true)
			a.sink.StrokeBegin(ev.Changed[0].canonical())
		}
	case PhaseMove:
		if len(ev.Targets) > 0 && a.isDrawing() {
			a.sink.StrokeUpdate(ev.Targets[0].canonical())
		}
	case PhaseEnd:
		if a.setDrawing(false) && ev.OnSurface && len(ev.Changed) > 0 {
			a.sink.StrokeEnd(ev.Changed[0].canonical())
		}
	}
}
