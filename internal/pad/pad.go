// Package pad is the draw-pad engine: it turns stroke events into smooth,
// velocity-weighted ink on a raster surface and keeps a lossless vector
// record of every stroke for undo, replay and export.
//
// A Pad is not safe for concurrent use. All calls must come from the
// goroutine that owns the drawing surface; asynchronous work is handed back
// through the dispatcher set with WithDispatcher.
package pad

import (
	"image"

	"DrawPad/internal/geom"
	"DrawPad/internal/ink"
	"DrawPad/internal/input"
	"DrawPad/internal/state"
)

// State is the stroke state of a pad.
type State int

const (
	// Idle means no stroke is being drawn.
	Idle State = iota
	// Tracking means samples are appended to the active point group.
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "idle"
}

// FromDataOptions controls FromData.
type FromDataOptions struct {
	// Merge appends to the current drawing instead of replacing it.
	Merge bool
}

// Pad binds the stroke engine to one drawing surface.
type Pad struct {
	el       Element
	opts     Options
	clock    state.Clock
	decoder  Decoder
	dispatch func(func())
	newID    func() string

	surface  surface
	raster   rasterizer
	record   *state.Record
	tracer   *ink.Tracer
	throttle *throttle
	events   emitter

	state  State
	active int
	empty  bool
	closed bool
}

var _ input.Sink = (*Pad)(nil)

// New creates a pad drawing on el. A nil el is allowed: the pad still
// records strokes but has no pixels to paint or export.
func New(el Element, opts Options, options ...Option) *Pad {
	p := &Pad{
		el:     el,
		opts:   opts.normalize(),
		record: state.NewRecord(nil),
		active: -1,
		newID:  newGroupID,
	}
	for _, o := range options {
		o(p)
	}
	if p.clock == nil {
		p.clock = &state.WallClock{}
	}
	if p.decoder == nil {
		p.decoder = ImageDecoder{}
	}
	p.tracer = ink.NewTracer(p.opts.velocityFilterWeight())
	p.throttle = &throttle{
		interval: p.opts.throttle(),
		nowMs:    p.clock.NowMs,
		fn:       p.strokeUpdate,
	}
	if p.dispatch != nil {
		p.throttle.schedule = afterFuncScheduler(p.dispatch)
	}

	p.Clear()
	return p
}

// Options returns the current configuration.
func (p *Pad) Options() Options {
	return p.opts
}

// SetOptions replaces the configuration. Strokes already recorded keep the
// style and velocity filter weight they were drawn with; the active stroke
// keeps its style too.
func (p *Pad) SetOptions(opts Options) {
	p.opts = opts.normalize()
	p.tracer.SetWeight(p.opts.velocityFilterWeight())
	p.throttle.interval = p.opts.throttle()
}

// State returns whether a stroke is in progress.
func (p *Pad) State() State {
	return p.state
}

// IsEmpty reports whether nothing has been drawn since the last Clear.
func (p *Pad) IsEmpty() bool {
	return p.empty
}

// CanUndo reports whether the record holds at least one stroke.
func (p *Pad) CanUndo() bool {
	return p.record.Len() > 0
}

// ToData returns a copy of the stroke record.
func (p *Pad) ToData() []state.PointGroup {
	return p.record.Groups()
}

// PointCount returns the number of recorded points.
func (p *Pad) PointCount() int {
	return p.record.PointCount()
}

// Image returns the surface pixels. The image is owned by the pad and
// changes as strokes are drawn; callers must not modify it.
func (p *Pad) Image() *image.RGBA {
	return p.surface.img
}

// PixelSize returns the surface size in device pixels.
func (p *Pad) PixelSize() (int, int) {
	return p.surface.pixelSize()
}

// On registers fn for kind and returns a function that removes it.
func (p *Pad) On(kind EventKind, fn func(input.Event)) (remove func()) {
	return p.events.on(kind, fn)
}

// Clear paints the background, empties the record and re-derives the
// surface size from the element's on-screen size and pixel ratio.
func (p *Pad) Clear() {
	p.throttle.cancel()
	p.surface.resize(p.el)
	if p.surface.bound() {
		bg, err := state.ParseColor(p.opts.BackgroundColor)
		if err != nil {
			Logger().Warn("unknown background color, using transparent", "color", p.opts.BackgroundColor, "err", err)
		}
		p.surface.fill(bg)
	}

	p.record.Reset()
	p.reset(p.opts.style())
	p.state = Idle
	p.active = -1
	p.empty = true

	w, h := p.surface.pixelSize()
	Logger().Debug("pad cleared", "width", w, "height", h, "ratio", p.surface.ratio)
}

// Undo removes the last stroke and redraws the rest from the record. It is
// a no-op when there is nothing to undo.
func (p *Pad) Undo() {
	if !p.CanUndo() {
		return
	}
	groups := p.record.Groups()
	p.FromData(groups[:len(groups)-1], FromDataOptions{})
}

// FromData draws groups and adds them to the record, replacing the current
// drawing unless opts.Merge is set.
func (p *Pad) FromData(groups []state.PointGroup, opts FromDataOptions) {
	if !opts.Merge {
		p.Clear()
	} else {
		p.endActive()
	}

	ink.Replayer{Weight: p.opts.velocityFilterWeight(), LeadingDots: true}.Replay(groups, surfaceRenderer{p})
	p.record.Extend(groups)
	p.reset(p.opts.style())

	Logger().Debug("replayed record", "groups", len(groups), "total", p.record.Len())
}

// Close detaches the pad: listeners are dropped and pending samples are
// discarded. The record and pixels stay readable.
func (p *Pad) Close() {
	p.throttle.cancel()
	p.events.reset()
	p.endActive()
	p.closed = true
}

// StrokeBegin starts a stroke with ev as its first sample. A stroke still in
// progress is closed first.
func (p *Pad) StrokeBegin(ev input.Event) {
	if p.closed {
		return
	}
	if p.state == Tracking {
		Logger().Debug("stroke begin while tracking, closing previous stroke")
		p.endActive()
	}
	p.strokeBegin(ev)
}

// StrokeUpdate adds a sample to the current stroke, subject to throttling.
func (p *Pad) StrokeUpdate(ev input.Event) {
	if p.closed {
		return
	}
	p.throttle.call(ev)
}

// StrokeEnd adds ev as the final sample, bypassing the throttle, and
// returns the pad to Idle.
func (p *Pad) StrokeEnd(ev input.Event) {
	if p.closed {
		return
	}
	p.throttle.flush()
	p.strokeUpdate(ev)
	p.endActive()
	p.events.emit(EndStroke, ev)
}

func (p *Pad) strokeBegin(ev input.Event) {
	p.events.emit(BeginStroke, ev)

	style := p.opts.style()
	p.throttle.cancel()
	p.active = p.record.Open(p.newID(), style)
	p.state = Tracking
	p.reset(style)

	p.strokeUpdate(ev)
}

func (p *Pad) strokeUpdate(ev input.Event) {
	if p.state != Tracking {
		// clear() raced with an in-flight stroke
		p.strokeBegin(ev)
		return
	}

	p.events.emit(BeforeUpdateStroke, ev)

	group, ok := p.record.Group(p.active)
	if !ok {
		p.events.emit(AfterUpdateStroke, ev)
		return
	}
	point := p.createPoint(ev)
	last, hasLast := p.record.LastPoint(p.active)

	if !hasLast || point.DistanceTo(last) > p.opts.minDistance() {
		curve, fitted := p.tracer.Add(point)
		switch {
		case !hasLast:
			p.drawDot(point, group.Style)
		case fitted:
			p.drawCurve(curve, group.Style)
		}
		p.record.AppendPoint(p.active, point)
	} else {
		Logger().Debug("dropping sample close to previous point", "x", point.X, "y", point.Y)
	}

	p.events.emit(AfterUpdateStroke, ev)
}

func (p *Pad) endActive() {
	p.throttle.cancel()
	p.state = Idle
	p.active = -1
}

// reset clears the per-stroke session state.
func (p *Pad) reset(style state.Style) {
	p.tracer.Reset(style)
}

func (p *Pad) createPoint(ev input.Event) geom.Point {
	var origin Rect
	if p.el != nil {
		origin = p.el.Bounds()
	}
	return geom.NewPoint(ev.ClientX-origin.Left, ev.ClientY-origin.Top, ev.Pressure, p.clock.NowMs())
}

func (p *Pad) drawCurve(c geom.Curve, style state.Style) {
	if p.raster.drawCurve(&p.surface, c, style) {
		p.empty = false
	}
}

func (p *Pad) drawDot(pt geom.Point, style state.Style) {
	if p.raster.drawDot(&p.surface, pt, style) {
		p.empty = false
	}
}

// surfaceRenderer replays a record onto the pad's surface.
type surfaceRenderer struct {
	p *Pad
}

func (r surfaceRenderer) DrawCurve(c geom.Curve, style state.Style) { r.p.drawCurve(c, style) }
func (r surfaceRenderer) DrawDot(pt geom.Point, style state.Style)  { r.p.drawDot(pt, style) }
