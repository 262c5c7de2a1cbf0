package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pointer  []func(PointerEvent)
	mouse    []func(MouseEvent)
	touch    []func(TouchEvent)
	captured bool
}

func (s *fakeSource) AddPointerListener(fn func(PointerEvent)) func() {
	s.pointer = append(s.pointer, fn)
	return func() { s.pointer = nil }
}

func (s *fakeSource) AddMouseListener(fn func(MouseEvent)) func() {
	s.mouse = append(s.mouse, fn)
	return func() { s.mouse = nil }
}

func (s *fakeSource) AddTouchListener(fn func(TouchEvent)) func() {
	s.touch = append(s.touch, fn)
	return func() { s.touch = nil }
}

func (s *fakeSource) CaptureGestures(v bool) { s.captured = v }

func (s *fakeSource) firePointer(ev PointerEvent) {
	for _, fn := range s.pointer {
		fn(ev)
	}
}

func (s *fakeSource) fireMouse(ev MouseEvent) {
	for _, fn := range s.mouse {
		fn(ev)
	}
}

func (s *fakeSource) fireTouch(ev TouchEvent) {
	for _, fn := range s.touch {
		fn(ev)
	}
}

type call struct {
	kind string
	ev   Event
}

type fakeSink struct{ calls []call }

func (s *fakeSink) StrokeBegin(ev Event)  { s.calls = append(s.calls, call{"begin", ev}) }
func (s *fakeSink) StrokeUpdate(ev Event) { s.calls = append(s.calls, call{"update", ev}) }
func (s *fakeSink) StrokeEnd(ev Event)    { s.calls = append(s.calls, call{"end", ev}) }

func (s *fakeSink) kinds() []string {
	var out []string
	for _, c := range s.calls {
		out = append(out, c.kind)
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		caps Capabilities
		want Family
	}{
		{"pointer desktop", Capabilities{PointerEvents: true, Platform: "windows"}, FamilyPointer},
		{"pointer with touch", Capabilities{PointerEvents: true, TouchEvents: true, Platform: "android"}, FamilyPointer},
		{"ios forces touch", Capabilities{PointerEvents: true, TouchEvents: true, Platform: "ios"}, FamilyTouch},
		{"ipad reports darwin", Capabilities{PointerEvents: true, TouchEvents: true, Platform: "darwin"}, FamilyTouch},
		{"mac without touch", Capabilities{PointerEvents: true, Platform: "darwin"}, FamilyPointer},
		{"touch only", Capabilities{TouchEvents: true, Platform: "linux"}, FamilyTouch},
		{"mouse fallback", Capabilities{Platform: "linux"}, FamilyMouse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.caps))
		})
	}
}

func TestEnableDisable(t *testing.T) {
	src := &fakeSource{}
	a := NewAdapter(src, &fakeSink{}, Capabilities{})
	require.Equal(t, FamilyMouse, a.Family())

	a.Enable()
	a.Enable()
	assert.True(t, a.Enabled())
	assert.Len(t, src.mouse, 1, "enable is idempotent")
	assert.Empty(t, src.pointer)
	assert.Empty(t, src.touch)
	assert.True(t, src.captured)

	a.Disable()
	assert.False(t, a.Enabled())
	assert.Empty(t, src.mouse)
	assert.False(t, src.captured)
}

func TestMouseStroke(t *testing.T) {
	src, sink := &fakeSource{}, &fakeSink{}
	a := NewAdapter(src, sink, Capabilities{})
	a.Enable()

	src.fireMouse(MouseEvent{Phase: PhaseMove, ClientX: 1})
	src.fireMouse(MouseEvent{Phase: PhaseStart, Button: ButtonSecondary, Buttons: ButtonSecondary})
	assert.Empty(t, sink.calls, "hover and secondary clicks do not draw")

	src.fireMouse(MouseEvent{Phase: PhaseStart, ClientX: 1, ClientY: 2, Button: ButtonPrimary, Buttons: ButtonPrimary})
	src.fireMouse(MouseEvent{Phase: PhaseMove, ClientX: 5, ClientY: 6, Buttons: ButtonPrimary})
	src.fireMouse(MouseEvent{Phase: PhaseEnd, ClientX: 9, ClientY: 9, Button: ButtonPrimary})
	src.fireMouse(MouseEvent{Phase: PhaseEnd, ClientX: 9, ClientY: 9, Button: ButtonPrimary})

	assert.Equal(t, []string{"begin", "update", "end"}, sink.kinds())
	assert.Equal(t, Event{Family: FamilyMouse, ClientX: 1, ClientY: 2}, sink.calls[0].ev)
}

func TestPointerStroke(t *testing.T) {
	src, sink := &fakeSource{}, &fakeSink{}
	a := NewAdapter(src, sink, Capabilities{PointerEvents: true})
	a.Enable()

	src.firePointer(PointerEvent{Phase: PhaseStart, ClientX: 3, ClientY: 4, Pressure: 0.5, OnSurface: true})
	src.firePointer(PointerEvent{Phase: PhaseMove, ClientX: 6, ClientY: 8, Pressure: 0.6, OnSurface: true})
	src.firePointer(PointerEvent{Phase: PhaseEnd, OnSurface: false})
	src.firePointer(PointerEvent{Phase: PhaseMove, ClientX: 7, ClientY: 9})

	assert.Equal(t, []string{"begin", "update"}, sink.kinds(), "pointer up off the surface ends nothing")
	assert.Equal(t, 0.5, sink.calls[0].ev.Pressure)

	src.firePointer(PointerEvent{Phase: PhaseStart, OnSurface: true})
	src.firePointer(PointerEvent{Phase: PhaseEnd, OnSurface: true})
	assert.Equal(t, []string{"begin", "update", "begin", "end"}, sink.kinds())
}

func TestTouchStroke(t *testing.T) {
	src, sink := &fakeSource{}, &fakeSink{}
	a := NewAdapter(src, sink, Capabilities{TouchEvents: true, Platform: "ios", PointerEvents: true})
	a.Enable()
	require.Equal(t, FamilyTouch, a.Family())

	two := []Touch{{ClientX: 1}, {ClientX: 2}}
	src.fireTouch(TouchEvent{Phase: PhaseStart, Targets: two, Changed: two[1:], OnSurface: true})
	assert.Empty(t, sink.calls, "second finger does not begin a stroke")

	one := []Touch{{ClientX: 10, ClientY: 20, Force: 0.3}}
	src.fireTouch(TouchEvent{Phase: PhaseStart, Targets: one, Changed: one, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseMove, Targets: []Touch{{ClientX: 12, ClientY: 22, Force: 0.4}}, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseEnd, Changed: []Touch{{ClientX: 13, ClientY: 23}}, OnSurface: true})

	require.Equal(t, []string{"begin", "update", "end"}, sink.kinds())
	assert.Equal(t, Event{Family: FamilyTouch, ClientX: 10, ClientY: 20, Pressure: 0.3}, sink.calls[0].ev)
	assert.Equal(t, 0.4, sink.calls[1].ev.Pressure)
}

func TestTouchPanDoesNotDraw(t *testing.T) {
	src, sink := &fakeSource{}, &fakeSink{}
	a := NewAdapter(src, sink, Capabilities{TouchEvents: true, Platform: "android"})
	a.Enable()

	two := []Touch{{ClientX: 1, ClientY: 1}, {ClientX: 40, ClientY: 40}}
	src.fireTouch(TouchEvent{Phase: PhaseStart, Targets: two, Changed: two, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseMove, Targets: []Touch{{ClientX: 5, ClientY: 5}, {ClientX: 44, ClientY: 44}}, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseEnd, Changed: two, OnSurface: true})
	assert.Empty(t, sink.calls)

	// a move after the stroke ended is not a new stroke either
	one := []Touch{{ClientX: 10, ClientY: 10}}
	src.fireTouch(TouchEvent{Phase: PhaseStart, Targets: one, Changed: one, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseEnd, Changed: one, OnSurface: true})
	src.fireTouch(TouchEvent{Phase: PhaseMove, Targets: one, OnSurface: true})
	assert.Equal(t, []string{"begin", "end"}, sink.kinds())
}

func TestDisabledAdapterIgnoresEvents(t *testing.T) {
	src, sink := &fakeSource{}, &fakeSink{}
	a := NewAdapter(src, sink, Capabilities{})
	a.Enable()
	a.Disable()

	src.fireMouse(MouseEvent{Phase: PhaseStart, Button: ButtonPrimary, Buttons: ButtonPrimary})
	assert.Empty(t, sink.calls)
}
