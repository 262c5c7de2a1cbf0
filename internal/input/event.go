// Package input normalizes pointer, mouse and touch device streams into the
// single event shape the pad consumes.
package input

// Family identifies a device event family.
type Family int

const (
	FamilyPointer Family = iota
	FamilyMouse
	FamilyTouch
)

func (f Family) String() string {
	switch f {
	case FamilyPointer:
		return "pointer"
	case FamilyMouse:
		return "mouse"
	case FamilyTouch:
		return "touch"
	}
	return "unknown"
}

// Event is the canonical sample handed to a Sink. Coordinates are client
// coordinates; the pad converts them to surface coordinates.
type Event struct {
	Family   Family
	ClientX  float64
	ClientY  float64
	Pressure float64
}

// Phase is the position of a raw event within a gesture.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

// PointerEvent is a raw pointer-family event. OnSurface is false when the
// event was delivered to the document rather than the drawing surface.
type PointerEvent struct {
	Phase     Phase
	ClientX   float64
	ClientY   float64
	Pressure  float64
	OnSurface bool
}

// MouseButtons is a bit set of held mouse buttons.
type MouseButtons uint

const (
	ButtonPrimary MouseButtons = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

// MouseEvent is a raw mouse-family event. Button is the button that changed
// state, Buttons the set held after the change.
type MouseEvent struct {
	Phase   Phase
	ClientX float64
	ClientY float64
	Button  MouseButtons
	Buttons MouseButtons
}

// Touch is one contact point.
type Touch struct {
	ClientX float64
	ClientY float64
	Force   float64
}

// TouchEvent is a raw touch-family event. Targets holds the contacts that
// started on the surface, Changed the contacts this event is about.
type TouchEvent struct {
	Phase     Phase
	Targets   []Touch
	Changed   []Touch
	OnSurface bool
}

func (e PointerEvent) canonical() Event {
	return Event{Family: FamilyPointer, ClientX: e.ClientX, ClientY: e.ClientY, Pressure: e.Pressure}
}

func (e MouseEvent) canonical() Event {
	return Event{Family: FamilyMouse, ClientX: e.ClientX, ClientY: e.ClientY}
}

func (t Touch) canonical() Event {
	return Event{Family: FamilyTouch, ClientX: t.ClientX, ClientY: t.ClientY, Pressure: t.Force}
}
