package pad

import "DrawPad/internal/input"

// EventKind names a stroke notification.
type EventKind int

const (
	BeginStroke EventKind = iota
	BeforeUpdateStroke
	AfterUpdateStroke
	EndStroke
)

func (k EventKind) String() string {
	switch k {
	case BeginStroke:
		return "beginStroke"
	case BeforeUpdateStroke:
		return "beforeUpdateStroke"
	case AfterUpdateStroke:
		return "afterUpdateStroke"
	case EndStroke:
		return "endStroke"
	}
	return "unknown"
}

type listener struct {
	fn func(input.Event)
}

type emitter struct {
	listeners map[EventKind][]*listener
}

// on registers fn and returns a function that removes it.
func (e *emitter) on(kind EventKind, fn func(input.Event)) func() {
	if e.listeners == nil {
		e.listeners = make(map[EventKind][]*listener)
	}
	l := &listener{fn: fn}
	e.listeners[kind] = append(e.listeners[kind], l)
	return func() {
		ls := e.listeners[kind]
		for i, x := range ls {
			if x == l {
				e.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

func (e *emitter) emit(kind EventKind, ev input.Event) {
	// copy so listeners may unsubscribe while being called
	ls := append([]*listener(nil), e.listeners[kind]...)
	for _, l := range ls {
		l.fn(ev)
	}
}

func (e *emitter) reset() {
	e.listeners = nil
}
