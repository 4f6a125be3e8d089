package widget

// Action names a user interaction delivered to a widget. Keeping the
// handler tables explicit (action name to transition function) means the
// embedding UI only ever maps raw key or mouse events to action names, and
// every transition stays testable without a UI framework.
type Action string

const (
	// Stepper actions
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
	ActionInput     Action = "input"
	ActionBlur      Action = "blur"

	// Gallery actions
	ActionNext       Action = "next"
	ActionPrev       Action = "prev"
	ActionClickSlide Action = "click-slide"
	ActionBackdrop   Action = "backdrop"
	ActionClose      Action = "close"
	ActionCancel     Action = "cancel"
)

// Event carries an action plus its payload. Text is used by input events,
// Index by slide clicks; the rest ignore both.
type Event struct {
	Action Action
	Text   string
	Index  int
}

var stepperHandlers = map[Action]func(*Stepper, Event){
	ActionIncrement: func(s *Stepper, _ Event) { s.Increment() },
	ActionDecrement: func(s *Stepper, _ Event) { s.Decrement() },
	ActionInput:     func(s *Stepper, e Event) { s.Input(e.Text) },
	ActionBlur:      func(s *Stepper, _ Event) { s.Blur() },
}

// Handle dispatches an event to the stepper. Unknown actions report false
// so the embedding UI can route them elsewhere.
func (s *Stepper) Handle(e Event) bool {
	h, ok := stepperHandlers[e.Action]
	if !ok {
		return false
	}
	h(s, e)
	return true
}

var galleryHandlers = map[Action]func(*Gallery, Event){
	ActionNext:       func(g *Gallery, _ Event) { g.Next() },
	ActionPrev:       func(g *Gallery, _ Event) { g.Prev() },
	ActionClickSlide: func(g *Gallery, e Event) { g.ClickSlide(e.Index) },
	ActionBackdrop:   func(g *Gallery, _ Event) { g.Modal.Close() },
	ActionClose:      func(g *Gallery, _ Event) { g.Modal.Close() },
	ActionCancel:     func(g *Gallery, _ Event) { g.Modal.CancelSignal() },
}

// Handle dispatches an event to the gallery. Unknown actions report false.
func (g *Gallery) Handle(e Event) bool {
	h, ok := galleryHandlers[e.Action]
	if !ok {
		return false
	}
	h(g, e)
	return true
}
