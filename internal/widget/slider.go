package widget

import "fmt"

// SlideState is the derived visual state of a slide relative to the slider's
// current position.
type SlideState int

const (
	// StateUpcoming is the default state for slides after the active one.
	StateUpcoming SlideState = iota
	// StateActive marks the single slide at the current index.
	StateActive
	// StatePrevious marks slides strictly before the current index. There is
	// deliberately only one "behind" state - slides two or more positions
	// back look the same as the immediately preceding one.
	StatePrevious
)

// String returns a human-readable name for the slide state
func (st SlideState) String() string {
	switch st {
	case StateActive:
		return "active"
	case StatePrevious:
		return "previous"
	case StateUpcoming:
		return "upcoming"
	default:
		return fmt.Sprintf("SlideState(%d)", st)
	}
}

// Slide is one entry in a Slider. Source identifies the content the zoom
// overlay should display when the slide is activated.
type Slide struct {
	Source string
	Title  string
}

// Slider holds an ordered, fixed sequence of slides and a single current
// position. Navigation stops at the ends; there is no wraparound.
type Slider struct {
	slides []Slide
	index  int
}

// NewSlider creates a slider positioned on the first slide. At least one
// slide is required; an empty slider is a wiring mistake and is rejected so
// the caller can report it once instead of guarding every operation.
func NewSlider(slides []Slide) (*Slider, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("slider requires at least one slide")
	}
	owned := make([]Slide, len(slides))
	copy(owned, slides)
	return &Slider{slides: owned}, nil
}

// Len returns the number of slides.
func (s *Slider) Len() int { return len(s.slides) }

// Index returns the current position, always in [0, Len()-1].
func (s *Slider) Index() int { return s.index }

// Current returns the active slide.
func (s *Slider) Current() Slide { return s.slides[s.index] }

// Slide returns the slide at position i. Out-of-range positions return the
// zero Slide.
func (s *Slider) Slide(i int) Slide {
	if i < 0 || i >= len(s.slides) {
		return Slide{}
	}
	return s.slides[i]
}

// Next advances to the following slide. No-op on the last slide.
func (s *Slider) Next() {
	if s.index < len(s.slides)-1 {
		s.index++
	}
}

// Prev moves back to the preceding slide. No-op on the first slide.
func (s *Slider) Prev() {
	if s.index > 0 {
		s.index--
	}
}

// CanNext reports whether the forward control should be enabled.
func (s *Slider) CanNext() bool { return s.index < len(s.slides)-1 }

// CanPrev reports whether the backward control should be enabled.
func (s *Slider) CanPrev() bool { return s.index > 0 }

// StateOf returns the visual state for the slide at position i.
// Out-of-range positions report StateUpcoming.
func (s *Slider) StateOf(i int) SlideState {
	switch {
	case i == s.index:
		return StateActive
	case i >= 0 && i < s.index:
		return StatePrevious
	default:
		return StateUpcoming
	}
}

// Activate attempts to activate the slide at position i for zooming. Only
// the active slide accepts activation; anything else is a no-op and returns
// ok=false.
func (s *Slider) Activate(i int) (source string, ok bool) {
	if i != s.index {
		return "", false
	}
	return s.slides[s.index].Source, true
}
