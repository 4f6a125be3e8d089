package widget

// Gallery couples a Slider with its zoom Modal. The modal has no public
// entry point of its own: the only way to open it is activating the
// slider's active slide, and the source is copied by value at that moment.
type Gallery struct {
	Slider *Slider
	Modal  *Modal
}

// NewGallery creates a gallery over the given slides with a closed modal.
func NewGallery(slides []Slide) (*Gallery, error) {
	slider, err := NewSlider(slides)
	if err != nil {
		return nil, err
	}
	return &Gallery{Slider: slider, Modal: NewModal()}, nil
}

// ClickSlide handles a pointer activation on the slide at position i. It
// opens the zoom modal only when i is the active slide; clicks on previous
// or upcoming slides do nothing.
func (g *Gallery) ClickSlide(i int) {
	source, ok := g.Slider.Activate(i)
	if !ok {
		return
	}
	g.Modal.Open(source)
}

// Next advances the slider. Navigation is ignored while the modal is open;
// the overlay owns the interaction until it closes.
func (g *Gallery) Next() {
	if g.Modal.IsOpen() {
		return
	}
	g.Slider.Next()
}

// Prev moves the slider back, with the same modal guard as Next.
func (g *Gallery) Prev() {
	if g.Modal.IsOpen() {
		return
	}
	g.Slider.Prev()
}
