package widget

// Modal is the zoom overlay that mirrors the active slide. It holds a copy
// of the slide source taken at open time - not a live reference into the
// slider - so slider navigation while the overlay is up cannot change what
// is displayed.
type Modal struct {
	open   bool
	source string

	// scrollLocked mirrors open: background scrolling is suppressed for
	// exactly as long as the overlay is visible.
	scrollLocked bool
}

// NewModal creates a closed modal.
func NewModal() *Modal {
	return &Modal{}
}

// IsOpen reports whether the overlay is visible.
func (m *Modal) IsOpen() bool { return m.open }

// Source returns the displayed slide source, or "" while closed.
func (m *Modal) Source() string { return m.source }

// ScrollLocked reports whether background scrolling is suppressed.
func (m *Modal) ScrollLocked() bool { return m.scrollLocked }

// Open shows the overlay for the given slide source. Opening with an empty
// source is a no-op: there is nothing to zoom, and inventing a placeholder
// would be worse than ignoring the request.
func (m *Modal) Open(source string) {
	if source == "" {
		return
	}
	m.open = true
	m.source = source
	m.scrollLocked = true
}

// Close hides the overlay, clears the displayed source, and releases the
// scroll lock. Safe to call when already closed.
func (m *Modal) Close() {
	m.open = false
	m.source = ""
	m.scrollLocked = false
}

// CancelSignal handles a global escape/cancel. It closes the overlay only
// while open; a cancel with nothing showing belongs to whoever is behind the
// overlay and must not be swallowed here.
func (m *Modal) CancelSignal() (handled bool) {
	if !m.open {
		return false
	}
	m.Close()
	return true
}
