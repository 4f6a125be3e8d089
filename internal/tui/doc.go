// Package tui implements the interactive busboard terminal interface.
//
// The interface has two screens. The charts screen is a gallery of delay
// charts built from the backend's aggregate data; the arrow keys move
// between slides and the active slide can be zoomed into a full-screen
// overlay with enter or a mouse click. The schedule screen is a query form
// with a stop picker and hour/minute steppers that asks the backend for
// the next scheduled bus per route at the chosen stop and time.
//
// Every screen renders through RenderApplicationContainer so the header,
// footer, and outer border stay consistent.
package tui
