// Package widget implements the interactive state machines behind the
// busboard TUI: a bounded numeric stepper, a chart slider, and a zoom
// overlay.
//
// The widgets are deliberately free of any UI-framework types. Each one is a
// plain struct with an explicit constructor and synchronous transition
// methods, so the exact interaction rules (wraparound vs. clamping, slide
// visual states, overlay lifecycle) can be unit tested in isolation. The TUI
// screens in internal/tui own the rendering and translate key and mouse
// events into these transitions.
//
// # Stepper
//
// A bounded integer field with increment/decrement controls. Button-style
// stepping wraps at the bounds (23 → 0 for an hour field), which makes
// cyclically scrubbing through a time range fast. Typed input instead clamps
// to the nearest bound, since wrapping a directly entered out-of-range number
// would be surprising. Clearing the field leaves it pending until the next
// step or blur settles it.
//
// # Slider
//
// An ordered sequence of slides with a single active position. Navigation
// stops at the ends (no wraparound), and each slide derives a visual state
// from its position relative to the active one: active, previous (strictly
// before), or upcoming. Only the active slide can be activated for zooming.
//
// # Modal
//
// A single zoom overlay mirroring the active slide. It copies the slide
// source by value at open time, suppresses background scrolling while open,
// and closes on an explicit control, a backdrop press, or a cancel signal.
//
// All invalid input is silently normalized; the only error any widget ever
// returns is a constructor precondition failure (invalid bounds, zero
// slides), which callers report once and then wire no further handlers.
package widget
