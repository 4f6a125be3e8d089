package widget

import (
	"fmt"
	"strconv"
	"strings"
)

// Stepper is a bounded integer field with increment/decrement controls.
// Stepping wraps at the bounds; typed input clamps instead. The zero value is
// not usable - construct with NewStepper.
type Stepper struct {
	min   int
	max   int
	value int

	// empty marks a pending cleared field: the user wiped the text and has
	// not typed a replacement yet. A pending field has no settled value
	// until the next step or blur.
	empty bool
}

// NewStepper creates a stepper with inclusive bounds. The initial value is
// clamped into range. Returns an error when min > max, which is a wiring
// mistake by the caller, not a user input problem.
func NewStepper(min, max, initial int) (*Stepper, error) {
	if min > max {
		return nil, fmt.Errorf("invalid stepper bounds: min %d > max %d", min, max)
	}
	s := &Stepper{min: min, max: max}
	s.value = s.clamp(initial)
	return s, nil
}

// Min returns the lower bound.
func (s *Stepper) Min() int { return s.min }

// Max returns the upper bound.
func (s *Stepper) Max() int { return s.max }

// Value returns the current settled value. While the field is pending
// (cleared), the last settled value is reported; callers that care should
// check IsEmpty.
func (s *Stepper) Value() int { return s.value }

// IsEmpty reports whether the field is pending after being cleared.
func (s *Stepper) IsEmpty() bool { return s.empty }

// Increment advances the value by one, wrapping from max back to min.
// Any pending cleared state is discarded; the result is always settled.
func (s *Stepper) Increment() {
	if s.empty {
		// Step from the last settled value, discarding the pending state.
		s.empty = false
	}
	if s.value >= s.max {
		s.value = s.min
		return
	}
	s.value++
}

// Decrement moves the value down by one, wrapping from min to max.
func (s *Stepper) Decrement() {
	if s.empty {
		s.empty = false
	}
	if s.value <= s.min {
		s.value = s.max
		return
	}
	s.value--
}

// Input applies typed text to the field.
//
// Empty text leaves the field pending so the user can clear and retype.
// Text that parses as an integer is clamped into range immediately - typing
// 99 into a 0-59 field settles at 59, there is no wraparound for typed
// values. Text that does not parse settles at the lower bound.
func (s *Stepper) Input(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.empty = true
		return
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		s.value = s.min
		s.empty = false
		return
	}

	s.value = s.clamp(n)
	s.empty = false
}

// Blur settles the field when focus leaves it: a pending cleared field falls
// back to the lower bound, anything else is re-clamped into range.
func (s *Stepper) Blur() {
	if s.empty {
		s.value = s.min
		s.empty = false
		return
	}
	s.value = s.clamp(s.value)
}

// String renders the settled value zero-padded to the width of the upper
// bound, or "" while the field is pending.
func (s *Stepper) String() string {
	if s.empty {
		return ""
	}
	width := len(strconv.Itoa(s.max))
	return fmt.Sprintf("%0*d", width, s.value)
}

func (s *Stepper) clamp(n int) int {
	if n < s.min {
		return s.min
	}
	if n > s.max {
		return s.max
	}
	return n
}
