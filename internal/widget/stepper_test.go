package widget

import "testing"

// TestNewStepper tests constructor bounds checking and initial clamping
func TestNewStepper(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		initial int
		want    int
		wantErr bool
	}{
		{"Valid: hour field at zero", 0, 23, 0, 0, false},
		{"Valid: minute field mid-range", 0, 59, 30, 30, false},
		{"Valid: initial above max clamps", 0, 23, 99, 23, false},
		{"Valid: initial below min clamps", 0, 23, -5, 0, false},
		{"Valid: single-value range", 7, 7, 7, 7, false},
		{"Invalid: min above max", 10, 5, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStepper(tt.min, tt.max, tt.initial)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStepper(%d, %d, %d) error = %v, wantErr %v",
					tt.min, tt.max, tt.initial, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if s.Value() != tt.want {
				t.Errorf("Value() = %d, want %d", s.Value(), tt.want)
			}
		})
	}
}

// TestStepperIncrementWraparound tests that repeated increments cycle the
// full range and wrap from max back to min
func TestStepperIncrementWraparound(t *testing.T) {
	s, err := NewStepper(0, 23, 0)
	if err != nil {
		t.Fatalf("NewStepper() error = %v", err)
	}

	// Walk the whole range once: 0 -> 1 -> ... -> 23 -> 0
	for want := 1; want <= 23; want++ {
		s.Increment()
		if s.Value() != want {
			t.Fatalf("after %d increments Value() = %d, want %d", want, s.Value(), want)
		}
	}

	// Hour field at 23: increment wraps to 0
	s.Increment()
	if s.Value() != 0 {
		t.Errorf("increment at max: Value() = %d, want 0", s.Value())
	}

	// Invariant: always in range over a couple of full cycles
	for i := 0; i < 50; i++ {
		s.Increment()
		if s.Value() < 0 || s.Value() > 23 {
			t.Fatalf("increment left value out of range: %d", s.Value())
		}
	}
}

// TestStepperDecrementWraparound tests wraparound at the lower bound
func TestStepperDecrementWraparound(t *testing.T) {
	s, err := NewStepper(0, 23, 0)
	if err != nil {
		t.Fatalf("NewStepper() error = %v", err)
	}

	// Hour field at 0: decrement wraps to 23
	s.Decrement()
	if s.Value() != 23 {
		t.Errorf("decrement at min: Value() = %d, want 23", s.Value())
	}

	s.Decrement()
	if s.Value() != 22 {
		t.Errorf("Value() = %d, want 22", s.Value())
	}
}

// TestStepperInput tests typed-input clamping and normalization
func TestStepperInput(t *testing.T) {
	tests := []struct {
		name      string
		min, max  int
		raw       string
		want      int
		wantEmpty bool
	}{
		{"In-range value kept", 0, 59, "30", 30, false},
		{"Above max clamps to max", 0, 59, "99", 59, false},
		{"Below min clamps to min", 5, 59, "2", 5, false},
		{"Negative clamps to min", 0, 23, "-3", 0, false},
		{"Non-numeric settles at min", 0, 23, "abc", 0, false},
		{"Partially numeric settles at min", 0, 23, "1x", 0, false},
		{"Empty text leaves field pending", 0, 23, "", 0, true},
		{"Whitespace counts as empty", 0, 23, "  ", 0, true},
		{"Exact max accepted", 0, 23, "23", 23, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStepper(tt.min, tt.max, tt.min)
			if err != nil {
				t.Fatalf("NewStepper() error = %v", err)
			}
			s.Input(tt.raw)
			if s.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", s.IsEmpty(), tt.wantEmpty)
			}
			if !tt.wantEmpty && s.Value() != tt.want {
				t.Errorf("Input(%q): Value() = %d, want %d", tt.raw, s.Value(), tt.want)
			}
		})
	}
}

// TestStepperBlur tests that blur settles pending and out-of-range state
func TestStepperBlur(t *testing.T) {
	t.Run("Blur on cleared field settles at min", func(t *testing.T) {
		s, _ := NewStepper(0, 59, 30)
		s.Input("")
		if !s.IsEmpty() {
			t.Fatal("expected pending state after clearing")
		}
		s.Blur()
		if s.IsEmpty() {
			t.Error("field still pending after blur")
		}
		if s.Value() != 0 {
			t.Errorf("Value() = %d, want 0", s.Value())
		}
	})

	t.Run("Blur on settled field keeps value", func(t *testing.T) {
		s, _ := NewStepper(0, 59, 45)
		s.Blur()
		if s.Value() != 45 {
			t.Errorf("Value() = %d, want 45", s.Value())
		}
	})
}

// TestStepperStepDiscardsPending tests that a step settles a cleared field
func TestStepperStepDiscardsPending(t *testing.T) {
	s, _ := NewStepper(0, 23, 10)
	s.Input("")
	s.Increment()
	if s.IsEmpty() {
		t.Error("field still pending after increment")
	}
	if s.Value() != 11 {
		t.Errorf("Value() = %d, want 11 (step from last settled value)", s.Value())
	}

	s.Input("")
	s.Decrement()
	if s.Value() != 10 {
		t.Errorf("Value() = %d, want 10", s.Value())
	}
}

// TestStepperString tests zero-padded display and pending rendering
func TestStepperString(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		setup    func(*Stepper)
		want     string
	}{
		{"Hour zero-padded", 0, 23, func(s *Stepper) { s.Input("5") }, "05"},
		{"Minute zero-padded", 0, 59, func(s *Stepper) { s.Input("7") }, "07"},
		{"Pending renders empty", 0, 23, func(s *Stepper) { s.Input("") }, ""},
		{"Two digits unchanged", 0, 59, func(s *Stepper) { s.Input("42") }, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := NewStepper(tt.min, tt.max, tt.min)
			tt.setup(s)
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStepperHandle tests the event dispatch table
func TestStepperHandle(t *testing.T) {
	s, _ := NewStepper(0, 59, 59)

	if !s.Handle(Event{Action: ActionIncrement}) {
		t.Error("Handle(increment) = false, want true")
	}
	if s.Value() != 0 {
		t.Errorf("Value() = %d, want 0 after wraparound", s.Value())
	}

	s.Handle(Event{Action: ActionInput, Text: "99"})
	if s.Value() != 59 {
		t.Errorf("Value() = %d, want 59 after clamped input", s.Value())
	}

	s.Handle(Event{Action: ActionInput, Text: ""})
	s.Handle(Event{Action: ActionBlur})
	if s.Value() != 0 {
		t.Errorf("Value() = %d, want 0 after blur on cleared field", s.Value())
	}

	if s.Handle(Event{Action: ActionNext}) {
		t.Error("Handle(next) = true, want false for non-stepper action")
	}
}
