package busapi

import "testing"

func TestValidateHour(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		wantErr bool
	}{
		{"Valid: midnight", 0, false},
		{"Valid: last hour", 23, false},
		{"Valid: midday", 12, false},
		{"Invalid: negative", -1, true},
		{"Invalid: above range", 24, true},
		{"Invalid: far above range", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHour(tt.hour)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHour(%d) error = %v, wantErr %v", tt.hour, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("ValidateHour(%d) returned non-validation error %v", tt.hour, err)
			}
		})
	}
}

func TestValidateMinute(t *testing.T) {
	tests := []struct {
		name    string
		minute  int
		wantErr bool
	}{
		{"Valid: zero", 0, false},
		{"Valid: last minute", 59, false},
		{"Invalid: negative", -1, true},
		{"Invalid: above range", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMinute(tt.minute)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMinute(%d) error = %v, wantErr %v", tt.minute, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoute(t *testing.T) {
	tests := []struct {
		name    string
		route   string
		wantErr bool
	}{
		{"Valid: borough route", "B46", false},
		{"Valid: select bus service", "M15-SBS", false},
		{"Invalid: empty", "", true},
		{"Invalid: whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoute(tt.route)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoute(%q) error = %v, wantErr %v", tt.route, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStopName(t *testing.T) {
	tests := []struct {
		name     string
		stopName string
		wantErr  bool
	}{
		{"Valid: intersection", "UTICA AV/FULTON ST", false},
		{"Invalid: empty", "", true},
		{"Invalid: whitespace only", "\t ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStopName(tt.stopName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStopName(%q) error = %v, wantErr %v", tt.stopName, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		wantErr bool
	}{
		{"Valid: morning", "08:30:00", false},
		{"Valid: midnight", "00:00:00", false},
		{"Valid: last second", "23:59:59", false},
		{"Invalid: hour out of range", "24:00:00", true},
		{"Invalid: minute out of range", "12:60:00", true},
		{"Invalid: second out of range", "12:00:60", true},
		{"Invalid: missing seconds", "08:30", true},
		{"Invalid: not zero padded", "8:30:00", true},
		{"Invalid: empty", "", true},
		{"Invalid: not a time", "noon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeOfDay(tt.timeStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimeOfDay(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("ValidateTimeOfDay(%q) returned non-validation error %v", tt.timeStr, err)
			}
		})
	}
}
