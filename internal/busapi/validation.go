package busapi

import (
	"fmt"
	"regexp"
	"strings"
)

// Query parameter validation. The backend validates these too, but catching
// them locally gives an immediate message instead of a round trip.

// ValidateHour checks an hour-of-day value
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return newValidationError(fmt.Sprintf("hour must be 0-23, got %d", hour))
	}
	return nil
}

// ValidateMinute checks a minute-of-hour value
func ValidateMinute(minute int) error {
	if minute < 0 || minute > 59 {
		return newValidationError(fmt.Sprintf("minute must be 0-59, got %d", minute))
	}
	return nil
}

// ValidateRoute checks a published route name (e.g. "M86-SBS")
func ValidateRoute(route string) error {
	if strings.TrimSpace(route) == "" {
		return newValidationError("route must not be empty")
	}
	return nil
}

// ValidateStopName checks a stop name (e.g. "8 AV/W 86 ST")
func ValidateStopName(stopName string) error {
	if strings.TrimSpace(stopName) == "" {
		return newValidationError("stop name must not be empty")
	}
	return nil
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9])$`)

// ValidateTimeOfDay checks a zero-padded HH:MM:SS time string, the format
// the prediction endpoint requires.
func ValidateTimeOfDay(timeStr string) error {
	if !timeOfDayPattern.MatchString(timeStr) {
		return newValidationError(fmt.Sprintf("time must be HH:MM:SS (e.g. 08:30:00), got %q", timeStr))
	}
	return nil
}
