package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Settings is the root of the configuration file.
type Settings struct {
	// Version of the config file format
	Version int `yaml:"version" validate:"eq=1"`

	// API holds backend connection settings
	API APISettings `yaml:"api" validate:"required"`

	// Defaults holds the pre-filled values for the schedule form
	Defaults QueryDefaults `yaml:"defaults"`

	// FavoriteStops is shown at the top of the stop picker
	FavoriteStops []string `yaml:"favorite_stops,omitempty" validate:"dive,min=1"`
}

// APISettings configures how the backend is reached.
type APISettings struct {
	// BaseURL is the backend base URL
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gt=0"`

	// MaxRetries is the number of retries for failed requests
	MaxRetries int `yaml:"max_retries" validate:"gte=0"`
}

// QueryDefaults pre-fills the schedule form fields.
type QueryDefaults struct {
	// Stop is the default stop name, empty for none
	Stop string `yaml:"stop,omitempty"`

	// Hour is the default hour of day for schedule queries
	Hour int `yaml:"hour" validate:"gte=0,lte=23"`

	// Minute is the default minute for schedule queries
	Minute int `yaml:"minute" validate:"gte=0,lte=59"`
}

// NewSettings returns the default configuration.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		API: APISettings{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 10,
			MaxRetries:     3,
		},
		Defaults: QueryDefaults{
			Hour:   8,
			Minute: 0,
		},
	}
}

// Validate checks the settings against their struct tags.
func (s *Settings) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AddFavoriteStop records a stop, ignoring duplicates. Returns true if the
// stop was added.
func (s *Settings) AddFavoriteStop(name string) bool {
	for _, existing := range s.FavoriteStops {
		if existing == name {
			return false
		}
	}
	s.FavoriteStops = append(s.FavoriteStops, name)
	return true
}

// RemoveFavoriteStop removes a stop. Returns true if the stop was present.
func (s *Settings) RemoveFavoriteStop(name string) bool {
	for i, existing := range s.FavoriteStops {
		if existing == name {
			s.FavoriteStops = append(s.FavoriteStops[:i], s.FavoriteStops[i+1:]...)
			return true
		}
	}
	return false
}

// IsFavorite reports whether a stop is in the favorites list.
func (s *Settings) IsFavorite(name string) bool {
	for _, existing := range s.FavoriteStops {
		if existing == name {
			return true
		}
	}
	return false
}
