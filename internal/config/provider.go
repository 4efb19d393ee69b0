// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// InvalidLoadOptionsError is returned when LoadOptions has invalid fields.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// Loaded is a configuration together with the file it came from.
	Loaded struct {
		Config *Config
		// Path is the file the configuration was read from, or "" when only
		// defaults and environment overrides apply.
		Path string
	}

	fileProvider struct{}
)

// NewProvider creates a configuration provider that reads CUE files.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	loaded, err := LoadWithSource(ctx, opts)
	if err != nil {
		return nil, err
	}
	return loaded.Config, nil
}

// LoadWithSource loads configuration and reports which file was used.
func LoadWithSource(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path}, nil
}

// Validate returns an *InvalidLoadOptionsError when a non-empty path field is
// whitespace-only. Empty fields are valid and mean "use the default".
func (o LoadOptions) Validate() error {
	var errs []error
	if o.ConfigFilePath != "" && strings.TrimSpace(o.ConfigFilePath) == "" {
		errs = append(errs, fmt.Errorf("config file path %q must not be whitespace-only", o.ConfigFilePath))
	}
	if o.ConfigDirPath != "" && strings.TrimSpace(o.ConfigDirPath) == "" {
		errs = append(errs, fmt.Errorf("config dir path %q must not be whitespace-only", o.ConfigDirPath))
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidLoadOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid load options: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid load options: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
