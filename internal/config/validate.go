package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTypeRoot indicates a missing declaration root directory
	ErrEmptyTypeRoot = errors.New("empty type root")

	// ErrEmptyDocPatterns indicates no document glob patterns
	ErrEmptyDocPatterns = errors.New("empty document patterns")

	// ErrEmptyOutputDir indicates a missing build output directory
	ErrEmptyOutputDir = errors.New("empty output directory")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidCacheCapacity indicates a non-positive cache capacity
	ErrInvalidCacheCapacity = errors.New("invalid cache capacity")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Paths.TypeRoot) == "" {
		errs = append(errs, fmt.Errorf("%w: paths.type_root is required", ErrEmptyTypeRoot))
	}

	if len(cfg.Paths.Docs) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one paths.docs pattern required", ErrEmptyDocPatterns))
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is required", ErrEmptyOutputDir))
	}

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	if cfg.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidCacheCapacity, cfg.Cache.Capacity))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
