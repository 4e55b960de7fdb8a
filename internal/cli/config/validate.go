package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapfrag/pkg/dialect"
)

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
// The verify adapter type is checked when a command needs it.
func (c *Config) Validate() error {
	var errs []error

	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("%w\nHint: set dialect in leapfrag.yaml or pass --dialect", err))
	}
	if !validOutputs[c.OutputFormat] {
		errs = append(errs, fmt.Errorf("invalid output format %q, must be one of: auto, text, markdown, json", c.OutputFormat))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}

	return errors.Join(errs...)
}
