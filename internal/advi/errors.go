package advi

import (
	"fmt"

	"github.com/MMesbahU/advi/internal/advierr"
)

// Re-exported so callers of the internal package need only one error
// import; the public advi package re-exports these in turn.
var (
	ErrInvalidArgument   = advierr.ErrInvalidArgument
	ErrIllConditioned    = advierr.ErrIllConditioned
	ErrAllStepSizesFailed = advierr.ErrAllStepSizesFailed
)

// ConfigError reports a single invalid configuration field, mirroring the
// {Type, Tensor, Details} shape of serialization.ValidationError in the
// teacher's format-validation package, adapted to config fields.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return advierr.ErrInvalidArgument }

func invalid(field string, value interface{}, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
