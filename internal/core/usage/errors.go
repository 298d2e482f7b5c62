package usage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange marks a date range the caller must fix. Never retried.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidAggregation marks an unknown aggregation interval code.
	ErrInvalidAggregation = errors.New("invalid aggregation")

	// ErrTransientStore marks a failure reaching the source, bucket or checkpoint store.
	// Retry policy belongs to whoever scheduled the run.
	ErrTransientStore = errors.New("store unavailable")
)

// InvalidRangef wraps ErrInvalidRange with a formatted detail message.
func InvalidRangef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRange, fmt.Sprintf(format, args...))
}

// StoreError tags err as a transient store failure of the named operation.
// nil stays nil.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrTransientStore, err)
}
