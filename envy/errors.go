package envy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEnv is returned when the env setting cannot be normalized
	// into an environment with a non-empty string id.
	ErrInvalidEnv = errors.New("invalid env option")

	// ErrFragmentNotFound is returned when no loader knows a fragment.
	ErrFragmentNotFound = errors.New("fragment not found")

	// ErrUnsupportedFormat is returned for fragment files whose extension
	// has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported fragment format")

	// ErrUnmergeable is returned when fragment outputs are not both objects
	// or both arrays.
	ErrUnmergeable = errors.New("fragment outputs cannot be merged")
)

// FragmentLoadError reports a fragment that could not be found or loaded.
type FragmentLoadError struct {
	Path string
	Err  error
}

func (e *FragmentLoadError) Error() string {
	return fmt.Sprintf("load fragment %s: %v", e.Path, e.Err)
}

func (e *FragmentLoadError) Unwrap() error {
	return e.Err
}

// FragmentExecutionError reports a fragment function that failed.
type FragmentExecutionError struct {
	Path string
	Err  error
}

func (e *FragmentExecutionError) Error() string {
	return fmt.Sprintf("execute fragment %s: %v", e.Path, e.Err)
}

func (e *FragmentExecutionError) Unwrap() error {
	return e.Err
}
