// Package rerrors defines the error taxonomy of spec.md §7 as sentinel
// values so callers can classify failures with errors.Is and main.go can
// map them to distinct process exit codes.
package rerrors

import "errors"

var (
	// ErrInputOpen means the input file could not be opened.
	ErrInputOpen = errors.New("input open error")
	// ErrInputFormat means a line failed to parse, or the stream was not
	// user-grouped as pass 2 requires.
	ErrInputFormat = errors.New("input format error")
	// ErrOutputWrite means the output file could not be created or
	// written.
	ErrOutputWrite = errors.New("output write error")
	// ErrConfig means a configuration value was missing or invalid.
	ErrConfig = errors.New("config error")
)

// ExitCode maps an error produced by this package's sentinels (possibly
// wrapped) to the process exit code documented in SPEC_FULL.md §7. Errors
// that do not match any sentinel return 1, the catch-all for internal
// invariant violations.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfig):
		return 2
	case errors.Is(err, ErrInputOpen):
		return 3
	case errors.Is(err, ErrInputFormat):
		return 4
	case errors.Is(err, ErrOutputWrite):
		return 5
	default:
		return 1
	}
}
