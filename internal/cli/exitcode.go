// Package cli holds logic shared by the bcc-validate, bcc-recover,
// bcc-migrate, and bcc-dump commands: exit code mapping and one-line
// diagnostic printing, following arx-os/arxos's cmd/arx pattern of a
// thin main package per binary over a shared internal package.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/bcc3d/bcc/errs"
)

// Exit codes for all four CLI binaries.
const (
	ExitSuccess            = 0
	ExitInvalidFormat      = 2
	ExitPartialRecovery    = 3
	ExitUnsupportedVersion = 4
	ExitIOError            = 5
)

// ExitCodeFor maps an error returned by a container operation onto one
// of the contractual exit codes.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errs.ErrUnsupportedVersion):
		return ExitUnsupportedVersion
	case errors.Is(err, errs.ErrInvalidMagic), errors.Is(err, errs.ErrChecksumMismatch), errors.Is(err, errs.ErrTruncatedBlock):
		return ExitInvalidFormat
	case errors.Is(err, errs.ErrIO):
		return ExitIOError
	default:
		return ExitInvalidFormat
	}
}

// Fatal prints a one-line diagnostic to stderr and exits with code.
func Fatal(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
