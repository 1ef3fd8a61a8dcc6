// Package fault defines the failure kinds surfaced by extraction, encoding and workspace handling.
//
// Kinds are sentinel errors. Callers wrap them with context and a diagnostic tail
// and consumers classify with errors.Is.
package fault

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSpawn means a subprocess could not be started.
	ErrSpawn = errors.New("subprocess could not be started")

	// ErrNoUsableOutput means a subprocess exited without producing anything usable, whatever its exit code.
	ErrNoUsableOutput = errors.New("no usable output")

	// ErrEncode means the encoder exited non-zero or produced no output file.
	ErrEncode = errors.New("encode failed")

	// ErrOutputMissing is the ErrEncode case where the encoder reported success without writing the destination.
	ErrOutputMissing = fmt.Errorf("%w: final converted file not found", ErrEncode)

	// ErrWorkspaceIO means the job's temporary directory could not be prepared.
	ErrWorkspaceIO = errors.New("workspace unavailable")

	// ErrParse means metadata or caption content was malformed.
	ErrParse = errors.New("malformed tool output")

	// ErrInvalidJob means a download request failed validation before any work started.
	ErrInvalidJob = errors.New("invalid job")
)

// tailLimit caps how much diagnostic text is carried inside an error message.
const tailLimit = 2048

// WithDiagnostic wraps kind with a message and the trimmed tail of a tool's diagnostic output.
func WithDiagnostic(kind error, msg string, diagnostic string) error {
	diagnostic = Tail(diagnostic)
	if diagnostic == "" {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w: %s: %s", kind, msg, diagnostic)
}

// Tail returns at most the last tailLimit bytes of s with surrounding whitespace removed.
// The cut never splits a multi-byte rune.
func Tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= tailLimit {
		return s
	}

	cut := len(s) - tailLimit
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return "…" + strings.TrimSpace(s[cut:])
}

// Kind returns the most specific registered kind err belongs to, or nil.
func Kind(err error) error {
	for _, kind := range []error{
		ErrOutputMissing,
		ErrSpawn,
		ErrNoUsableOutput,
		ErrEncode,
		ErrWorkspaceIO,
		ErrParse,
		ErrInvalidJob,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
