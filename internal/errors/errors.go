// Package errors provides sentinel errors and error types for the chess rules
// engine and its collaborators. It defines common error conditions and
// structured error types that preserve context while allowing error
// inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrMalformedPosition indicates a FEN string that does not parse.
	ErrMalformedPosition = errors.New("malformed position")

	// ErrIllegalMove indicates a destination outside the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrOracleUnavailable indicates the external move engine could not
	// produce a move. It is fatal to the current game and never retried.
	ErrOracleUnavailable = errors.New("move oracle unavailable")

	// ErrPuzzleNotFound indicates a puzzle index outside the source.
	ErrPuzzleNotFound = errors.New("puzzle not found")

	// ErrGameOver indicates a move submitted after the game terminated.
	ErrGameOver = errors.New("game is over")

	// ErrNoSetup indicates an operation on a game that was never set up.
	ErrNoSetup = errors.New("game not set up")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownSession indicates a session id with no registered game.
	ErrUnknownSession = errors.New("unknown session")

	// ErrSessionExists indicates a session id that is already registered.
	ErrSessionExists = errors.New("session already exists")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// MoveError wraps errors with move context: the ply number and the
// coordinate text of the rejected move.
type MoveError struct {
	Err  error  // The underlying error
	Ply  int    // Ply number where the error occurred (0 if not applicable)
	Move string // Coordinate text of the move ("e2e4")
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")
	switch {
	case context == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", context, e.Err)
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// PositionError represents a FEN decoding failure with the offending field.
type PositionError struct {
	Err   error  // The underlying error
	Field string // FEN field name ("placement", "side to move", ...)
	Value string // The text that failed to parse
	FEN   string // The whole input, if known
}

// Error returns a formatted error message with field and value context.
func (e *PositionError) Error() string {
	var parts []string

	if e.Field != "" {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s %q", e.Field, e.Value))
		} else {
			parts = append(parts, e.Field)
		}
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.FEN))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return "position error"
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
