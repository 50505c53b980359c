// Package cerr defines CLEO's error taxonomy: a small set of sentinel errors,
// each carrying a machine-readable code and the process exit code the CLI
// adapter and dispatcher surface for it.
package cerr

import (
	"errors"
	"fmt"
)

// Kind identifies the error taxonomy bucket an error belongs to.
type Kind string

const (
	KindInput      Kind = "input"
	KindLookup     Kind = "lookup"
	KindState      Kind = "state"
	KindIO         Kind = "io"
	KindValidation Kind = "validation"
	KindProtocol   Kind = "protocol"
	KindInternal   Kind = "internal"
)

// Code is a typed error with a stable machine-readable name and exit code.
type Code struct {
	Name string
	Exit int
	Kind Kind
}

func (c *Code) Error() string { return c.Name }

// New wraps base with additional context while preserving errors.Is/As to base.
func (c *Code) New(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), c)
}

// Sentinel error codes and their process exit codes.
var (
	ErrInputMissing     = &Code{Name: "E_INPUT_MISSING", Exit: 1, Kind: KindInput}
	ErrInputInvalid     = &Code{Name: "E_INPUT_INVALID", Exit: 6, Kind: KindInput}
	ErrInvalidOperation = &Code{Name: "E_INVALID_OPERATION", Exit: 1, Kind: KindInput}

	ErrTaskNotFound    = &Code{Name: "E_TASK_NOT_FOUND", Exit: 4, Kind: KindLookup}
	ErrFileNotFound    = &Code{Name: "E_FILE_NOT_FOUND", Exit: 3, Kind: KindLookup}
	ErrSessionNotFound = &Code{Name: "E_SESSION_NOT_FOUND", Exit: 4, Kind: KindLookup}

	ErrTaskCompleted     = &Code{Name: "E_TASK_COMPLETED", Exit: 17, Kind: KindState}
	ErrNoChange          = &Code{Name: "E_NO_CHANGE", Exit: 102, Kind: KindState}
	ErrHasChildren       = &Code{Name: "E_HAS_CHILDREN", Exit: 16, Kind: KindState}
	ErrDependencyError   = &Code{Name: "E_DEPENDENCY_ERROR", Exit: 5, Kind: KindState}
	ErrIDCollision       = &Code{Name: "E_ID_COLLISION", Exit: 6, Kind: KindState}
	ErrDepthExceeded     = &Code{Name: "E_DEPTH_EXCEEDED", Exit: 11, Kind: KindState}
	ErrInvalidParentType = &Code{Name: "E_INVALID_PARENT_TYPE", Exit: 13, Kind: KindState}
	ErrSessionState      = &Code{Name: "E_SESSION_STATE", Exit: 18, Kind: KindState}
	ErrFocusClaimed      = &Code{Name: "E_FOCUS_CLAIMED", Exit: 19, Kind: KindState}

	ErrFileWrite     = &Code{Name: "E_FILE_WRITE", Exit: 3, Kind: KindIO}
	ErrFileCorrupted = &Code{Name: "E_FILE_CORRUPTED", Exit: 3, Kind: KindIO}
	ErrLockTimeout   = &Code{Name: "E_LOCK_TIMEOUT", Exit: 3, Kind: KindIO}

	ErrValidationSchema = &Code{Name: "E_VALIDATION_SCHEMA", Exit: 6, Kind: KindValidation}
	ErrChecksumMismatch = &Code{Name: "E_CHECKSUM_MISMATCH", Exit: 6, Kind: KindValidation}

	ErrUnknownProtocol = &Code{Name: "E_UNKNOWN_PROTOCOL", Exit: 67, Kind: KindProtocol}

	ErrInternal = &Code{Name: "E_INTERNAL", Exit: 1, Kind: KindInternal}
)

// byName indexes every sentinel and protocol Code by its Name, for callers
// (the CLI's envelope renderer, the RPC gateway) that only have the
// serialized error code string and need its exit code back.
var byName = map[string]*Code{
	ErrInputMissing.Name:      ErrInputMissing,
	ErrInputInvalid.Name:      ErrInputInvalid,
	ErrInvalidOperation.Name:  ErrInvalidOperation,
	ErrTaskNotFound.Name:      ErrTaskNotFound,
	ErrFileNotFound.Name:      ErrFileNotFound,
	ErrSessionNotFound.Name:   ErrSessionNotFound,
	ErrTaskCompleted.Name:     ErrTaskCompleted,
	ErrNoChange.Name:          ErrNoChange,
	ErrHasChildren.Name:       ErrHasChildren,
	ErrDependencyError.Name:   ErrDependencyError,
	ErrIDCollision.Name:       ErrIDCollision,
	ErrDepthExceeded.Name:     ErrDepthExceeded,
	ErrInvalidParentType.Name: ErrInvalidParentType,
	ErrSessionState.Name:      ErrSessionState,
	ErrFocusClaimed.Name:      ErrFocusClaimed,
	ErrFileWrite.Name:         ErrFileWrite,
	ErrFileCorrupted.Name:     ErrFileCorrupted,
	ErrLockTimeout.Name:       ErrLockTimeout,
	ErrValidationSchema.Name:  ErrValidationSchema,
	ErrChecksumMismatch.Name:  ErrChecksumMismatch,
	ErrUnknownProtocol.Name:   ErrUnknownProtocol,
	ErrInternal.Name:          ErrInternal,
}

// ExitForName returns the process exit code registered for a Code's Name,
// falling back to protocolErrors and finally ErrInternal.Exit.
func ExitForName(name string) int {
	if c, ok := byName[name]; ok {
		return c.Exit
	}
	for _, c := range protocolErrors {
		if c.Name == name {
			return c.Exit
		}
	}
	return ErrInternal.Exit
}

// protocolErrors maps lifecycle stage names to their MUST-violation exit code.
var protocolErrors = map[string]*Code{
	"research":       {Name: "RSCH-001", Exit: 60, Kind: KindProtocol},
	"consensus":      {Name: "CONS-001", Exit: 61, Kind: KindProtocol},
	"specification":  {Name: "SPEC-001", Exit: 62, Kind: KindProtocol},
	"decomposition":  {Name: "DCMP-001", Exit: 63, Kind: KindProtocol},
	"implementation": {Name: "IMPL-001", Exit: 64, Kind: KindProtocol},
	"contribution":   {Name: "CONT-001", Exit: 65, Kind: KindProtocol},
	"release":        {Name: "RLSE-001", Exit: 66, Kind: KindProtocol},
}

// ProtocolError returns the sentinel Code for a pipeline stage's MUST violations.
func ProtocolError(stage string) (*Code, bool) {
	c, ok := protocolErrors[stage]
	return c, ok
}

// CodeOf unwraps err looking for a *Code, defaulting to ErrInternal.
func CodeOf(err error) *Code {
	if err == nil {
		return nil
	}
	var c *Code
	if errors.As(err, &c) {
		return c
	}
	return ErrInternal
}

// ExitCode returns the process exit code for err, 0 if err is nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return CodeOf(err).Exit
}
