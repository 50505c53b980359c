package validate

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// TaskValidator validates a single task and returns an error if validation
// fails. Validators compose with Chain: small, named, composable checks
// rather than one monolithic function per operation.
type TaskValidator func(t *model.Task) error

// Chain composes validators in order; the first error stops the chain.
func Chain(validators ...TaskValidator) TaskValidator {
	return func(t *model.Task) error {
		for _, v := range validators {
			if err := v(t); err != nil {
				return err
			}
		}
		return nil
	}
}

// Exists fails if t is nil.
func Exists() TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return cerr.ErrTaskNotFound.New("task not found")
		}
		return nil
	}
}

// NotDone fails if t.Status is already done.
func NotDone() TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return nil
		}
		if t.Status == model.StatusDone {
			return cerr.ErrTaskCompleted.New("task %s is already done", t.ID)
		}
		return nil
	}
}

// NotCancelled fails if t.Status is already cancelled.
func NotCancelled() TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return nil
		}
		if t.Status == model.StatusCancelled {
			return cerr.ErrNoChange.New("task %s is already cancelled", t.ID)
		}
		return nil
	}
}

// HasStatus fails unless t.Status is one of allowed.
func HasStatus(allowed ...model.Status) TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return nil
		}
		for _, s := range allowed {
			if t.Status == s {
				return nil
			}
		}
		return cerr.ErrInputInvalid.New("task %s has status %s, expected one of %v", t.ID, t.Status, allowed)
	}
}

// HasType fails unless t.Type is one of allowed.
func HasType(allowed ...model.Type) TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return nil
		}
		for _, ty := range allowed {
			if t.Type == ty {
				return nil
			}
		}
		return cerr.ErrInvalidParentType.New("task %s has type %s, expected one of %v", t.ID, t.Type, allowed)
	}
}

// BlockedRequiresDescription enforces "blocked requires a non-empty
// description".
func BlockedRequiresDescription() TaskValidator {
	return func(t *model.Task) error {
		if t == nil {
			return nil
		}
		if t.Status == model.StatusBlocked && t.Description == "" {
			return cerr.ErrInputInvalid.New("task %s is blocked but has no description", t.ID)
		}
		return nil
	}
}

// ForComplete is the validator chain complete() runs before mutating state.
func ForComplete() TaskValidator {
	return Chain(Exists(), NotDone())
}

// ForCancel is the validator chain cancel()/delete() runs before mutating
// state.
func ForCancel() TaskValidator {
	return Chain(Exists(), NotCancelled())
}
