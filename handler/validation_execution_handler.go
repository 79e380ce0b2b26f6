package handler

import (
	"context"
	"errors"
)

var ErrNoProcessHandled = errors.New("no process handled")

// ValidationExecution runs the oldest pending validation run, if any.
func (h *ValidationHandler) ValidationExecution(ctx context.Context) error {
	acquired, logEntry, err := h.Usecase.TryAcquireLock(ctx)
	if err != nil {
		return err
	}

	if !acquired {
		return ErrNoProcessHandled
	}

	defer h.Usecase.UnlockProcess(ctx, logEntry)

	return h.Usecase.ProcessValidationJob(ctx, logEntry.ID)
}
