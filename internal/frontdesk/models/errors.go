package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQueue is a notice: the selected queue has nobody waiting.
	ErrEmptyQueue = errors.New("queue is empty")
	// ErrNoQueues means no receptionist or doctor is registered yet, so there
	// is nothing to distribute patients over.
	ErrNoQueues           = errors.New("no queues registered")
	ErrUnknownQueue       = errors.New("unknown queue")
	ErrInvalidPatientType = errors.New("invalid patient type")
)

// EmptyQueueError carries the queue the notice is about.
type EmptyQueueError struct {
	Stage  Stage
	Number int
}

func (e *EmptyQueueError) Error() string {
	if e.Stage == StageDoctor {
		return fmt.Sprintf("No patients in the queue for doctor %d.", e.Number)
	}
	return fmt.Sprintf("No patients in the queue of desk %d.", e.Number)
}

func (e *EmptyQueueError) Is(target error) bool {
	return target == ErrEmptyQueue
}
