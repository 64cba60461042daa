package services

import (
	"fmt"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

// QueueOf maps a position in the ordered list to a queue index.
func QueueOf(position, queues int) (int, error) {
	if queues <= 0 {
		return 0, models.ErrNoQueues
	}
	return position % queues, nil
}

// Distribute fans items out round-robin: queue k gets every item whose
// position modulo queues equals k. Assignment is positional and recomputed
// on every call, so adding a queue can move items that were already shown
// elsewhere.
func Distribute[T any](items []T, queues int) ([][]T, error) {
	if queues <= 0 {
		return nil, models.ErrNoQueues
	}

	out := make([][]T, queues)
	for k := range out {
		out[k] = []T{}
	}
	for i, item := range items {
		k := i % queues
		out[k] = append(out[k], item)
	}
	return out, nil
}

// NextFor returns the first item mapped to queue index, along with its
// position in items.
func NextFor[T any](items []T, queues, index int) (T, int, error) {
	var zero T
	if queues <= 0 {
		return zero, -1, models.ErrNoQueues
	}
	if index < 0 || index >= queues {
		return zero, -1, fmt.Errorf("%w: index %d of %d", models.ErrUnknownQueue, index, queues)
	}
	for i, item := range items {
		if i%queues == index {
			return item, i, nil
		}
	}
	return zero, -1, models.ErrEmptyQueue
}
