// Package schedule holds the FIFO queues of card IDs that back each
// learning stage.
package schedule

import (
	"math/rand/v2"
	"slices"
)

// Queue is a FIFO of card IDs. It never reorders itself; randomness is
// applied only through NewQueue and Shuffle.
type Queue struct {
	ids []string
}

// NewQueue builds a queue from ids, shuffled once with rng (Fisher-Yates).
// A nil rng keeps the given order.
func NewQueue(ids []string, rng *rand.Rand) *Queue {
	q := &Queue{ids: slices.Clone(ids)}
	q.Shuffle(rng)
	return q
}

// Shuffle randomizes the queue order. Callers use it only at round
// transitions, never mid-round.
func (q *Queue) Shuffle(rng *rand.Rand) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(q.ids), func(i, j int) {
		q.ids[i], q.ids[j] = q.ids[j], q.ids[i]
	})
}

// DequeueFront removes and returns the head of the queue.
func (q *Queue) DequeueFront() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// PeekFront returns the head without removing it.
func (q *Queue) PeekFront() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	return q.ids[0], true
}

// EnqueueTail appends id.
func (q *Queue) EnqueueTail(id string) {
	q.ids = append(q.ids, id)
}

// Remove deletes the first occurrence of id. It reports whether id was found.
func (q *Queue) Remove(id string) bool {
	i := slices.Index(q.ids, id)
	if i < 0 {
		return false
	}
	q.ids = slices.Delete(q.ids, i, i+1)
	return true
}

// Contains reports whether id is queued.
func (q *Queue) Contains(id string) bool {
	return slices.Contains(q.ids, id)
}

// Len returns the number of queued IDs.
func (q *Queue) Len() int {
	return len(q.ids)
}

// IsEmpty reports whether the queue holds no IDs.
func (q *Queue) IsEmpty() bool {
	return len(q.ids) == 0
}

// IDs returns a copy of the queued IDs, head first.
func (q *Queue) IDs() []string {
	return slices.Clone(q.ids)
}
