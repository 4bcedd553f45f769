package schedule

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c"}, nil)

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.DequeueFront()
		if !ok || got != want {
			t.Fatalf("DequeueFront = %q, %v; want %q", got, ok, want)
		}
	}
	if !q.IsEmpty() {
		t.Error("expected empty queue")
	}
	if _, ok := q.DequeueFront(); ok {
		t.Error("DequeueFront on empty queue returned ok")
	}
	if _, ok := q.PeekFront(); ok {
		t.Error("PeekFront on empty queue returned ok")
	}
}

func TestQueue_EnqueueTailAndRemove(t *testing.T) {
	q := NewQueue([]string{"a", "b"}, nil)
	q.EnqueueTail("c")

	if !q.Remove("b") {
		t.Fatal("Remove(b) = false")
	}
	if q.Remove("missing") {
		t.Error("Remove(missing) = true")
	}
	if got := q.IDs(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("IDs = %v, want [a c]", got)
	}
	if !q.Contains("c") || q.Contains("b") {
		t.Error("Contains reports wrong membership")
	}
}

func TestQueue_PeekDoesNotRemove(t *testing.T) {
	q := NewQueue([]string{"x"}, nil)
	if id, _ := q.PeekFront(); id != "x" {
		t.Fatalf("PeekFront = %q", id)
	}
	if q.Len() != 1 {
		t.Errorf("Len after peek = %d, want 1", q.Len())
	}
}

func TestNewQueue_ShufflePreservesMembers(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	rng := rand.New(rand.NewPCG(1, 2))
	q := NewQueue(ids, rng)

	got := q.IDs()
	slices.Sort(got)
	if !slices.Equal(got, ids) {
		t.Errorf("shuffled members = %v, want %v", got, ids)
	}
	if !slices.Equal(ids, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Error("NewQueue mutated the caller's slice")
	}
}

func TestNewQueue_ShuffleVariesOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	orders := make(map[string]bool)
	for seed := uint64(0); seed < 20; seed++ {
		q := NewQueue(ids, rand.New(rand.NewPCG(seed, seed)))
		orders[strings.Join(q.IDs(), ",")] = true
	}
	if len(orders) < 2 {
		t.Error("expected different seeds to produce different orders")
	}
}

func TestQueue_IDsIsCopy(t *testing.T) {
	q := NewQueue([]string{"a"}, nil)
	ids := q.IDs()
	ids[0] = "z"
	if id, _ := q.PeekFront(); id != "a" {
		t.Errorf("queue mutated via IDs(): head = %q", id)
	}
}
