package toast

import (
	"container/heap"
	"slices"

	"github.com/google/uuid"
)

// entry wraps a request with its arrival sequence and heap position.
type entry struct {
	req   Request
	seq   uint64
	index int
}

// entryHeap is a max-heap by priority with FIFO tie-breaking on seq.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	return before(h[i], h[j])
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

func before(a, b *entry) bool {
	if c := Compare(a.req, b.req); c != 0 {
		return c > 0
	}
	return a.seq < b.seq
}

// Queue is a stable max-priority queue of requests.
// The zero value is ready to use. It is not safe for concurrent use.
type Queue struct {
	items entryHeap
	byID  map[uuid.UUID]*entry
	seq   uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{byID: make(map[uuid.UUID]*entry)}
}

// Push inserts a request in O(log n).
func (q *Queue) Push(req Request) {
	if q.byID == nil {
		q.byID = make(map[uuid.UUID]*entry)
	}
	q.seq++
	e := &entry{req: req, seq: q.seq}
	heap.Push(&q.items, e)
	if req.ID != uuid.Nil {
		q.byID[req.ID] = e
	}
}

// Pop removes the highest-priority request, earliest arrival first on ties.
func (q *Queue) Pop() (Request, bool) {
	if len(q.items) == 0 {
		return Request{}, false
	}
	e := heap.Pop(&q.items).(*entry)
	q.forget(e)
	return e.req, true
}

// Peek returns the request Pop would return without removing it.
func (q *Queue) Peek() (Request, bool) {
	if len(q.items) == 0 {
		return Request{}, false
	}
	return q.items[0].req, true
}

func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

func (q *Queue) Len() int { return len(q.items) }

// Remove withdraws the queued request with the given id.
func (q *Queue) Remove(id uuid.UUID) (Request, bool) {
	e, ok := q.byID[id]
	if !ok {
		return Request{}, false
	}
	heap.Remove(&q.items, e.index)
	q.forget(e)
	return e.req, true
}

// Clear empties the queue and returns its requests in the order they
// would have been admitted.
func (q *Queue) Clear() []Request {
	entries := slices.Clone([]*entry(q.items))
	slices.SortFunc(entries, func(a, b *entry) int {
		if before(a, b) {
			return -1
		}
		return 1
	})

	out := make([]Request, len(entries))
	for i, e := range entries {
		out[i] = e.req
	}
	q.items = nil
	clear(q.byID)
	return out
}

func (q *Queue) forget(e *entry) {
	if cur, ok := q.byID[e.req.ID]; ok && cur == e {
		delete(q.byID, e.req.ID)
	}
}
