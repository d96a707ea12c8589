package dstar

import "container/heap"

// queueItem is one vertex in the open queue. index tracks its heap slot so
// that update-key is a heap.Fix instead of a duplicate push.
type queueItem struct {
	v     int
	key   Key
	index int
}

// keyHeap is a min-heap of *queueItem ordered by Key, ties broken by vertex
// index so that equal call sequences pop in equal order.
type keyHeap []*queueItem

func (h keyHeap) Len() int { return len(h) }
func (h keyHeap) Less(i, j int) bool {
	if h[i].key == h[j].key {
		return h[i].v < h[j].v
	}
	return h[i].key.Less(h[j].key)
}
func (h keyHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *keyHeap) Push(x any) {
	it := x.(*queueItem)
	it.index = len(*h)
	*h = append(*h, it)
}
func (h *keyHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// keyQueue is the D* Lite open list. Every vertex appears at most once;
// where[v] points at its heap item or is nil when v is not queued.
type keyQueue struct {
	h     keyHeap
	where []*queueItem
}

func newKeyQueue(n int) *keyQueue {
	return &keyQueue{
		h:     make(keyHeap, 0, 64),
		where: make([]*queueItem, n),
	}
}

// Len returns the number of queued vertices.
func (q *keyQueue) Len() int { return len(q.h) }

// topKey returns the smallest key, or InfKey when the queue is empty.
func (q *keyQueue) topKey() Key {
	if len(q.h) == 0 {
		return InfKey
	}
	return q.h[0].key
}

// top returns the vertex with the smallest key and the key it was stored with.
// The queue must not be empty.
func (q *keyQueue) top() (int, Key) {
	if len(q.h) == 0 {
		panic(ErrEmptyQueuePop)
	}
	return q.h[0].v, q.h[0].key
}

// pop removes and returns the vertex with the smallest key.
// Popping an empty queue is a bug in the caller's loop condition and panics
// with ErrEmptyQueuePop.
func (q *keyQueue) pop() int {
	if len(q.h) == 0 {
		panic(ErrEmptyQueuePop)
	}
	it := heap.Pop(&q.h).(*queueItem)
	q.where[it.v] = nil
	return it.v
}

// insertOrUpdate queues v with key, replacing the key if v is already present.
func (q *keyQueue) insertOrUpdate(v int, key Key) {
	if it := q.where[v]; it != nil {
		it.key = key
		heap.Fix(&q.h, it.index)
		return
	}
	it := &queueItem{v: v, key: key}
	heap.Push(&q.h, it)
	q.where[v] = it
}

// remove drops v from the queue; no-op if v is not queued.
func (q *keyQueue) remove(v int) {
	it := q.where[v]
	if it == nil {
		return
	}
	heap.Remove(&q.h, it.index)
	q.where[v] = nil
}

// contains reports whether v is queued.
func (q *keyQueue) contains(v int) bool {
	return q.where[v] != nil
}

// keyOf returns the key v is stored with.
func (q *keyQueue) keyOf(v int) (Key, bool) {
	if it := q.where[v]; it != nil {
		return it.key, true
	}
	return Key{}, false
}
