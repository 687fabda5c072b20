package lq

import (
	"iter"
	"strings"
	"unsafe"

	"deedles.dev/lq/internal/list"
)

var (
	queueSize = int(unsafe.Sizeof(Queue{}))
	nodeSize  = int(unsafe.Sizeof(list.SingleNode[string]{}))
)

// A Queue holds strings in a singly-linked chain. It keeps references
// to both ends of the chain and a count of its elements so that
// insertion at either end and Len are constant time.
//
// Every method may be called on a nil *Queue. Methods that can fail
// return ErrNilQueue in that case and the rest do nothing.
//
// A Queue must not be copied, and it must not be used after Free.
type Queue struct {
	_ noCopy

	alloc Allocator
	sort  SortAlgorithm
	list  list.Single[string]
}

// An Option configures a Queue created by New.
type Option func(*Queue)

// WithAllocator makes the Queue account for its storage with a. A nil
// Allocator leaves the default in place.
func WithAllocator(a Allocator) Option {
	return func(q *Queue) {
		if a != nil {
			q.alloc = a
		}
	}
}

// WithSortAlgorithm selects the algorithm used by Sort.
func WithSortAlgorithm(alg SortAlgorithm) Option {
	return func(q *Queue) {
		q.sort = alg
	}
}

// New returns a new, empty Queue. It only fails if the configured
// Allocator refuses storage for the Queue itself.
func New(opts ...Option) (*Queue, error) {
	q := Queue{alloc: heap{}, sort: BubbleSort}
	for _, opt := range opts {
		opt(&q)
	}

	err := alloc(q.alloc, KindQueue, queueSize)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Free releases every remaining element and then the Queue itself.
func (q *Queue) Free() {
	if q == nil {
		return
	}

	q.list.Clear(q.release)
	q.alloc.Free(KindQueue, queueSize)
}

// dup obtains storage for a new node and a private copy of s. If
// either allocation fails, nothing remains allocated.
func (q *Queue) dup(s string) (string, error) {
	err := alloc(q.alloc, KindNode, nodeSize)
	if err != nil {
		return "", err
	}

	err = alloc(q.alloc, KindString, len(s))
	if err != nil {
		q.alloc.Free(KindNode, nodeSize)
		return "", err
	}

	return strings.Clone(s), nil
}

func (q *Queue) release(v string) {
	q.alloc.Free(KindString, len(v))
	q.alloc.Free(KindNode, nodeSize)
}

// InsertHead adds a copy of s to the head of the queue.
func (q *Queue) InsertHead(s string) error {
	if q == nil {
		return ErrNilQueue
	}

	v, err := q.dup(s)
	if err != nil {
		return err
	}
	q.list.PushHead(v)
	return nil
}

// InsertTail adds a copy of s to the tail of the queue in constant
// time.
func (q *Queue) InsertTail(s string) error {
	if q == nil {
		return ErrNilQueue
	}

	v, err := q.dup(s)
	if err != nil {
		return err
	}
	q.list.PushTail(v)
	return nil
}

// PopHead removes the element at the head of the queue and returns
// it.
func (q *Queue) PopHead() (string, error) {
	if q == nil {
		return "", ErrNilQueue
	}

	v, ok := q.list.PopHead()
	if !ok {
		return "", ErrEmpty
	}
	q.release(v)
	return v, nil
}

// RemoveHead removes the element at the head of the queue. If buf is
// not empty, as much of the element as fits in len(buf)-1 bytes is
// copied into it followed by a zero byte, and the number of element
// bytes copied is returned. The element is silently truncated if buf
// is too small.
func (q *Queue) RemoveHead(buf []byte) (int, error) {
	v, err := q.PopHead()
	if err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	n := copy(buf[:len(buf)-1], v)
	buf[n] = 0
	return n, nil
}

// Len returns the number of elements in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return q.list.Len()
}

// Reverse reverses the order of the elements in the queue without
// allocating or freeing any nodes.
func (q *Queue) Reverse() {
	if q == nil {
		return
	}
	q.list.Reverse()
}

// Sort sorts the queue into ascending byte-wise order by relinking
// its nodes. Equal elements keep their relative order.
func (q *Queue) Sort() {
	if q == nil {
		return
	}

	switch q.sort {
	case MergeSort:
		q.list.MergeSort(strings.Compare)
	default:
		q.list.BubbleSort(strings.Compare)
	}
}

// All returns an iterator over the elements of the queue from head to
// tail. The queue must not be modified during iteration.
func (q *Queue) All() iter.Seq[string] {
	if q == nil {
		return func(func(string) bool) {}
	}
	return q.list.All()
}

// SortAlgorithm selects how a Queue is sorted.
type SortAlgorithm int

const (
	// BubbleSort makes repeated passes over the unsorted part of the
	// chain, swapping adjacent out-of-order nodes, until a pass makes
	// no swaps. It takes quadratic time.
	BubbleSort SortAlgorithm = iota

	// MergeSort merges successively wider sorted runs of the chain.
	// It takes O(n log n) time.
	MergeSort
)
