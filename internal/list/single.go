package list

import (
	"errors"
	"fmt"
	"iter"
)

// Single is a singly-linked list that also contains a reference to
// the last node for quick inserts at the head and tail. It tracks its
// length so that Len never walks the chain.
//
// All reordering operations relink the existing nodes. None of them
// allocate or discard nodes.
type Single[T any] struct {
	head, tail *SingleNode[T]
	size       int
}

// Len returns the number of nodes in the list.
func (ls *Single[T]) Len() int {
	return ls.size
}

// PushHead adds v as a new node at the head of the list.
func (ls *Single[T]) PushHead(v T) {
	n := &SingleNode[T]{Val: v, next: ls.head}
	ls.head = n
	if ls.tail == nil {
		ls.tail = n
	}
	ls.size++
}

// PushTail adds v as a new node at the tail of the list.
func (ls *Single[T]) PushTail(v T) {
	n := ls.tail.insert()
	n.Val = v
	ls.tail = n

	if ls.head == nil {
		ls.head = n
	}
	ls.size++
}

// Peek returns the value of the head node. It returns false if the
// list is empty.
func (ls *Single[T]) Peek() (v T, ok bool) {
	if ls.head == nil {
		return v, false
	}
	return ls.head.Val, true
}

// PopHead detaches the current head node from the list and returns
// its value. It returns false if the list was already empty.
func (ls *Single[T]) PopHead() (v T, ok bool) {
	if ls.head == nil {
		return v, false
	}

	n := ls.head
	ls.head = n.next
	if ls.head == nil {
		ls.tail = nil
	}
	n.next = nil
	ls.size--

	return n.Val, true
}

// Clear detaches every node from the list, calling release with each
// value in order from head to tail. release may be nil.
func (ls *Single[T]) Clear(release func(T)) {
	cur := ls.head
	for cur != nil {
		next := cur.next
		cur.next = nil
		if release != nil {
			release(cur.Val)
		}
		cur = next
	}

	ls.head = nil
	ls.tail = nil
	ls.size = 0
}

// Reverse reverses the order of the list in a single pass.
func (ls *Single[T]) Reverse() {
	var prev *SingleNode[T]
	cur := ls.head
	for cur != nil {
		next := cur.next
		cur.next = prev
		prev, cur = cur, next
	}

	ls.head, ls.tail = ls.tail, ls.head
}

// BubbleSort sorts the list in ascending order as determined by cmp.
// Adjacent nodes are only swapped when cmp reports the first as
// strictly greater, so equal values keep their relative order.
func (ls *Single[T]) BubbleSort(cmp func(a, b T) int) {
	if ls.size < 2 {
		return
	}

	for last := ls.size - 1; last > 0; last-- {
		var prev *SingleNode[T]
		cur := ls.head
		var swapped bool
		for range last {
			next := cur.next
			if cmp(cur.Val, next.Val) <= 0 {
				prev, cur = cur, next
				continue
			}

			cur.next = next.next
			next.next = cur
			if prev == nil {
				ls.head = next
			} else {
				prev.next = next
			}
			if cur.next == nil {
				ls.tail = cur
			}

			prev = next
			swapped = true
		}

		if !swapped {
			return
		}
	}
}

// MergeSort sorts the list in ascending order as determined by cmp
// using a bottom-up merge of ever wider runs. Like BubbleSort, it is
// stable.
func (ls *Single[T]) MergeSort(cmp func(a, b T) int) {
	if ls.size < 2 {
		return
	}

	for width := 1; width < ls.size; width *= 2 {
		var head, tail *SingleNode[T]
		rest := ls.head
		for rest != nil {
			left := rest
			right := split(left, width)
			rest = split(right, width)

			h, t := merge(left, right, cmp)
			if head == nil {
				head = h
			} else {
				tail.next = h
			}
			tail = t
		}

		ls.head, ls.tail = head, tail
	}
}

// split cuts the chain starting at n after count nodes and returns
// the first node of the remainder.
func split[T any](n *SingleNode[T], count int) *SingleNode[T] {
	for i := 1; n != nil && i < count; i++ {
		n = n.next
	}
	if n == nil {
		return nil
	}

	rest := n.next
	n.next = nil
	return rest
}

// merge joins two nil-terminated sorted chains. Ties are taken from a
// first.
func merge[T any](a, b *SingleNode[T], cmp func(a, b T) int) (head, tail *SingleNode[T]) {
	var start SingleNode[T]
	tail = &start
	for a != nil && b != nil {
		if cmp(b.Val, a.Val) < 0 {
			tail.next = b
			b = b.next
		} else {
			tail.next = a
			a = a.next
		}
		tail = tail.next
	}

	if a != nil {
		tail.next = a
	} else {
		tail.next = b
	}
	for tail.next != nil {
		tail = tail.next
	}

	return start.next, tail
}

// All returns an iterator over the elements of the list.
func (ls *Single[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		cur := ls.head
		for cur != nil {
			if !yield(cur.Val) {
				return
			}
			cur = cur.next
		}
	}
}

var errBadEnds = errors.New("head, tail, and size disagree about emptiness")

// Check verifies the structural invariants of the list: the ends and
// size agree, the chain from head reaches tail in exactly Len()-1
// steps without a cycle, and tail terminates the chain.
func (ls *Single[T]) Check() error {
	if (ls.size == 0) != (ls.head == nil) || (ls.head == nil) != (ls.tail == nil) {
		return fmt.Errorf("%w: size %v, head %p, tail %p", errBadEnds, ls.size, ls.head, ls.tail)
	}
	if ls.size < 0 {
		return fmt.Errorf("negative size %v", ls.size)
	}
	if ls.size == 0 {
		return nil
	}

	cur := ls.head
	for i := 1; i < ls.size; i++ {
		cur = cur.next
		if cur == nil {
			return fmt.Errorf("chain ended after %v of %v nodes", i, ls.size)
		}
	}
	if cur != ls.tail {
		return fmt.Errorf("node %v is not the tail", ls.size)
	}
	if cur.next != nil {
		return errors.New("tail has a successor")
	}

	return nil
}

// SingleNode is a node of a [Single].
type SingleNode[T any] struct {
	Val  T
	next *SingleNode[T]
}

func (n *SingleNode[T]) insert() *SingleNode[T] {
	if n == nil {
		return new(SingleNode[T])
	}

	n.next = &SingleNode[T]{next: n.next}
	return n.next
}
