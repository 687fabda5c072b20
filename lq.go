// Package lq provides a queue of strings backed by a singly-linked
// chain of nodes. Besides the usual insertion at either end and
// removal from the head, the chain can be reversed and sorted in
// place by relinking its nodes.
//
// A Queue is not safe for concurrent use.
package lq

import "errors"

var (
	// ErrNilQueue is returned by operations invoked on a nil *Queue.
	ErrNilQueue = errors.New("nil queue")

	// ErrEmpty is returned when removing from a queue with no
	// elements.
	ErrEmpty = errors.New("queue is empty")

	// ErrAlloc is returned when an Allocator refuses storage for a
	// queue, a node, or a string copy.
	ErrAlloc = errors.New("allocation failed")
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
