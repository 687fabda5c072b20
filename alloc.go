package lq

import "fmt"

// Kind identifies what a piece of storage is used for.
type Kind int

const (
	KindQueue Kind = iota
	KindNode
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindQueue:
		return "queue"
	case KindNode:
		return "node"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// An Allocator accounts for the storage used by a Queue. Alloc is
// called before every queue, node, and string copy is created and may
// refuse by returning an error, in which case the operation fails
// without changing the queue. Free is called exactly once for every
// successful Alloc, with the same kind and size, when that storage is
// released.
//
// The package-level default accepts every allocation. Harnesses that
// need to inject failures or find leaks can provide their own, such
// as the one in package alloctest.
type Allocator interface {
	Alloc(kind Kind, size int) error
	Free(kind Kind, size int)
}

type heap struct{}

func (heap) Alloc(Kind, int) error { return nil }
func (heap) Free(Kind, int)        {}

func alloc(a Allocator, kind Kind, size int) error {
	err := a.Alloc(kind, size)
	if err != nil {
		return fmt.Errorf("%w: %v of %v bytes: %w", ErrAlloc, kind, size, err)
	}
	return nil
}
