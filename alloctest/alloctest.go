// Package alloctest provides an instrumented lq.Allocator for
// harnesses that need to inject allocation failures or verify that a
// queue releases everything it obtains.
package alloctest

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"deedles.dev/lq"
)

// ErrInjected is returned by Tracker.Alloc for failures that it
// injected.
var ErrInjected = errors.New("injected allocation failure")

// Tracker is an lq.Allocator that records outstanding storage by
// kind. It can be made to refuse allocations either for a fixed number
// of upcoming calls or at random.
//
// The zero value accepts everything and is ready to use.
type Tracker struct {
	blocks map[lq.Kind]int
	bytes  map[lq.Kind]int

	failNext int
	failKind map[lq.Kind]int
	failRate float64
	rand     *rand.Rand

	allocs, frees, failed int
	bad                   []error
}

// NewTracker returns a Tracker that refuses allocations with
// probability rate, using a random source seeded with seed.
func NewTracker(rate float64, seed uint64) *Tracker {
	t := Tracker{rand: rand.New(rand.NewPCG(seed, seed))}
	t.SetFailRate(rate)
	return &t
}

func (t *Tracker) init() {
	if t.blocks == nil {
		t.blocks = make(map[lq.Kind]int)
		t.bytes = make(map[lq.Kind]int)
	}
}

// FailNext makes the next n calls to Alloc fail.
func (t *Tracker) FailNext(n int) {
	t.failNext = max(n, 0)
}

// FailNextKind makes the next n calls to Alloc for the given kind
// fail. Allocations of other kinds are unaffected.
func (t *Tracker) FailNextKind(kind lq.Kind, n int) {
	if t.failKind == nil {
		t.failKind = make(map[lq.Kind]int)
	}
	t.failKind[kind] = max(n, 0)
}

// SetFailRate makes every call to Alloc fail with probability rate,
// clamped to [0, 1].
func (t *Tracker) SetFailRate(rate float64) {
	t.failRate = min(max(rate, 0), 1)
	if t.rand == nil {
		t.rand = rand.New(rand.NewPCG(0, 0))
	}
}

func (t *Tracker) fail(kind lq.Kind) bool {
	if t.failKind[kind] > 0 {
		t.failKind[kind]--
		return true
	}
	if t.failNext > 0 {
		t.failNext--
		return true
	}
	return t.failRate > 0 && t.rand.Float64() < t.failRate
}

// Alloc implements lq.Allocator.
func (t *Tracker) Alloc(kind lq.Kind, size int) error {
	t.init()

	if t.fail(kind) {
		t.failed++
		return ErrInjected
	}

	t.allocs++
	t.blocks[kind]++
	t.bytes[kind] += size
	return nil
}

// Free implements lq.Allocator. Frees with nothing outstanding for
// the kind, or that would release more bytes than are outstanding,
// are recorded and reported by Check.
func (t *Tracker) Free(kind lq.Kind, size int) {
	t.init()

	if t.blocks[kind] == 0 {
		t.bad = append(t.bad, fmt.Errorf("free of %v with none outstanding", kind))
		return
	}
	if t.bytes[kind] < size {
		t.bad = append(t.bad, fmt.Errorf("free of %v bytes of %v with only %v outstanding", size, kind, t.bytes[kind]))
		return
	}

	t.frees++
	t.blocks[kind]--
	t.bytes[kind] -= size
}

// Outstanding returns the number of blocks of the given kind that
// have been allocated but not freed.
func (t *Tracker) Outstanding(kind lq.Kind) int {
	return t.blocks[kind]
}

// OutstandingBytes returns the number of bytes of the given kind that
// have been allocated but not freed.
func (t *Tracker) OutstandingBytes(kind lq.Kind) int {
	return t.bytes[kind]
}

// Failed returns the number of allocations that have been refused.
func (t *Tracker) Failed() int {
	return t.failed
}

// Check returns an error describing every bad free seen so far and
// every kind that still has storage outstanding. It returns nil if
// everything allocated has been freed exactly once.
func (t *Tracker) Check() error {
	errs := append([]error(nil), t.bad...)
	for _, kind := range []lq.Kind{lq.KindQueue, lq.KindNode, lq.KindString} {
		if n := t.blocks[kind]; n != 0 {
			errs = append(errs, fmt.Errorf("%v %v blocks (%v bytes) leaked", n, kind, t.bytes[kind]))
		}
	}
	return errors.Join(errs...)
}

// LogValue implements slog.LogValuer.
func (t *Tracker) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("allocs", t.allocs),
		slog.Int("frees", t.frees),
		slog.Int("failed", t.failed),
		slog.Int("bad_frees", len(t.bad)),
		slog.Int("nodes", t.blocks[lq.KindNode]),
		slog.Int("strings", t.blocks[lq.KindString]),
		slog.Int("string_bytes", t.bytes[lq.KindString]),
	)
}
