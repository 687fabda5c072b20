package list_test

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"deedles.dev/lq/internal/list"
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func fill(vals ...string) *list.Single[string] {
	var ls list.Single[string]
	for _, v := range vals {
		ls.PushTail(v)
	}
	return &ls
}

func requireChain[T any](t *testing.T, ls *list.Single[T], want []T) {
	t.Helper()
	require.NoError(t, ls.Check())
	if diff := gocmp.Diff(want, slices.Collect(ls.All()), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("chain (-want +got):\n%s", diff)
	}
	require.Equal(t, len(want), ls.Len())
}

func TestSinglePush(t *testing.T) {
	var ls list.Single[string]
	requireChain(t, &ls, nil)

	ls.PushTail("one")
	requireChain(t, &ls, []string{"one"})
	ls.PushTail("two")
	ls.PushHead("zero")
	requireChain(t, &ls, []string{"zero", "one", "two"})

	var head list.Single[string]
	head.PushHead("b")
	head.PushHead("a")
	head.PushTail("c")
	requireChain(t, &head, []string{"a", "b", "c"})
}

func TestSinglePopHead(t *testing.T) {
	ls := fill("a", "b")

	v, ok := ls.PopHead()
	require.True(t, ok)
	require.Equal(t, "a", v)
	requireChain(t, ls, []string{"b"})

	v, ok = ls.PopHead()
	require.True(t, ok)
	require.Equal(t, "b", v)
	requireChain(t, ls, nil)

	_, ok = ls.PopHead()
	require.False(t, ok)
	_, ok = ls.Peek()
	require.False(t, ok)

	// The tail must have been reset when the list drained, or this
	// push would link onto a detached node.
	ls.PushTail("c")
	requireChain(t, ls, []string{"c"})
	v, ok = ls.Peek()
	require.True(t, ok)
	require.Equal(t, "c", v)
}

func TestSingleClear(t *testing.T) {
	ls := fill("a", "b", "c")

	var released []string
	ls.Clear(func(v string) { released = append(released, v) })
	require.Equal(t, []string{"a", "b", "c"}, released)
	requireChain(t, ls, nil)

	ls.Clear(nil)
	ls.PushHead("d")
	requireChain(t, ls, []string{"d"})
}

func TestSingleReverse(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"Empty", nil, nil},
		{"One", []string{"a"}, []string{"a"}},
		{"Two", []string{"a", "b"}, []string{"b", "a"}},
		{"Many", []string{"a", "b", "c", "d", "e"}, []string{"e", "d", "c", "b", "a"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ls := fill(test.in...)
			ls.Reverse()
			requireChain(t, ls, test.want)

			ls.PushTail("z")
			requireChain(t, ls, append(slices.Clone(test.want), "z"))
		})
	}
}

type keyed struct {
	Key string
	ID  int
}

func byKey(a, b keyed) int {
	return cmp.Compare(a.Key, b.Key)
}

func TestSingleSort(t *testing.T) {
	sorts := map[string]func(*list.Single[keyed]){
		"Bubble": func(ls *list.Single[keyed]) { ls.BubbleSort(byKey) },
		"Merge":  func(ls *list.Single[keyed]) { ls.MergeSort(byKey) },
	}

	for name, sort := range sorts {
		t.Run(name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			for size := range 40 {
				var ls list.Single[keyed]
				want := make([]keyed, 0, size)
				for id := range size {
					v := keyed{Key: string(rune('a' + r.IntN(5))), ID: id}
					ls.PushTail(v)
					want = append(want, v)
				}
				slices.SortStableFunc(want, byKey)

				sort(&ls)
				requireChain(t, &ls, want)

				sort(&ls)
				requireChain(t, &ls, want)
			}
		})
	}
}

func TestSingleSortTail(t *testing.T) {
	ls := fill("c", "b", "a")
	ls.BubbleSort(cmp.Compare[string])
	requireChain(t, ls, []string{"a", "b", "c"})
	ls.PushTail("d")
	requireChain(t, ls, []string{"a", "b", "c", "d"})

	ls = fill("d", "c", "b", "a", "e")
	ls.MergeSort(cmp.Compare[string])
	requireChain(t, ls, []string{"a", "b", "c", "d", "e"})
	ls.PushTail("f")
	requireChain(t, ls, []string{"a", "b", "c", "d", "e", "f"})
}

func BenchmarkSingleSort(b *testing.B) {
	r := rand.New(rand.NewPCG(3, 4))
	vals := make([]string, 512)
	for i := range vals {
		vals[i] = string(rune('a' + r.IntN(26)))
	}

	b.Run("Bubble", func(b *testing.B) {
		for range b.N {
			fill(vals...).BubbleSort(cmp.Compare[string])
		}
	})
	b.Run("Merge", func(b *testing.B) {
		for range b.N {
			fill(vals...).MergeSort(cmp.Compare[string])
		}
	})
}
