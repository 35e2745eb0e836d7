package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryOrder(t *testing.T) {
	var r Registry[string]
	r.Add("a")
	r.Add("b")
	r.Add("c")

	var got []string
	r.Each(func(s string) { got = append(got, s) })
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, r.Len())
}

func TestRegistryRemoveDuringDispatch(t *testing.T) {
	var r Registry[func()]
	var calls []string
	var hb Handle

	r.Add(func() {
		calls = append(calls, "a")
		r.Remove(hb) // b must not run in this pass
	})
	hb = r.Add(func() { calls = append(calls, "b") })
	r.Add(func() { calls = append(calls, "c") })

	r.Each(func(fn func()) { fn() })
	assert.Equal(t, []string{"a", "c"}, calls)
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Remove(hb))
}

func TestRegistryAddDuringDispatch(t *testing.T) {
	var r Registry[func()]
	n := 0
	r.Add(func() {
		n++
		if n == 1 {
			r.Add(func() { n += 10 })
		}
	})

	r.Each(func(fn func()) { fn() })
	assert.Equal(t, 1, n)

	r.Each(func(fn func()) { fn() })
	assert.Equal(t, 12, n)
}

func TestRegistrySelfRemoval(t *testing.T) {
	var r Registry[func()]
	var h Handle
	count := 0
	h = r.Add(func() {
		count++
		r.Remove(h)
	})

	r.Each(func(fn func()) { fn() })
	r.Each(func(fn func()) { fn() })
	assert.Equal(t, 1, count)
	assert.Zero(t, r.Len())
}

func TestRegistryRemoveFuncAndClear(t *testing.T) {
	var r Registry[int]
	for i := 0; i < 6; i++ {
		r.Add(i)
	}
	assert.Equal(t, 3, r.RemoveFunc(func(v int) bool { return v%2 == 0 }))

	var got []int
	r.Each(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{1, 3, 5}, got)

	r.Clear()
	assert.Zero(t, r.Len())
}
