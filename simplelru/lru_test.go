// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplelru_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/venkatsvpr/lrucache/simplelru"
	"github.com/venkatsvpr/lrucache/testutils"
)

func newIntLRU(t *testing.T, size int, evictCounter *int) *simplelru.LRU[int, int] {
	t.Helper()
	onEvicted := func(k int, v int) {
		if k != v {
			t.Fatalf("Evict values not equal (%v!=%v)", k, v)
		}
		*evictCounter++
	}
	l, err := simplelru.NewLRU(size, onEvicted)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return l
}

func TestLRU(t *testing.T) {
	evictCounter := 0
	l := newIntLRU(t, 128, &evictCounter)
	testutils.BasicTest(t, l, 128, &evictCounter)
}

func TestLRU_GetOldest_RemoveOldest(t *testing.T) {
	l, err := simplelru.NewLRU[int, int](128, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testutils.GetOldestRemoveOldestTest(t, l, 128)
}

// Test that Add returns true/false if an eviction occurred
func TestLRU_Add(t *testing.T) {
	evictCounter := 0
	l := newIntLRU(t, 1, &evictCounter)
	testutils.AddTest(t, l, 1, &evictCounter)
}

// Test that Contains doesn't update recent-ness
func TestLRU_Contains(t *testing.T) {
	l, err := simplelru.NewLRU[int, int](2, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testutils.ContainsTest(t, l, 2)
}

// Test that Peek doesn't update recent-ness
func TestLRU_Peek(t *testing.T) {
	l, err := simplelru.NewLRU[int, int](2, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	testutils.PeekTest(t, l, 2)
}

func TestNewLRU_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -5} {
		l, err := simplelru.NewLRU[string, int](size, nil)
		assert.Check(t, is.Nil(l))
		assert.Check(t, errors.Is(err, simplelru.ErrInvalidCapacity), "size %d: %v", size, err)
		assert.Check(t, errdefs.IsInvalidArgument(err))
	}
}

func TestNewLRU_Empty(t *testing.T) {
	for _, size := range []int{1, 2, 1 << 20} {
		l, err := simplelru.NewLRU[string, int](size, nil)
		assert.NilError(t, err)
		assert.Check(t, is.Equal(l.Len(), 0))
		assert.Check(t, is.Equal(l.Capacity(), size))
		assert.Check(t, is.Len(l.Keys(), 0))
	}
}

func wantKeys[K comparable, V any](t *testing.T, c *simplelru.LRU[K, V], want []K) {
	t.Helper()
	got := c.Keys()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong keys got: %v, want: %v ", got, want)
	}
}

func TestCache_EvictionSameKey(t *testing.T) {
	var evictedKeys []int

	cache, _ := simplelru.NewLRU(
		2,
		func(key int, _ struct{}) {
			evictedKeys = append(evictedKeys, key)
		})

	if evicted := cache.Add(1, struct{}{}); evicted {
		t.Error("First 1: got unexpected eviction")
	}
	wantKeys(t, cache, []int{1})

	if evicted := cache.Add(2, struct{}{}); evicted {
		t.Error("2: got unexpected eviction")
	}
	wantKeys(t, cache, []int{1, 2})

	if evicted := cache.Add(1, struct{}{}); evicted {
		t.Error("Second 1: got unexpected eviction")
	}
	wantKeys(t, cache, []int{2, 1})

	if evicted := cache.Add(3, struct{}{}); !evicted {
		t.Error("3: did not get expected eviction")
	}
	wantKeys(t, cache, []int{1, 3})

	want := []int{2}
	if !reflect.DeepEqual(evictedKeys, want) {
		t.Errorf("evictedKeys got: %v want: %v", evictedKeys, want)
	}
}

func TestLRU_GetPromotes(t *testing.T) {
	c, err := simplelru.NewLRU[string, int](2, nil)
	assert.NilError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	v, ok := c.Get("a")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(v, 1))
	wantKeys(t, c, []string{"b", "a"})

	assert.Check(t, c.Add("c", 3))
	assert.Check(t, !c.Contains("b"))
	assert.Check(t, c.Contains("a"))
	assert.Check(t, c.Contains("c"))
	assert.Check(t, is.Equal(c.Len(), 2))
}

func TestLRU_UpdatePromotes(t *testing.T) {
	c, err := simplelru.NewLRU[string, int](2, nil)
	assert.NilError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	assert.Check(t, !c.Add("a", 11))
	assert.Check(t, is.Equal(c.Len(), 2))
	wantKeys(t, c, []string{"b", "a"})

	c.Add("c", 3)
	assert.Check(t, !c.Contains("b"))
	v, ok := c.Get("a")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(v, 11))
}

func TestLRU_GetMiss(t *testing.T) {
	c, err := simplelru.NewLRU[string, *int](2, nil)
	assert.NilError(t, err)

	v, ok := c.Get("missing")
	assert.Check(t, !ok)
	assert.Check(t, is.Nil(v))
	assert.Check(t, is.Equal(c.Len(), 0))
}

func TestLRU_Remove(t *testing.T) {
	c, err := simplelru.NewLRU[string, int](2, nil)
	assert.NilError(t, err)

	assert.Check(t, !c.Remove("a"), "remove on empty cache")

	c.Add("a", 1)
	c.Add("b", 2)
	assert.Check(t, c.Remove("a"))
	assert.Check(t, !c.Remove("a"))
	assert.Check(t, is.Equal(c.Len(), 1))
	_, ok := c.Get("a")
	assert.Check(t, !ok)
	assert.Check(t, !c.Remove("zzz"))
	assert.Check(t, is.Equal(c.Len(), 1))
}

// A removed key that comes back is inserted as the newest entry, not at the
// position it had before.
func TestLRU_ReAddAfterRemove(t *testing.T) {
	c, err := simplelru.NewLRU[string, int](3, nil)
	assert.NilError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Remove("a")
	c.Add("a", 4)
	wantKeys(t, c, []string{"b", "c", "a"})

	c.Add("d", 5)
	assert.Check(t, !c.Contains("b"))
	v, ok := c.Peek("a")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(v, 4))
}

func TestLRU_EmptyStringKey(t *testing.T) {
	c, err := simplelru.NewLRU[string, int](1, nil)
	assert.NilError(t, err)

	c.Add("", 1)
	v, ok := c.Get("")
	assert.Check(t, ok)
	assert.Check(t, is.Equal(v, 1))
}

func TestLRU_Purge(t *testing.T) {
	var evicted []string
	c, err := simplelru.NewLRU(4, func(k string, _ int) {
		evicted = append(evicted, k)
	})
	assert.NilError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Purge()
	assert.Check(t, is.DeepEqual(evicted, []string{"a", "b", "c"}))
	assert.Check(t, is.Equal(c.Len(), 0))

	// the cache is fully usable after a purge
	for i, k := range []string{"w", "x", "y", "z", "v"} {
		c.Add(k, i)
	}
	wantKeys(t, c, []string{"x", "y", "z", "v"})
}

type key struct{ id int }

// recoverErr runs fn and returns the error it panicked with.
func recoverErr(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		var ok bool
		if err, ok = r.(error); !ok {
			t.Fatalf("panic value is not an error: %v", r)
		}
	}()
	fn()
	return nil
}

func TestLRU_NilKey(t *testing.T) {
	c, err := simplelru.NewLRU[*key, int](2, nil)
	assert.NilError(t, err)

	a := &key{1}
	c.Add(a, 1)

	ops := map[string]func(){
		"Add":      func() { c.Add(nil, 42) },
		"Get":      func() { c.Get(nil) },
		"Contains": func() { c.Contains(nil) },
		"Peek":     func() { c.Peek(nil) },
		"Remove":   func() { c.Remove(nil) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := recoverErr(t, op)
			assert.Check(t, errors.Is(err, simplelru.ErrNilKey))
			assert.Check(t, errdefs.IsInvalidArgument(err))

			// nothing changed
			assert.Check(t, is.Equal(c.Len(), 1))
			wantKeys(t, c, []*key{a})
		})
	}
}

func TestLRU_NilInterfaceKey(t *testing.T) {
	c, err := simplelru.NewLRU[any, int](2, nil)
	assert.NilError(t, err)

	c.Add(1, 1)
	c.Add("one", 1)
	assert.Check(t, is.Equal(c.Len(), 2))

	err = recoverErr(t, func() { c.Add(nil, 0) })
	assert.Check(t, errors.Is(err, simplelru.ErrNilKey))
	assert.Check(t, is.Equal(c.Len(), 2))
}
