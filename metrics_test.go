// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package lru

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("test", "scenario")
	c, err := New[string, int](2, WithMetrics(m))
	assert.NilError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a")
	c.Get("zzz")
	c.Add("a", 11)
	c.Add("c", 3) // evicts b
	c.Contains("b")
	c.Peek("a")
	c.Remove("a")
	c.Remove("a")
	c.ContainsOrAdd("c", 0)
	c.PeekOrAdd("d", 4)

	assert.Check(t, is.Equal(testutil.ToFloat64(m.hits), 1.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.misses), 1.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.inserts), 4.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.updates), 1.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.evictions), 1.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.removals), 1.0))
	assert.Check(t, is.Equal(testutil.ToFloat64(m.entries), 2.0))

	c.Purge()
	assert.Check(t, is.Equal(testutil.ToFloat64(m.entries), 0.0))
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewMetrics("test", "registered")
	assert.NilError(t, reg.Register(m))

	c, err := New[int, int](1, WithMetrics(m))
	assert.NilError(t, err)
	c.Add(1, 1)
	c.Add(2, 2)

	n, err := testutil.GatherAndCount(reg, "test_lru_evictions_total", "test_lru_entries")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(n, 2))

	families, err := reg.Gather()
	assert.NilError(t, err)
	assert.Check(t, is.Len(families, 7))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.lookup(true)
	m.set(false, true, 1)
	m.remove(0)
	m.setEntries(0)
}
