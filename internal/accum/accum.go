// BSD 3-Clause License

// Copyright (c) 2023, Stephen Fletcher
// All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:

// 1. Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.

// 2. Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.

// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package accum provides the running aggregates the commands fold records into.
// Every accumulator is usable at its zero value except Nearest, Group and
// Tally which need their constructors.
package accum

import "math"

// Counter counts accepted records.
type Counter struct {
	n int
}

func (c *Counter) Add()       { c.n++ }
func (c *Counter) AddN(n int) { c.n += n }
func (c *Counter) Value() int { return c.n }

// Stats keeps count, sum and range of a stream of numbers.
type Stats struct {
	n   int
	sum float64
	min float64
	max float64
}

func (s *Stats) Add(v float64) {
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if s.n == 0 || v > s.max {
		s.max = v
	}
	s.n++
	s.sum += v
}

func (s *Stats) Count() int   { return s.n }
func (s *Stats) Sum() float64 { return s.sum }

// Mean reports false when nothing was added.
func (s *Stats) Mean() (float64, bool) {
	if s.n == 0 {
		return math.NaN(), false
	}
	return s.sum / float64(s.n), true
}

func (s *Stats) Min() (float64, bool) { return s.min, s.n > 0 }
func (s *Stats) Max() (float64, bool) { return s.max, s.n > 0 }

// Nearest tracks, per category, the smallest distance seen and the payload
// that produced it. Only a strictly smaller distance replaces the current
// best, so ties keep the earliest offer.
type Nearest[C comparable, P any] struct {
	best map[C]nearestEntry[P]
}

type nearestEntry[P any] struct {
	dist    int
	payload P
}

func NewNearest[C comparable, P any]() *Nearest[C, P] {
	return &Nearest[C, P]{best: make(map[C]nearestEntry[P])}
}

// Offer reports whether the candidate became the new best for cat.
func (n *Nearest[C, P]) Offer(cat C, dist int, payload P) bool {
	cur, ok := n.best[cat]
	if ok && dist >= cur.dist {
		return false
	}
	n.best[cat] = nearestEntry[P]{dist: dist, payload: payload}
	return true
}

func (n *Nearest[C, P]) Best(cat C) (dist int, payload P, ok bool) {
	e, ok := n.best[cat]
	return e.dist, e.payload, ok
}

// Group maps keys to the values appended under them, remembering the order
// in which keys first appeared.
type Group[K comparable, V any] struct {
	vals map[K][]V
	keys []K
}

func NewGroup[K comparable, V any]() *Group[K, V] {
	return &Group[K, V]{vals: make(map[K][]V)}
}

func (g *Group[K, V]) Append(k K, v V) {
	cur, ok := g.vals[k]
	if !ok {
		g.keys = append(g.keys, k)
	}
	g.vals[k] = append(cur, v)
}

func (g *Group[K, V]) Get(k K) ([]V, bool) {
	v, ok := g.vals[k]
	return v, ok
}

func (g *Group[K, V]) Keys() []K { return append([]K(nil), g.keys...) }
func (g *Group[K, V]) Len() int  { return len(g.keys) }

// Tally counts occurrences per key in first-seen key order.
type Tally[K comparable] struct {
	counts map[K]int
	keys   []K
}

func NewTally[K comparable]() *Tally[K] {
	return &Tally[K]{counts: make(map[K]int)}
}

func (t *Tally[K]) Add(k K) { t.AddN(k, 1) }

func (t *Tally[K]) AddN(k K, n int) {
	if _, ok := t.counts[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.counts[k] += n
}

func (t *Tally[K]) Count(k K) int { return t.counts[k] }
func (t *Tally[K]) Keys() []K     { return append([]K(nil), t.keys...) }
