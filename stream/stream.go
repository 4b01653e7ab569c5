/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package stream splits long passes over a dataset into resumable windows.
//
// A Task covers the item indices [0, count).  Each call to Perform returns a
// Cursor over the next window of at most step indices, so that a caller may
// process a large dataset across several turns, doing a bounded amount of
// work per turn.  Abandoning a Task mid-pass requires no cleanup.
//
// In Mod mode, indices are visited in a strided order: the first windows
// visit every modBy'th item, so that a partially-processed dataset is
// sampled evenly.
package stream

// Cursor yields item indices.
type Cursor interface {
	// Next returns the next index, or false if the cursor is exhausted.
	Next() (int, bool)
}

// Range is a Cursor over the indices [start, end).
type Range struct {
	cur, end int
}

// NewRange returns a new Range over [start, end).
func NewRange(start, end int) *Range {
	return &Range{cur: start, end: end}
}

// Next returns the next index in the range.
func (r *Range) Next() (int, bool) {
	if r.cur >= r.end {
		return 0, false
	}
	ret := r.cur
	r.cur++
	return ret, true
}

// Mode is the order in which a Task visits indices.
type Mode int

const (
	// Sequential visits indices in ascending order.
	Sequential Mode = iota
	// Mod visits indices in strided order.
	Mod
)

// Task divides a pass over [0, count) into windows.
type Task struct {
	count int
	step  int
	mode  Mode
	modBy int
	due   int
}

// NewTask returns a new sequential Task over [0, count) performing at most
// step indices per window.  A non-positive step performs everything in one
// window.
func NewTask(count, step int) *Task {
	return &Task{
		count: count,
		step:  step,
		mode:  Sequential,
	}
}

// WithMod switches the receiver to Mod mode, visiting every modBy'th index
// first.  A modBy below 2 leaves the receiver sequential.  It should be
// invoked before the first Perform.
func (t *Task) WithMod(modBy int) *Task {
	if modBy > 1 {
		t.mode = Mod
		t.modBy = modBy
	}
	return t
}

// Mode returns the receiver's visiting order.
func (t *Task) Mode() Mode {
	return t.mode
}

// Done returns true if every window has been performed.
func (t *Task) Done() bool {
	return t.due >= t.count
}

// Reset restarts the receiver over [0, count).
func (t *Task) Reset(count int) {
	t.count = count
	t.due = 0
}

// Perform returns a Cursor over the next window.  The second return value is
// false if the receiver is done.
func (t *Task) Perform() (Cursor, bool) {
	if t.Done() {
		return nil, false
	}
	start := t.due
	end := t.count
	if t.step > 0 && start+t.step < end {
		end = start + t.step
	}
	t.due = end
	if t.mode == Mod {
		return &modCursor{
			cur:   start,
			end:   end,
			count: t.count,
			modBy: t.modBy,
		}, true
	}
	return NewRange(start, end), true
}

// modCursor visits positions [cur, end) of the strided order over
// [0, count): first every index congruent to 0 modulo modBy, then every
// index congruent to 1, and so forth.
type modCursor struct {
	cur, end     int
	count, modBy int
}

func (mc *modCursor) Next() (int, bool) {
	if mc.cur >= mc.end {
		return 0, false
	}
	pos := mc.cur
	mc.cur++
	return strided(pos, mc.count, mc.modBy), true
}

// strided returns the index at position pos of the strided order.  The
// first count%modBy residues hold one more index than the rest.
func strided(pos, count, modBy int) int {
	full, rem := count/modBy, count%modBy
	var residue, k int
	if long := rem * (full + 1); pos < long {
		residue, k = pos/(full+1), pos%(full+1)
	} else {
		pos -= long
		residue, k = rem+pos/full, pos%full
	}
	return k*modBy + residue
}
