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

package visualmapping

import (
	"fmt"
	"math"

	"github.com/ilhamster/visualmap/util"
)

// Piece is a single discrete value or interval of a piecewise mapping.
// Exactly one of Value and Interval should be set.
type Piece struct {
	// Value, if non-nil, is a discrete value matched exactly.
	Value *util.V
	// Interval, if non-nil, is the [low, high] range matched by this piece.
	// Either bound may be infinite.
	Interval *[2]float64
	// Close specifies whether the low and high bounds of Interval are
	// inclusive.
	Close [2]bool
	// Text is an optional label for the piece.
	Text string
	// Visual holds per-channel visuals that replace the interpolated visual
	// for values falling in this piece.
	Visual map[Channel]*util.V
	// Index is the piece's position in its declaration.
	Index int
	// OriginIndex is the piece's position in the list a Mapping was built
	// from.  It is populated by New.
	OriginIndex int
}

func lessThan(closed bool, a, b float64) bool {
	if closed {
		return a <= b
	}
	return a < b
}

func numeric(v *util.V) bool {
	return v != nil && (v.T == util.DoubleValueType || v.T == util.IntegerValueType)
}

// pieceValueMatches returns true if the discrete piece value pv equals value.
// String piece values also match the string form of numeric values, so that
// numeric-looking category labels match numbers.
func pieceValueMatches(pv, value *util.V) bool {
	if pv == nil || value == nil {
		return false
	}
	switch {
	case numeric(pv) && numeric(value):
		pf, _ := util.Float(pv)
		vf, _ := util.Float(value)
		return pf == vf
	case pv.T == util.StringValueType:
		key, ok := util.Key(value)
		return ok && key == pv.V.(string)
	case pv.T == util.BoolValueType && value.T == util.BoolValueType:
		return pv.V.(bool) == value.V.(bool)
	}
	return false
}

// FindPieceIndex returns the index of the piece in pieces matching value.
// Discrete pieces are checked before intervals, so a discrete piece wins over
// an interval containing the same value.  If no piece matches and
// findClosest is true, the piece whose value or nearest bound is closest to
// value is returned instead; +Inf always resolves to the last piece and -Inf
// to the first.  The second return value is false if no piece was found.
func FindPieceIndex(value *util.V, pieces []*Piece, findClosest bool) (int, bool) {
	num, _ := util.Float(value)
	possible, closest := -1, math.Inf(1)
	updatePossible := func(bound float64, idx int) {
		if !findClosest {
			return
		}
		if abs := math.Abs(bound - num); abs < closest {
			closest, possible = abs, idx
		}
	}
	for idx, piece := range pieces {
		if piece.Value == nil {
			continue
		}
		if pieceValueMatches(piece.Value, value) {
			return idx, true
		}
		if pv, ok := util.Float(piece.Value); ok {
			updatePossible(pv, idx)
		}
	}
	for idx, piece := range pieces {
		if piece.Interval == nil {
			continue
		}
		lo, hi := piece.Interval[0], piece.Interval[1]
		switch {
		case math.IsInf(lo, -1):
			if lessThan(piece.Close[1], num, hi) {
				return idx, true
			}
		case math.IsInf(hi, 1):
			if lessThan(piece.Close[0], lo, num) {
				return idx, true
			}
		case lessThan(piece.Close[0], lo, num) && lessThan(piece.Close[1], num, hi):
			return idx, true
		}
		updatePossible(lo, idx)
		updatePossible(hi, idx)
	}
	if !findClosest || len(pieces) == 0 {
		return 0, false
	}
	switch {
	case math.IsInf(num, 1):
		return len(pieces) - 1, true
	case math.IsInf(num, -1):
		return 0, true
	case possible >= 0:
		return possible, true
	}
	return 0, false
}

// ParsePiece builds a Piece from a map Value holding any of the keys
// 'value', 'interval', 'close' and 'text', plus any channel names, whose
// entries become the piece's visual overrides.  Interval bounds may be given
// as the strings 'Infinity' and '-Infinity'; close flags may be booleans or
// 0/1.
func ParsePiece(v *util.V, index int) (*Piece, error) {
	if !util.IsMap(v) {
		return nil, fmt.Errorf("piece %d: expected a map, got %s", index, v.PrettyPrint())
	}
	ret := &Piece{
		Index: index,
	}
	ret.Value, _ = util.Lookup(v, "value")
	if interval, ok := util.Lookup(v, "interval"); ok {
		bounds, ok := util.Elements(interval)
		if !ok || len(bounds) != 2 {
			return nil, fmt.Errorf("piece %d: interval must have two bounds, got %s", index, interval.PrettyPrint())
		}
		var iv [2]float64
		for idx, bound := range bounds {
			f, ok := util.Float(bound)
			if !ok {
				return nil, fmt.Errorf("piece %d: interval bound %s is not a number", index, bound.PrettyPrint())
			}
			iv[idx] = f
		}
		ret.Interval = &iv
	}
	if closeVal, ok := util.Lookup(v, "close"); ok {
		flags, ok := util.Elements(closeVal)
		if !ok || len(flags) != 2 {
			return nil, fmt.Errorf("piece %d: close must have two flags, got %s", index, closeVal.PrettyPrint())
		}
		for idx, flag := range flags {
			if b, err := util.ExpectBoolValue(flag); err == nil {
				ret.Close[idx] = b
				continue
			}
			f, ok := util.Float(flag)
			if !ok {
				return nil, fmt.Errorf("piece %d: close flag %s is neither boolean nor numeric", index, flag.PrettyPrint())
			}
			ret.Close[idx] = f != 0
		}
	}
	if text, ok := util.Lookup(v, "text"); ok {
		str, err := util.ExpectStringValue(text)
		if err != nil {
			return nil, fmt.Errorf("piece %d: text: %w", index, err)
		}
		ret.Text = str
	}
	if ret.Value == nil && ret.Interval == nil {
		return nil, fmt.Errorf("piece %d: one of value or interval is required", index)
	}
	ret.Visual, _ = RetrieveVisuals(v)
	return ret, nil
}
