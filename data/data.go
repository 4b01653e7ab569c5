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

// Package data provides an in-memory dataset whose items carry raw values
// along named dimensions and bags of resolved visual attributes.
//
// A List is built up by appending items:
//
//	l := data.NewList("x", "y")
//	l.Append(util.DoubleValue(1), util.StringValue("a"))
//
// or parsed from JSON, where each item is either an array of dimension values
// or an object holding such an array under 'value' and, optionally,
// 'visualMap: false' to exempt the item from visual mapping:
//
//	l, err := data.ParseList([]string{"x"}, []byte(`[[1], {"value": [2], "visualMap": false}]`))
package data

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ilhamster/visualmap/util"
	visualmapping "github.com/ilhamster/visualmap/visual_mapping"
)

// Visuals is a bag of resolved visual attributes keyed by attribute name.
type Visuals map[string]*util.V

// Visual returns the visual attribute with the specified key, or nil.
func (v Visuals) Visual(key string) *util.V {
	return v[key]
}

// SetVisual sets the visual attribute with the specified key.
func (v Visuals) SetVisual(key string, val *util.V) {
	v[key] = val
}

// PrettyPrint returns the receiver's attributes in key order, for testing.
func (v Visuals) PrettyPrint() string {
	if len(v) == 0 {
		return "{ }"
	}
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for idx, key := range keys {
		parts[idx] = key + ": " + v[key].PrettyPrint()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// List is an in-memory dataset.
type List struct {
	dimNames []string
	dims     map[string]int
	values   [][]*util.V
	exempt   []bool
	visuals  []Visuals
}

// NewList returns a new, empty List with the specified dimensions.
func NewList(dims ...string) *List {
	l := &List{
		dimNames: dims,
		dims:     make(map[string]int, len(dims)),
	}
	for idx, dim := range dims {
		l.dims[dim] = idx
	}
	return l
}

// Append adds an item with the provided values, one per dimension, and
// returns its index.
func (l *List) Append(values ...*util.V) (int, error) {
	if len(values) != len(l.dimNames) {
		return 0, fmt.Errorf("expected %d values, got %d", len(l.dimNames), len(values))
	}
	l.values = append(l.values, values)
	l.exempt = append(l.exempt, false)
	l.visuals = append(l.visuals, Visuals{})
	return len(l.values) - 1, nil
}

// SetExempt specifies whether the item at idx is exempt from visual mapping.
func (l *List) SetExempt(idx int, exempt bool) {
	l.exempt[idx] = exempt
}

// Dimensions returns the receiver's dimension names.
func (l *List) Dimensions() []string {
	return l.dimNames
}

// Count returns the number of items in the receiver.
func (l *List) Count() int {
	return len(l.values)
}

// Get returns the value of the item at idx along the specified dimension,
// or nil if there is no such dimension.
func (l *List) Get(dim string, idx int) *util.V {
	d, ok := l.dims[dim]
	if !ok {
		return nil
	}
	return l.values[idx][d]
}

// Exempt returns true if the item at idx is exempt from visual mapping.
func (l *List) Exempt(idx int) bool {
	return l.exempt[idx]
}

// ItemVisual returns the visual bag of the item at idx.
func (l *List) ItemVisual(idx int) visualmapping.VisualBag {
	return l.visuals[idx]
}

// Visuals returns the visual bag of the item at idx.
func (l *List) Visuals(idx int) Visuals {
	return l.visuals[idx]
}

// ClearVisuals empties every item's visual bag.
func (l *List) ClearVisuals() {
	for idx := range l.visuals {
		l.visuals[idx] = Visuals{}
	}
}

// PrettyPrint returns the receiver's items with their visuals, for testing.
func (l *List) PrettyPrint() string {
	var sb strings.Builder
	for idx, values := range l.values {
		parts := make([]string, len(values))
		for d, v := range values {
			parts[d] = l.dimNames[d] + "=" + v.PrettyPrint()
		}
		fmt.Fprintf(&sb, "%d: %s", idx, strings.Join(parts, " "))
		if l.exempt[idx] {
			sb.WriteString(" (exempt)")
		}
		fmt.Fprintf(&sb, " %s\n", l.visuals[idx].PrettyPrint())
	}
	return sb.String()
}

// ParseList parses a JSON array of items into a List with the specified
// dimensions.  All malformed items are reported.
func ParseList(dims []string, j []byte) (*List, error) {
	v, err := util.ValueFromJSON(j)
	if err != nil {
		return nil, err
	}
	items, err := util.ExpectListValue(v)
	if err != nil {
		return nil, fmt.Errorf("dataset must be a list: %w", err)
	}
	l := NewList(dims...)
	var errs []error
	for idx, item := range items {
		exempt := false
		if util.IsMap(item) {
			if vm, ok := util.Lookup(item, "visualMap"); ok {
				if b, err := util.ExpectBoolValue(vm); err == nil && !b {
					exempt = true
				}
			}
			item, _ = util.Lookup(item, "value")
		}
		values, ok := util.Elements(item)
		if !ok {
			if item == nil || util.IsMap(item) {
				errs = append(errs, fmt.Errorf("item %d: no values", idx))
				continue
			}
			values = []*util.V{item}
		}
		got, err := l.Append(values...)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", idx, err))
			continue
		}
		l.SetExempt(got, exempt)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return l, nil
}
