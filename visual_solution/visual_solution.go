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

// Package visualsolution builds collections of visual mappings keyed by
// state, and applies them across datasets.
//
// A visual option declares, per state, the visual payload of each channel:
//
//	{
//	  "inRange":    {"color": ["#000000", "#ffffff"], "opacity": [0.3, 1]},
//	  "outOfRange": {"color": "#cccccc"}
//	}
//
// CreateVisualMappings builds a Mapping for every recognized channel of every
// state, consulting a supplement callback for the mapping method, extent,
// pieces, and categories, which are not part of the payload.  ApplyVisual
// then classifies each item of a dataset into a state and applies that
// state's mappings to the item, Color before the channels derived from it.
// IncrementalApplyVisual does the same over caller-provided windows of
// items.
package visualsolution

import (
	"fmt"
	"sort"

	"github.com/ilhamster/visualmap/stream"
	"github.com/ilhamster/visualmap/util"
	visualmapping "github.com/ilhamster/visualmap/visual_mapping"
)

// Option maps state names to channel names to visual payloads.
type Option map[string]map[string]*util.V

// ParseOption parses a JSON visual option.
func ParseOption(j []byte) (Option, error) {
	v, err := util.ValueFromJSON(j)
	if err != nil {
		return nil, err
	}
	states, err := util.ExpectMapValue(v)
	if err != nil {
		return nil, fmt.Errorf("visual option must be an object: %w", err)
	}
	ret := make(Option, len(states))
	for _, state := range states {
		channels, err := util.ExpectMapValue(state.Val)
		if err != nil {
			return nil, fmt.Errorf("visuals of state '%s' must be an object: %w", state.Key, err)
		}
		payloads := make(map[string]*util.V, len(channels))
		for _, channel := range channels {
			payloads[channel.Key] = channel.Val
		}
		ret[state.Key] = payloads
	}
	return ret, nil
}

// SupplementFunc completes the mapping option of a channel in the specified
// state, typically by setting its mapping method and the fields that method
// requires.
type SupplementFunc func(opt *visualmapping.Option, state string)

// StateMappings holds the mappings of a single state.
type StateMappings struct {
	// Base holds one Mapping per declared channel.
	Base map[visualmapping.Channel]*visualmapping.Mapping
	// AlphaForOpacity, if the state declares opacity, is a ColorAlpha
	// Mapping built from the opacity mapping's option, for renderers that
	// cannot express opacity directly.  It is never applied to datasets.
	AlphaForOpacity *visualmapping.Mapping
}

// Channels returns the receiver's channels in application order.
func (sm *StateMappings) Channels() []visualmapping.Channel {
	if sm == nil {
		return nil
	}
	channels := make([]visualmapping.Channel, 0, len(sm.Base))
	for c := range sm.Base {
		channels = append(channels, c)
	}
	return visualmapping.PrepareVisualTypes(channels)
}

// Collection maps state names to their mappings.
type Collection map[string]*StateMappings

// CreateVisualMappings builds a Collection holding, for each specified
// state, a Mapping for each recognized channel the option declares for that
// state.  Unrecognized channel names are skipped.  supplement, if non-nil, is
// invoked on each Mapping's option before the Mapping is built.
func CreateVisualMappings(opt Option, states []string, supplement SupplementFunc) (Collection, error) {
	ret := make(Collection, len(states))
	for _, state := range states {
		sm := &StateMappings{
			Base: map[visualmapping.Channel]*visualmapping.Mapping{},
		}
		ret[state] = sm
		payloads := opt[state]
		names := make([]string, 0, len(payloads))
		for name := range payloads {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			channel, ok := visualmapping.ParseChannel(name)
			if !ok {
				util.Logger().Debug("skipping unrecognized visual channel", "state", state, "channel", name)
				continue
			}
			mappingOpt := &visualmapping.Option{
				Type:   channel,
				Visual: payloads[name],
			}
			if supplement != nil {
				supplement(mappingOpt, state)
			}
			m, err := visualmapping.New(mappingOpt)
			if err != nil {
				return nil, fmt.Errorf("state '%s': %w", state, err)
			}
			sm.Base[channel] = m
			if channel == visualmapping.Opacity {
				alphaOpt := *mappingOpt
				alphaOpt.Type = visualmapping.ColorAlpha
				if sm.AlphaForOpacity, err = visualmapping.New(&alphaOpt); err != nil {
					return nil, fmt.Errorf("state '%s': %w", state, err)
				}
			}
		}
	}
	return ret, nil
}

// Dataset is a set of items to which visuals may be applied.
type Dataset interface {
	// Count returns the number of items.
	Count() int
	// Get returns the value of the item at idx along the specified
	// dimension.
	Get(dim string, idx int) *util.V
	// Exempt returns true if the item at idx is exempt from visual mapping.
	Exempt(idx int) bool
	// ItemVisual returns the visual bag of the item at idx.
	ItemVisual(idx int) visualmapping.VisualBag
}

// ClassifyFunc returns the state of an item, given either the item's value
// along the classification dimension or, if there is none, its index.
type ClassifyFunc func(valueOrIndex *util.V) (string, error)

// Executor applies a Collection to the items of a Dataset.
type Executor struct {
	coll     Collection
	classify ClassifyFunc
	dim      string
	channels map[string][]visualmapping.Channel
}

// IncrementalApplyVisual returns an Executor applying the specified states'
// mappings from the provided Collection to items classified by classify.
// If dim is non-empty, items are classified, and mapped, by their value
// along that dimension; otherwise by their index.
func IncrementalApplyVisual(states []string, coll Collection, classify ClassifyFunc, dim string) *Executor {
	e := &Executor{
		coll:     coll,
		classify: classify,
		dim:      dim,
		channels: make(map[string][]visualmapping.Channel, len(states)),
	}
	for _, state := range states {
		e.channels[state] = coll[state].Channels()
	}
	return e
}

// Progress applies visuals to each item of the provided Dataset yielded by
// the provided Cursor, until the cursor is exhausted.  Exempt items, and
// items classified into a state without mappings, are left untouched.  If
// classification fails, Progress stops and returns the classifier's error.
func (e *Executor) Progress(cursor stream.Cursor, data Dataset) error {
	for idx, ok := cursor.Next(); ok; idx, ok = cursor.Next() {
		if data.Exempt(idx) {
			continue
		}
		var value *util.V
		if e.dim != "" {
			value = data.Get(e.dim, idx)
		} else {
			value = util.IntegerValue(int64(idx))
		}
		state, err := e.classify(value)
		if err != nil {
			return err
		}
		sm, ok := e.coll[state]
		if !ok || sm == nil {
			continue
		}
		bag := data.ItemVisual(idx)
		for _, channel := range e.channels[state] {
			if m := sm.Base[channel]; m != nil {
				m.ApplyVisual(value, bag)
			}
		}
	}
	return nil
}

// ApplyVisual applies the specified states' mappings from the provided
// Collection to every item of the provided Dataset.  See
// IncrementalApplyVisual.
func ApplyVisual(states []string, coll Collection, data Dataset, classify ClassifyFunc, dim string) error {
	return IncrementalApplyVisual(states, coll, classify, dim).
		Progress(stream.NewRange(0, data.Count()), data)
}
