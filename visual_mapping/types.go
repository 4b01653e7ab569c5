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
	"sort"
	"strconv"
	"strings"

	"github.com/ilhamster/visualmap/util"
)

// ListVisualTypes returns every supported channel, in declaration order.
func ListVisualTypes() []Channel {
	ret := make([]Channel, 0, numChannels)
	for c := Channel(0); c < numChannels; c++ {
		ret = append(ret, c)
	}
	return ret
}

// IsValidType returns true if name is the name of a supported channel.
func IsValidType(name string) bool {
	_, ok := ParseChannel(name)
	return ok
}

// DependsOn returns true if resolving channel a requires channel b to be
// resolved first.  Every color-derived channel depends on Color.
func DependsOn(a, b Channel) bool {
	if b == Color {
		return strings.HasPrefix(a.String(), Color.String())
	}
	return a == b
}

// PrepareVisualTypes returns a copy of the provided channels ordered for
// application: Color first, then the rest in declaration order.  Duplicates
// are dropped.
func PrepareVisualTypes(channels []Channel) []Channel {
	seen := map[Channel]bool{}
	ret := make([]Channel, 0, len(channels))
	for _, c := range channels {
		if !seen[c] {
			seen[c] = true
			ret = append(ret, c)
		}
	}
	sort.Slice(ret, func(a, b int) bool {
		ca, cb := ret[a], ret[b]
		if (ca == Color) != (cb == Color) {
			return ca == Color
		}
		return ca < cb
	})
	return ret
}

// RetrieveVisuals extracts the entries of a map Value keyed by channel names.
// The second return value is false if there are none.
func RetrieveVisuals(obj *util.V) (map[Channel]*util.V, bool) {
	kvs, err := util.ExpectMapValue(obj)
	if err != nil {
		return nil, false
	}
	var ret map[Channel]*util.V
	for _, kv := range kvs {
		c, ok := ParseChannel(kv.Key)
		if !ok {
			continue
		}
		if ret == nil {
			ret = map[Channel]*util.V{}
		}
		ret[c] = kv.Val
	}
	return ret, ret != nil
}

// EachVisual invokes cb on each entry of a visual payload.  Map entries are
// passed with their keys and sequence entries with their indices; any other
// Value is passed whole with an empty key.
func EachVisual(visual *util.V, cb func(v *util.V, key string)) {
	if kvs, err := util.ExpectMapValue(visual); err == nil {
		for _, kv := range kvs {
			cb(kv.Val, kv.Key)
		}
		return
	}
	if elems, ok := util.Elements(visual); ok {
		for idx, elem := range elems {
			cb(elem, strconv.Itoa(idx))
		}
		return
	}
	cb(visual, "")
}

// MapVisual returns a visual payload of the same shape as the provided one,
// with each entry replaced by the result of cb.
func MapVisual(visual *util.V, cb func(v *util.V, key string) *util.V) *util.V {
	switch {
	case util.IsMap(visual):
		var kvs []util.KV
		EachVisual(visual, func(v *util.V, key string) {
			kvs = append(kvs, util.KV{Key: key, Val: cb(v, key)})
		})
		return util.MapValue(kvs...)
	case util.IsList(visual):
		var elems []*util.V
		EachVisual(visual, func(v *util.V, key string) {
			elems = append(elems, cb(v, key))
		})
		return util.ListValue(elems...)
	default:
		return cb(visual, "")
	}
}
