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

// Package visualdefault holds the built-in visual ranges used when a visual
// map declares a channel without declaring values for it.
package visualdefault

import "github.com/ilhamster/visualmap/util"

// Key selects between the default ranges for values that qualify under the
// active selection and those that do not.
type Key int

const (
	// Active selects the range applied to qualifying values.
	Active Key = iota
	// Inactive selects the range applied to non-qualifying values.
	Inactive
)

func (k Key) String() string {
	switch k {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

type entry struct {
	active, inactive *util.V
}

var catalog = map[string]entry{
	"color": {
		active:   util.StringsValue("#006edd", "#e0ffff"),
		inactive: util.StringsValue("rgba(0,0,0,0)"),
	},
	"colorHue": {
		active:   util.DoublesValue(0, 360),
		inactive: util.DoublesValue(0, 0),
	},
	"colorSaturation": {
		active:   util.DoublesValue(0.3, 1),
		inactive: util.DoublesValue(0, 0),
	},
	"colorLightness": {
		active:   util.DoublesValue(0.9, 0.5),
		inactive: util.DoublesValue(0, 0),
	},
	"colorAlpha": {
		active:   util.DoublesValue(0.3, 1),
		inactive: util.DoublesValue(0, 0),
	},
	"opacity": {
		active:   util.DoublesValue(0.3, 1),
		inactive: util.DoublesValue(0, 0),
	},
	"symbol": {
		active:   util.StringsValue("circle", "roundRect", "diamond"),
		inactive: util.StringsValue("none"),
	},
	"symbolSize": {
		active:   util.DoublesValue(10, 50),
		inactive: util.DoublesValue(0, 0),
	},
}

// Get returns the default visual range for the specified channel, or nil if
// the channel has no default.  If isCategory is true, only the last entry of
// the range is returned.  The returned Value is always a fresh copy and may be
// modified by the caller.
func Get(channel string, key Key, isCategory bool) *util.V {
	e, ok := catalog[channel]
	if !ok {
		return nil
	}
	var v *util.V
	switch key {
	case Active:
		v = e.active
	case Inactive:
		v = e.inactive
	default:
		return nil
	}
	if isCategory {
		elems, _ := util.Elements(v)
		if len(elems) == 0 {
			return nil
		}
		return util.Clone(elems[len(elems)-1])
	}
	return util.Clone(v)
}

// Channels returns the names of all channels having defaults.
func Channels() []string {
	return []string{
		"color", "colorHue", "colorSaturation", "colorLightness", "colorAlpha",
		"opacity", "symbol", "symbolSize",
	}
}
