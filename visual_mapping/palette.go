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
	imgcolor "image/color"

	"github.com/aclements/go-gg/palette"
	"github.com/ilhamster/visualmap/color"
	"github.com/ilhamster/visualmap/util"
)

// ColorMapper maps values to colors for callers that map many values, such
// as image recoloring, and so need to skip per-call normalization or
// allocation.
type ColorMapper struct {
	m *Mapping
}

// ColorMapper returns a ColorMapper for the receiver.  The second return
// value is false if the receiver does not map to Color.
func (m *Mapping) ColorMapper() (ColorMapper, bool) {
	if m.channel != Color {
		return ColorMapper{}, false
	}
	return ColorMapper{m: m}, true
}

// Map returns the color the provided raw value maps to.
func (cm ColorMapper) Map(value *util.V) (string, bool) {
	normalized, ok := cm.m.normalize(cm.m, value)
	return cm.MapNormalized(normalized, ok)
}

// MapNormalized returns the color the provided normalized value maps to: a
// position in [0, 1], or, for category mappings, a category index.  matched
// should be false for normalized values signifying no match.
func (cm ColorMapper) MapNormalized(normalized float64, matched bool) (string, bool) {
	var visual *util.V
	if cm.m.method == Category {
		visual = toCategory(cm.m, normalized, matched, nil)
	} else {
		visual = toColor(cm.m, normalized, matched, nil)
	}
	str, err := util.ExpectStringValue(visual)
	return str, err == nil
}

// MapInto writes the components of the color the provided normalized value
// maps to into out, without rendering it as a string.  It returns false, and
// leaves out untouched, if there is no such color.
func (cm ColorMapper) MapInto(normalized float64, out *color.RGBA) bool {
	if cm.m.method == Category {
		str, ok := cm.MapNormalized(normalized, true)
		if !ok {
			return false
		}
		c, ok := color.Parse(str)
		if ok {
			*out = c
		}
		return ok
	}
	_, ok := color.FastLerp(normalized, cm.m.parsedVisual, out)
	return ok
}

// MapValueInto normalizes the provided raw value and writes the components
// of the color it maps to into out, as MapInto does.
func (cm ColorMapper) MapValueInto(value *util.V, out *color.RGBA) bool {
	normalized, ok := cm.m.normalize(cm.m, value)
	if !ok {
		return false
	}
	return cm.MapInto(normalized, out)
}

// Palette returns the receiver's colors as a continuous palette.  The second
// return value is false unless the receiver is a linear or piecewise Color
// mapping.
func (m *Mapping) Palette() (palette.Continuous, bool) {
	if m.channel != Color || (m.method != Linear && m.method != Piecewise) || len(m.parsedVisual) == 0 {
		return nil, false
	}
	colors := make([]imgcolor.RGBA, len(m.parsedVisual))
	for idx, c := range m.parsedVisual {
		colors[idx] = imgcolor.RGBAModel.Convert(color.ToNRGBA(c)).(imgcolor.RGBA)
	}
	return palette.RGBGradient{Colors: colors}, true
}
