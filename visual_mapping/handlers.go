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
	"math"

	"github.com/ilhamster/visualmap/color"
	"github.com/ilhamster/visualmap/util"
)

type normalizer func(m *Mapping, value *util.V) (float64, bool)

// toVisualFunc resolves a normalized value into a visual.  matched is false if
// the raw value normalized to no match.  The raw value is provided for
// piece-level visual overrides.
type toVisualFunc func(m *Mapping, normalized float64, matched bool, value *util.V) *util.V

// applyFunc resolves a raw value and writes the result into a visual bag.
type applyFunc func(m *Mapping, value *util.V, bag VisualBag)

var normalizers = [numMethods]normalizer{
	Linear:    normalizeLinear,
	Piecewise: normalizePiecewise,
	Category:  normalizeCategory,
	Fixed:     normalizeFixed,
}

var numericToVisual = [numMethods]toVisualFunc{
	Linear:    toNumeric,
	Piecewise: withSpecifiedVisual(toNumeric),
	Category:  toCategory,
	Fixed:     toFixed,
}

var toVisualTable = [numChannels][numMethods]toVisualFunc{
	Color: {
		Linear:    toColor,
		Piecewise: withSpecifiedVisual(toColor),
		Category:  toCategory,
		Fixed:     toFixed,
	},
	ColorHue:        numericToVisual,
	ColorSaturation: numericToVisual,
	ColorLightness:  numericToVisual,
	ColorAlpha:      numericToVisual,
	Decal: {
		Linear:    toArrayEntry,
		Piecewise: withSpecifiedVisual(toArrayEntry),
		Category:  toCategory,
		Fixed:     toFixed,
	},
	Opacity: numericToVisual,
	LiftZ: {
		Linear:    toFixed,
		Piecewise: toFixed,
		Category:  toFixed,
		Fixed:     toFixed,
	},
	Symbol: {
		Linear:    toArrayEntry,
		Piecewise: withSpecifiedVisual(toArrayEntry),
		Category:  toCategory,
		Fixed:     toFixed,
	},
	SymbolSize: numericToVisual,
}

var applyTable = [numChannels]applyFunc{
	Color:           setVisual("color"),
	ColorHue:        modifyColor(func(c string, v float64) (string, bool) { return color.ModifyHSL(c, &v, nil, nil) }),
	ColorSaturation: modifyColor(func(c string, v float64) (string, bool) { return color.ModifyHSL(c, nil, &v, nil) }),
	ColorLightness:  modifyColor(func(c string, v float64) (string, bool) { return color.ModifyHSL(c, nil, nil, &v) }),
	ColorAlpha:      modifyColor(color.ModifyAlpha),
	Decal:           setVisual("decal"),
	Opacity:         setVisual("opacity"),
	LiftZ:           setVisual("liftZ"),
	Symbol:          setVisual("symbol"),
	SymbolSize:      setVisual("symbolSize"),
}

func setVisual(key string) applyFunc {
	return func(m *Mapping, value *util.V, bag VisualBag) {
		if visual := m.MapValue(value); visual != nil {
			bag.SetVisual(key, visual)
		}
	}
}

// modifyColor returns an applyFunc adjusting the bag's already-resolved
// color by the mapped numeric value.
func modifyColor(modify func(c string, v float64) (string, bool)) applyFunc {
	return func(m *Mapping, value *util.V, bag VisualBag) {
		f, ok := util.Float(m.MapValue(value))
		if !ok {
			return
		}
		c, err := util.ExpectStringValue(bag.Visual("color"))
		if err != nil {
			return
		}
		if modified, ok := modify(c, f); ok {
			bag.SetVisual("color", util.StringValue(modified))
		}
	}
}

func unmatched(normalized float64, matched bool) bool {
	return !matched || math.IsNaN(normalized)
}

func toColor(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
	if unmatched(normalized, matched) {
		return nil
	}
	c, ok := color.FastLerp(normalized, m.parsedVisual, nil)
	if !ok {
		return nil
	}
	return util.StringValue(color.Stringify(c))
}

func toNumeric(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
	if unmatched(normalized, matched) || !m.hasNumericPair {
		return nil
	}
	return util.DoubleValue(util.LinearMap(normalized, [2]float64{0, 1}, m.numericPair, true))
}

// toArrayEntry picks the visual nearest the normalized position.
func toArrayEntry(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
	if unmatched(normalized, matched) || len(m.visuals) == 0 {
		return nil
	}
	idx := math.Round(util.LinearMap(normalized, [2]float64{0, 1}, [2]float64{0, float64(len(m.visuals) - 1)}, true))
	return m.visuals[int(idx)]
}

func toCategory(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
	if unmatched(normalized, matched) {
		return m.defaultVisual
	}
	count := float64(len(m.visuals))
	if m.loop && count > 0 {
		normalized = math.Mod(normalized, count)
	}
	// Bounds are checked in float64, before int conversion.
	if !(normalized >= 0 && normalized < count) {
		return m.defaultVisual
	}
	idx := int(normalized)
	if m.visuals[idx] == nil {
		return m.defaultVisual
	}
	return m.visuals[idx]
}

func toFixed(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
	if len(m.visuals) == 0 {
		return nil
	}
	return m.visuals[0]
}

// withSpecifiedVisual prefers the visual override of the piece containing
// the raw value, if there is one, over the result of fallback.
func withSpecifiedVisual(fallback toVisualFunc) toVisualFunc {
	return func(m *Mapping, normalized float64, matched bool, value *util.V) *util.V {
		if visual := m.specifiedVisual(value); visual != nil {
			return visual
		}
		return fallback(m, normalized, matched, value)
	}
}

func (m *Mapping) specifiedVisual(value *util.V) *util.V {
	if !m.hasSpecialVisual {
		return nil
	}
	idx, ok := FindPieceIndex(value, m.pieces, false)
	if !ok || m.pieces[idx].Visual == nil {
		return nil
	}
	return m.pieces[idx].Visual[m.channel]
}
