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

// Package visualmapping converts raw data values into visual property values
// (colors, opacities, symbol sizes, symbols, and so forth) according to a
// declared mapping.
//
// A Mapping resolves a single visual channel.  It is built from an Option
// naming the channel, the mapping Method, and the visual values to map onto:
//
//	m, err := visualmapping.New(&visualmapping.Option{
//	  Type:          visualmapping.Color,
//	  MappingMethod: visualmapping.Linear,
//	  DataExtent:    &[2]float64{0, 100},
//	  Visual:        util.StringsValue("#000000", "#ffffff"),
//	})
//	gray := m.MapValue(util.DoubleValue(50)) // 'rgba(128,128,128,1)'
//
// Mapping a value happens in two steps.  The value is first normalized
// according to the mapping method: into [0, 1] for linear and piecewise
// mappings, or into a category index for category mappings.  The normalized
// value is then resolved into a visual according to the channel.  Resolution
// functions are held in a channel-by-method dispatch table.
//
// Mappings are immutable once built, and may be shared across goroutines.
package visualmapping

import (
	"fmt"
	"math"

	"github.com/ilhamster/visualmap/color"
	"github.com/ilhamster/visualmap/util"
)

// Option specifies a single Mapping.
type Option struct {
	// Type is the channel the Mapping resolves.
	Type Channel
	// MappingMethod is the normalization strategy.
	MappingMethod Method
	// DataExtent is the [min, max] data range.  Required for Linear.
	DataExtent *[2]float64
	// Pieces is the ordered piece list.  Required for Piecewise.
	Pieces []*Piece
	// Categories optionally names the categories of a Category mapping.  If
	// empty, values are treated as ordinal category indices.
	Categories []string
	// Loop specifies whether category indices wrap around the visual list.
	Loop bool
	// Visual is the visual payload: a single value, a sequence (low and high
	// for continuous channels), or, for named categories, a map from
	// category name to visual.  Map entries whose keys are not categories
	// supply the default visual.
	Visual *util.V
}

// VisualBag holds the resolved visual attributes of a single data item.
type VisualBag interface {
	// Visual returns the visual attribute with the specified key, or nil if
	// it is unset.
	Visual(key string) *util.V
	// SetVisual sets the visual attribute with the specified key.
	SetVisual(key string, val *util.V)
}

// Mapping resolves raw values into visual values for a single channel.
type Mapping struct {
	channel    Channel
	method     Method
	dataExtent [2]float64
	pieces     []*Piece
	// True if any piece carries visual overrides.
	hasSpecialVisual bool
	categoryMap      map[string]int
	loop             bool
	visuals          []*util.V
	defaultVisual    *util.V
	// Parsed visuals of Color mappings.
	parsedVisual []color.RGBA
	// The low and high visuals of numeric channels; valid if hasNumericPair.
	numericPair    [2]float64
	hasNumericPair bool

	normalize normalizer
	toVisual  toVisualFunc
	apply     applyFunc
}

// New returns a new Mapping built from the provided Option.  It returns an
// error if the Option names an unknown channel or method, or omits a field
// its method requires.
func New(opt *Option) (*Mapping, error) {
	if opt == nil {
		return nil, fmt.Errorf("a mapping option is required")
	}
	if !opt.Type.valid() {
		return nil, fmt.Errorf("unsupported visual channel %s", opt.Type)
	}
	if !opt.MappingMethod.valid() {
		return nil, fmt.Errorf("unsupported mapping method %s", opt.MappingMethod)
	}
	m := &Mapping{
		channel:   opt.Type,
		method:    opt.MappingMethod,
		loop:      opt.Loop,
		normalize: normalizers[opt.MappingMethod],
		toVisual:  toVisualTable[opt.Type][opt.MappingMethod],
		apply:     applyTable[opt.Type],
	}
	switch opt.MappingMethod {
	case Linear:
		if opt.DataExtent == nil {
			return nil, fmt.Errorf("%s mapping of %s requires a data extent", Linear, opt.Type)
		}
		m.dataExtent = *opt.DataExtent
		m.setVisuals(visualRange(opt.Type, opt.Visual, false))
	case Piecewise:
		if len(opt.Pieces) == 0 {
			return nil, fmt.Errorf("%s mapping of %s requires at least one piece", Piecewise, opt.Type)
		}
		m.pieces = make([]*Piece, len(opt.Pieces))
		for idx, piece := range opt.Pieces {
			if piece == nil {
				return nil, fmt.Errorf("piece %d of %s mapping is nil", idx, opt.Type)
			}
			p := *piece
			p.OriginIndex = idx
			if p.Visual != nil {
				m.hasSpecialVisual = true
			}
			m.pieces[idx] = &p
		}
		m.setVisuals(visualRange(opt.Type, opt.Visual, false))
	case Category:
		if len(opt.Categories) > 0 {
			m.prepareNamedCategories(opt.Categories, opt.Visual)
		} else {
			m.setVisuals(visualRange(opt.Type, opt.Visual, true))
		}
	case Fixed:
		m.setVisuals(visualRange(opt.Type, opt.Visual, false))
	}
	return m, nil
}

// MustNew is like New, but panics on error.
func MustNew(opt *Option) *Mapping {
	m, err := New(opt)
	if err != nil {
		panic(err)
	}
	return m
}

// visualRange flattens a visual payload into a list.  Outside of category
// mappings, channels other than Color and Symbol need a low and high visual,
// so a single visual is paired with itself.
func visualRange(channel Channel, visual *util.V, isCategory bool) []*util.V {
	var ret []*util.V
	EachVisual(visual, func(v *util.V, key string) {
		if v != nil {
			ret = append(ret, v)
		}
	})
	if !isCategory && len(ret) == 1 && channel != Color && channel != Symbol {
		ret = append(ret, ret[0])
	}
	return ret
}

// prepareNamedCategories indexes the provided categories, and arranges the
// visual payload by category index.  Categories left without a visual are
// dropped from the index, so that they resolve to the default visual.
func (m *Mapping) prepareNamedCategories(categories []string, visual *util.V) {
	m.categoryMap = make(map[string]int, len(categories))
	for idx, category := range categories {
		m.categoryMap[category] = idx
	}
	var visuals []*util.V
	switch {
	case util.IsList(visual):
		visuals, _ = util.Elements(visual)
	case util.IsMap(visual):
		visuals = make([]*util.V, len(categories))
		EachVisual(visual, func(v *util.V, key string) {
			if idx, ok := m.categoryMap[key]; ok {
				visuals[idx] = v
			} else {
				m.defaultVisual = v
			}
		})
	default:
		m.defaultVisual = visual
	}
	for category, idx := range m.categoryMap {
		if idx >= len(visuals) || visuals[idx] == nil {
			delete(m.categoryMap, category)
		}
	}
	m.setVisuals(visuals)
}

func (m *Mapping) setVisuals(visuals []*util.V) {
	m.visuals = visuals
	switch m.channel {
	case Color:
		m.parsedVisual = make([]color.RGBA, len(visuals))
		for idx, v := range visuals {
			m.parsedVisual[idx] = parseColorVisual(v)
		}
	case ColorHue, ColorSaturation, ColorLightness, ColorAlpha, Opacity, SymbolSize:
		if len(visuals) < 2 {
			return
		}
		lo, loOk := util.Float(visuals[0])
		hi, hiOk := util.Float(visuals[1])
		if loOk && hiOk {
			m.numericPair = [2]float64{lo, hi}
			m.hasNumericPair = true
		}
	}
}

func parseColorVisual(v *util.V) color.RGBA {
	if str, err := util.ExpectStringValue(v); err == nil {
		if c, ok := color.Parse(str); ok {
			return c
		}
	}
	util.Logger().Warn("illegal color, falling back to '#000000'", "color", v.PrettyPrint())
	return color.Black
}

// Channel returns the channel the receiver resolves.
func (m *Mapping) Channel() Channel {
	return m.channel
}

// Method returns the receiver's mapping method.
func (m *Mapping) Method() Method {
	return m.method
}

// Pieces returns the receiver's pieces, for piecewise mappings.
func (m *Mapping) Pieces() []*Piece {
	return m.pieces
}

// Normalize returns the normalized form of the provided value: its position
// in [0, 1] for linear and piecewise mappings, or its category index for
// category mappings.  The second return value is false if the value matches
// nothing.  Fixed mappings never match.
func (m *Mapping) Normalize(value *util.V) (float64, bool) {
	return m.normalize(m, value)
}

// MapValue returns the visual the provided value maps to, or nil if there is
// none.  The returned Value is shared with the receiver and must not be
// modified.
func (m *Mapping) MapValue(value *util.V) *util.V {
	normalized, ok := m.normalize(m, value)
	return m.toVisual(m, normalized, ok, value)
}

// ApplyVisual resolves the provided value and writes the result into the
// provided visual bag.  Color-derived channels read and adjust the bag's
// existing color, so Color must be applied first.  Nothing is written if the
// value maps to no visual.
func (m *Mapping) ApplyVisual(value *util.V, bag VisualBag) {
	m.apply(m, value, bag)
}

// normalizer implementations.

func normalizeLinear(m *Mapping, value *util.V) (float64, bool) {
	f, ok := util.Float(value)
	if !ok {
		return math.NaN(), false
	}
	return util.LinearMap(f, m.dataExtent, [2]float64{0, 1}, true), true
}

func normalizePiecewise(m *Mapping, value *util.V) (float64, bool) {
	idx, ok := FindPieceIndex(value, m.pieces, true)
	if !ok {
		return math.NaN(), false
	}
	return util.LinearMap(float64(idx), [2]float64{0, float64(len(m.pieces) - 1)}, [2]float64{0, 1}, true), true
}

func normalizeCategory(m *Mapping, value *util.V) (float64, bool) {
	if m.categoryMap != nil {
		key, ok := util.Key(value)
		if !ok {
			return math.NaN(), false
		}
		idx, ok := m.categoryMap[key]
		return float64(idx), ok
	}
	f, ok := util.Float(value)
	if !ok || f < 0 || math.IsInf(f, 1) || f != math.Trunc(f) {
		return math.NaN(), false
	}
	return f, true
}

func normalizeFixed(m *Mapping, value *util.V) (float64, bool) {
	return math.NaN(), false
}
