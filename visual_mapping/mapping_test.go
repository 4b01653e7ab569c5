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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/visualmap/util"
)

var (
	blackToWhite = util.StringsValue("#000000", "#ffffff")
	inf          = math.Inf(1)
)

func extent(lo, hi float64) *[2]float64 {
	return &[2]float64{lo, hi}
}

// threePieces are (-Inf, 0), [0, 10], (10, +Inf).
func threePieces(middle map[Channel]*util.V) []*Piece {
	return []*Piece{
		{Interval: &[2]float64{-inf, 0}},
		{Interval: &[2]float64{0, 10}, Close: [2]bool{true, true}, Visual: middle},
		{Interval: &[2]float64{10, inf}},
	}
}

func TestMapValue(t *testing.T) {
	for _, test := range []struct {
		description string
		opt         *Option
		value       *util.V
		want        *util.V
	}{{
		description: "linear color low endpoint",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.IntegerValue(0),
		want:        util.StringValue("rgba(0,0,0,1)"),
	}, {
		description: "linear color high endpoint",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.IntegerValue(100),
		want:        util.StringValue("rgba(255,255,255,1)"),
	}, {
		description: "linear color midpoint",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.DoubleValue(50),
		want:        util.StringValue("rgba(128,128,128,1)"),
	}, {
		description: "linear color clamped",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.DoubleValue(200),
		want:        util.StringValue("rgba(255,255,255,1)"),
	}, {
		description: "linear color numeric string",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.StringValue("100"),
		want:        util.StringValue("rgba(255,255,255,1)"),
	}, {
		description: "linear color non-numeric value",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: blackToWhite},
		value:       util.StringValue("abc"),
	}, {
		description: "linear color without visuals",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 100)},
		value:       util.DoubleValue(50),
	}, {
		description: "illegal color falls back to black",
		opt:         &Option{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 1), Visual: util.StringsValue("nope", "#ffffff")},
		value:       util.DoubleValue(0),
		want:        util.StringValue("rgba(0,0,0,1)"),
	}, {
		description: "linear opacity",
		opt:         &Option{Type: Opacity, MappingMethod: Linear, DataExtent: extent(0, 10), Visual: util.DoublesValue(0.2, 1)},
		value:       util.DoubleValue(5),
		want:        util.DoubleValue(0.6),
	}, {
		description: "single opacity is paired",
		opt:         &Option{Type: Opacity, MappingMethod: Linear, DataExtent: extent(0, 10), Visual: util.DoubleValue(0.5)},
		value:       util.DoubleValue(7),
		want:        util.DoubleValue(0.5),
	}, {
		description: "linear symbol size",
		opt:         &Option{Type: SymbolSize, MappingMethod: Linear, DataExtent: extent(0, 100), Visual: util.DoublesValue(10, 50)},
		value:       util.IntegerValue(25),
		want:        util.DoubleValue(20),
	}, {
		description: "linear symbol picks nearest",
		opt:         &Option{Type: Symbol, MappingMethod: Linear, DataExtent: extent(0, 10), Visual: util.StringsValue("circle", "rect", "triangle")},
		value:       util.IntegerValue(4),
		want:        util.StringValue("rect"),
	}, {
		description: "linear symbol picks nearest at top",
		opt:         &Option{Type: Symbol, MappingMethod: Linear, DataExtent: extent(0, 10), Visual: util.StringsValue("circle", "rect", "triangle")},
		value:       util.IntegerValue(9),
		want:        util.StringValue("triangle"),
	}, {
		description: "piecewise color piece override",
		opt: &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite,
			Pieces: threePieces(map[Channel]*util.V{Color: util.StringValue("red")})},
		value: util.IntegerValue(5),
		want:  util.StringValue("red"),
	}, {
		description: "piecewise color override on closed bound",
		opt: &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite,
			Pieces: threePieces(map[Channel]*util.V{Color: util.StringValue("red")})},
		value: util.IntegerValue(0),
		want:  util.StringValue("red"),
	}, {
		description: "piecewise color interpolated by piece position",
		opt: &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite,
			Pieces: threePieces(map[Channel]*util.V{Color: util.StringValue("red")})},
		value: util.IntegerValue(20),
		want:  util.StringValue("rgba(255,255,255,1)"),
	}, {
		description: "piecewise color first piece",
		opt: &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite,
			Pieces: threePieces(nil)},
		value: util.IntegerValue(-5),
		want:  util.StringValue("rgba(0,0,0,1)"),
	}, {
		description: "piecewise override for another channel is ignored",
		opt: &Option{Type: SymbolSize, MappingMethod: Piecewise, Visual: util.DoublesValue(10, 30),
			Pieces: threePieces(map[Channel]*util.V{Color: util.StringValue("red")})},
		value: util.IntegerValue(5),
		want:  util.DoubleValue(20),
	}, {
		description: "piecewise discrete pieces",
		opt: &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite,
			Pieces: []*Piece{{Value: util.StringValue("a")}, {Value: util.StringValue("b")}}},
		value: util.StringValue("b"),
		want:  util.StringValue("rgba(255,255,255,1)"),
	}, {
		description: "piecewise symbol override",
		opt: &Option{Type: Symbol, MappingMethod: Piecewise, Visual: util.StringsValue("circle", "rect"),
			Pieces: threePieces(map[Channel]*util.V{Symbol: util.StringValue("pin")})},
		value: util.IntegerValue(3),
		want:  util.StringValue("pin"),
	}, {
		description: "named category",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a", "b", "c"},
			Visual: util.StringsValue("#ff0000", "#00ff00", "#0000ff")},
		value: util.StringValue("b"),
		want:  util.StringValue("#00ff00"),
	}, {
		description: "unknown named category without default",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a", "b", "c"},
			Visual: util.StringsValue("#ff0000", "#00ff00", "#0000ff")},
		value: util.StringValue("z"),
	}, {
		description: "named category from map payload",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a", "b"},
			Visual: util.MapValue(util.KV{Key: "a", Val: util.StringValue("red")}, util.KV{Key: "other", Val: util.StringValue("gray")})},
		value: util.StringValue("a"),
		want:  util.StringValue("red"),
	}, {
		description: "named category without visual uses default",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a", "b"},
			Visual: util.MapValue(util.KV{Key: "a", Val: util.StringValue("red")}, util.KV{Key: "other", Val: util.StringValue("gray")})},
		value: util.StringValue("b"),
		want:  util.StringValue("gray"),
	}, {
		description: "unknown named category uses default",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a", "b"},
			Visual: util.MapValue(util.KV{Key: "a", Val: util.StringValue("red")}, util.KV{Key: "other", Val: util.StringValue("gray")})},
		value: util.StringValue("z"),
		want:  util.StringValue("gray"),
	}, {
		description: "scalar payload is the default",
		opt: &Option{Type: Color, MappingMethod: Category, Categories: []string{"a"},
			Visual: util.StringValue("gray")},
		value: util.StringValue("a"),
		want:  util.StringValue("gray"),
	}, {
		description: "numeric category name",
		opt: &Option{Type: Symbol, MappingMethod: Category, Categories: []string{"1", "2"},
			Visual: util.StringsValue("circle", "rect")},
		value: util.IntegerValue(2),
		want:  util.StringValue("rect"),
	}, {
		description: "ordinal category",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Visual: util.StringsValue("x", "y")},
		value:       util.IntegerValue(1),
		want:        util.StringValue("y"),
	}, {
		description: "ordinal category out of range",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Visual: util.StringsValue("x", "y")},
		value:       util.IntegerValue(5),
	}, {
		description: "ordinal category loops",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Loop: true, Visual: util.StringsValue("x", "y")},
		value:       util.IntegerValue(5),
		want:        util.StringValue("y"),
	}, {
		description: "huge ordinal category",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Visual: util.StringsValue("x", "y")},
		value:       util.DoubleValue(1e20),
	}, {
		description: "huge ordinal color category",
		opt:         &Option{Type: Color, MappingMethod: Category, Visual: util.StringsValue("red", "blue")},
		value:       util.DoubleValue(9.3e18),
	}, {
		description: "enormous ordinal color category",
		opt:         &Option{Type: Color, MappingMethod: Category, Visual: util.StringsValue("red", "blue")},
		value:       util.DoubleValue(1e300),
	}, {
		description: "huge ordinal category loops",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Loop: true, Visual: util.StringsValue("x", "y", "z")},
		value:       util.DoubleValue(1e20),
		want:        util.StringValue("y"),
	}, {
		description: "fractional ordinal category",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Loop: true, Visual: util.StringsValue("x", "y")},
		value:       util.DoubleValue(1.5),
	}, {
		description: "category opacity is not paired",
		opt:         &Option{Type: Opacity, MappingMethod: Category, Visual: util.DoubleValue(0.4)},
		value:       util.IntegerValue(1),
	}, {
		description: "decal category",
		opt:         &Option{Type: Decal, MappingMethod: Category, Visual: util.StringsValue("dots", "stripes")},
		value:       util.IntegerValue(0),
		want:        util.StringValue("dots"),
	}, {
		description: "fixed",
		opt:         &Option{Type: LiftZ, MappingMethod: Fixed, Visual: util.IntegerValue(10)},
		value:       util.StringValue("anything"),
		want:        util.IntegerValue(10),
	}, {
		description: "liftZ is always fixed",
		opt:         &Option{Type: LiftZ, MappingMethod: Linear, DataExtent: extent(0, 1), Visual: util.IntegerValue(10)},
		value:       util.DoubleValue(0.3),
		want:        util.IntegerValue(10),
	}} {
		t.Run(test.description, func(t *testing.T) {
			m, err := New(test.opt)
			if err != nil {
				t.Fatalf("New() yielded unexpected error %s", err)
			}
			got := m.MapValue(test.value)
			if diff := cmp.Diff(test.want.PrettyPrint(), got.PrettyPrint()); diff != "" {
				t.Errorf("MapValue(%s) = %s, diff (-want +got) %s", test.value.PrettyPrint(), got.PrettyPrint(), diff)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	for _, test := range []struct {
		description string
		opt         *Option
	}{{
		description: "nil option",
	}, {
		description: "linear without data extent",
		opt:         &Option{Type: Color, MappingMethod: Linear, Visual: blackToWhite},
	}, {
		description: "piecewise without pieces",
		opt:         &Option{Type: Color, MappingMethod: Piecewise, Visual: blackToWhite},
	}, {
		description: "nil piece",
		opt:         &Option{Type: Color, MappingMethod: Piecewise, Pieces: []*Piece{nil}},
	}, {
		description: "unknown channel",
		opt:         &Option{Type: Channel(99), MappingMethod: Fixed},
	}, {
		description: "unknown method",
		opt:         &Option{Type: Color, MappingMethod: Method(7)},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if _, err := New(test.opt); err == nil {
				t.Errorf("New() yielded no error, but expected one")
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustNew() did not panic")
		}
	}()
	MustNew(&Option{Type: Color, MappingMethod: Linear})
}

func TestNewCopiesPieces(t *testing.T) {
	pieces := threePieces(nil)
	m := MustNew(&Option{Type: Color, MappingMethod: Piecewise, Pieces: pieces, Visual: blackToWhite})
	for idx, piece := range m.Pieces() {
		if piece.OriginIndex != idx {
			t.Errorf("piece %d has OriginIndex %d", idx, piece.OriginIndex)
		}
		if piece == pieces[idx] {
			t.Errorf("piece %d is shared with the option", idx)
		}
	}
}

func TestNormalize(t *testing.T) {
	for _, test := range []struct {
		description string
		opt         *Option
		value       *util.V
		want        float64
		wantOk      bool
	}{{
		description: "linear",
		opt:         &Option{Type: Opacity, MappingMethod: Linear, DataExtent: extent(0, 100)},
		value:       util.IntegerValue(25),
		want:        0.25,
		wantOk:      true,
	}, {
		description: "linear descending extent",
		opt:         &Option{Type: Opacity, MappingMethod: Linear, DataExtent: extent(100, 0)},
		value:       util.IntegerValue(75),
		want:        0.25,
		wantOk:      true,
	}, {
		description: "linear zero-width extent",
		opt:         &Option{Type: Opacity, MappingMethod: Linear, DataExtent: extent(5, 5)},
		value:       util.IntegerValue(5),
		want:        0.5,
		wantOk:      true,
	}, {
		description: "piecewise",
		opt:         &Option{Type: Opacity, MappingMethod: Piecewise, Pieces: threePieces(nil)},
		value:       util.IntegerValue(0),
		want:        0.5,
		wantOk:      true,
	}, {
		description: "piecewise non-numeric",
		opt:         &Option{Type: Opacity, MappingMethod: Piecewise, Pieces: threePieces(nil)},
		value:       util.StringValue("x"),
	}, {
		description: "named category",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Categories: []string{"a", "b"}, Visual: util.StringsValue("x", "y")},
		value:       util.StringValue("b"),
		want:        1,
		wantOk:      true,
	}, {
		description: "named category no match",
		opt:         &Option{Type: Symbol, MappingMethod: Category, Categories: []string{"a", "b"}, Visual: util.StringsValue("x", "y")},
		value:       util.StringValue("c"),
	}, {
		description: "fixed",
		opt:         &Option{Type: LiftZ, MappingMethod: Fixed},
		value:       util.IntegerValue(1),
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, ok := MustNew(test.opt).Normalize(test.value)
			if ok != test.wantOk {
				t.Fatalf("Normalize() ok = %t, wanted %t", ok, test.wantOk)
			}
			if ok && got != test.want {
				t.Errorf("Normalize() = %v, wanted %v", got, test.want)
			}
		})
	}
}

type testBag map[string]*util.V

func (tb testBag) Visual(key string) *util.V {
	return tb[key]
}

func (tb testBag) SetVisual(key string, val *util.V) {
	tb[key] = val
}

func TestApplyVisual(t *testing.T) {
	for _, test := range []struct {
		description string
		opts        []*Option
		value       *util.V
		initial     testBag
		want        testBag
	}{{
		description: "color then alpha",
		opts: []*Option{
			{Type: Color, MappingMethod: Linear, DataExtent: extent(0, 1), Visual: blackToWhite},
			{Type: ColorAlpha, MappingMethod: Linear, DataExtent: extent(0, 1), Visual: util.DoublesValue(0.3, 1)},
		},
		value: util.IntegerValue(0),
		want:  testBag{"color": util.StringValue("rgba(0,0,0,0.3)")},
	}, {
		description: "lightness adjusts existing color",
		opts: []*Option{
			{Type: ColorLightness, MappingMethod: Fixed, Visual: util.DoubleValue(0.25)},
		},
		value:   util.IntegerValue(0),
		initial: testBag{"color": util.StringValue("#ff0000")},
		want:    testBag{"color": util.StringValue("rgba(128,0,0,1)")},
	}, {
		description: "hue without color does nothing",
		opts: []*Option{
			{Type: ColorHue, MappingMethod: Fixed, Visual: util.DoubleValue(120)},
		},
		value: util.IntegerValue(0),
		want:  testBag{},
	}, {
		description: "symbol and size",
		opts: []*Option{
			{Type: Symbol, MappingMethod: Category, Categories: []string{"a"}, Visual: util.StringsValue("pin")},
			{Type: SymbolSize, MappingMethod: Fixed, Visual: util.IntegerValue(12)},
		},
		value: util.StringValue("a"),
		want:  testBag{"symbol": util.StringValue("pin"), "symbolSize": util.IntegerValue(12)},
	}, {
		description: "no match writes nothing",
		opts: []*Option{
			{Type: Symbol, MappingMethod: Category, Categories: []string{"a"}, Visual: util.StringsValue("pin")},
		},
		value:   util.StringValue("b"),
		initial: testBag{"symbol": util.StringValue("circle")},
		want:    testBag{"symbol": util.StringValue("circle")},
	}, {
		description: "opacity and liftZ",
		opts: []*Option{
			{Type: Opacity, MappingMethod: Linear, DataExtent: extent(0, 10), Visual: util.DoublesValue(0, 1)},
			{Type: LiftZ, MappingMethod: Fixed, Visual: util.IntegerValue(3)},
		},
		value: util.IntegerValue(10),
		want:  testBag{"opacity": util.DoubleValue(1), "liftZ": util.IntegerValue(3)},
	}} {
		t.Run(test.description, func(t *testing.T) {
			bag := testBag{}
			for k, v := range test.initial {
				bag[k] = v
			}
			for _, opt := range test.opts {
				MustNew(opt).ApplyVisual(test.value, bag)
			}
			pp := func(tb testBag) map[string]string {
				ret := map[string]string{}
				for k, v := range tb {
					ret[k] = v.PrettyPrint()
				}
				return ret
			}
			if diff := cmp.Diff(pp(test.want), pp(bag)); diff != "" {
				t.Errorf("ApplyVisual() diff (-want +got) %s", diff)
			}
		})
	}
}
