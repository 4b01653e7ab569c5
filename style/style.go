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

// Package style renders resolved visuals as sanitized CSS, for legend swatches
// and similar HTML annotations.
//
// A Style instance comprises a mapping from CSS property name to value, both
// represented as strings.  Swatch builds a Style from an item's resolved
// visual attributes; Safe then yields a safehtml.Style suitable for an HTML
// style attribute.  Only properties supported by safehtml.StyleProperties
// are emitted, and values that could escape their property are replaced.
package style

import (
	"fmt"
	"math"

	"github.com/google/safehtml"
	"github.com/ilhamster/visualmap/color"
	"github.com/ilhamster/visualmap/util"
	visualmapping "github.com/ilhamster/visualmap/visual_mapping"
)

// Style defines a set of CSS properties.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

// With sets the specified property and value in the receiver.
func (s *Style) With(attrType string, attrVal string) *Style {
	s.attrs[attrType] = attrVal
	return s
}

// Get returns the value of the specified property in the receiver.
func (s *Style) Get(attrType string) (string, bool) {
	val, ok := s.attrs[attrType]
	return val, ok
}

// Safe returns the receiver as a sanitized safehtml.Style.  Properties
// safehtml does not support are dropped.
func (s *Style) Safe() safehtml.Style {
	return safehtml.StyleFromProperties(safehtml.StyleProperties{
		Display:         s.attrs["display"],
		BackgroundColor: s.attrs["background-color"],
		Color:           s.attrs["color"],
		Height:          s.attrs["height"],
		Width:           s.attrs["width"],
		Left:            s.attrs["left"],
		Right:           s.attrs["right"],
		Top:             s.attrs["top"],
		Bottom:          s.attrs["bottom"],
		FontWeight:      s.attrs["font-weight"],
		Padding:         s.attrs["padding"],
		ZIndex:          s.attrs["z-index"],
	})
}

// Swatch returns a Style depicting the provided resolved visuals:
//   - 'color', or the fallback color if it is unset or unparseable, becomes
//     the background color, with any 'opacity' folded into its alpha;
//   - 'symbolSize', a single size or a [width, height] pair, becomes the
//     swatch's width and height;
//   - a 'symbol' of 'none' hides the swatch;
//   - 'liftZ' becomes the z-index.
func Swatch(bag visualmapping.VisualBag, fallback string) *Style {
	s := New()
	c, ok := parseColor(bag.Visual("color"))
	if !ok {
		c, ok = color.Parse(fallback)
	}
	if ok {
		if opacity, hasOpacity := util.Float(bag.Visual("opacity")); hasOpacity {
			c[3] *= math.Max(0, math.Min(1, opacity))
		}
		s.With("background-color", color.ToHex(c))
	}
	if size := bag.Visual("symbolSize"); size != nil {
		if dims, ok := util.Elements(size); ok && len(dims) == 2 {
			w, wOk := util.Float(dims[0])
			h, hOk := util.Float(dims[1])
			if wOk && hOk {
				s.With("width", Px(w)).With("height", Px(h))
			}
		} else if sz, ok := util.Float(size); ok {
			s.With("width", Px(sz)).With("height", Px(sz))
		}
	}
	if symbol, err := util.ExpectStringValue(bag.Visual("symbol")); err == nil && symbol == "none" {
		s.With("display", "none")
	}
	if z, ok := util.Float(bag.Visual("liftZ")); ok {
		s.With("z-index", util.FormatNumber(math.Round(z)))
	}
	return s
}

func parseColor(v *util.V) (color.RGBA, bool) {
	str, err := util.ExpectStringValue(v)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.Parse(str)
}
