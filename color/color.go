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

// Package color parses, interpolates and adjusts the CSS color strings used as
// visual values.
//
// Parsed colors are RGBA arrays holding red, green and blue components in
// [0, 255] and an alpha component in [0, 1].  Parsing accepts the forms a
// chart option author may write:
//
//   - hex specifiers: '#rgb', '#rgba', '#rrggbb', '#rrggbbaa';
//   - functional specifiers: 'rgb(r,g,b)', 'rgba(r,g,b,a)', 'hsl(h,s%,l%)',
//     'hsla(h,s%,l%,a)', with percentage rgb components allowed;
//   - SVG/CSS color names, and 'transparent'.
//
// Interpolated and adjusted colors are always emitted as 'rgba(r,g,b,a)'.
//
// Recently parsed colors are kept in a small LRU cache, since the same handful
// of strings is typically parsed once per data item.
package color

import (
	imgcolor "image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/ilhamster/visualmap/util"
	"golang.org/x/image/colornames"
)

const parseCacheSize = 20

// RGBA is a parsed color: red, green and blue in [0, 255], alpha in [0, 1].
type RGBA [4]float64

// Black is the fallback for colors that cannot be parsed.
var Black = RGBA{0, 0, 0, 1}

var (
	cacheMu    sync.Mutex
	parseCache *simplelru.LRU
)

func init() {
	lru, err := simplelru.NewLRU(parseCacheSize /*no onEvict policy*/, nil)
	if err != nil {
		panic(err)
	}
	parseCache = lru
}

func clampByte(i float64) float64 {
	i = math.Round(i)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

func clampFloat(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampAngle(a float64) float64 {
	a = math.Round(a)
	if a < 0 {
		return 0
	}
	if a > 360 {
		return 360
	}
	return a
}

func parseCSSInt(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampByte(f / 100 * 255), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampByte(math.Trunc(f)), true
}

func parseCSSFloat(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampFloat(f / 100), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampFloat(f), true
}

func parseHex(s string) (RGBA, bool) {
	hex := s[1:]
	digits := make([]float64, len(hex))
	for idx := range hex {
		d, err := strconv.ParseUint(hex[idx:idx+1], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		digits[idx] = float64(d)
	}
	switch len(hex) {
	case 3, 4:
		ret := RGBA{digits[0] * 17, digits[1] * 17, digits[2] * 17, 1}
		if len(hex) == 4 {
			ret[3] = digits[3] / 0xf
		}
		return ret, true
	case 6, 8:
		ret := RGBA{
			digits[0]*16 + digits[1],
			digits[2]*16 + digits[3],
			digits[4]*16 + digits[5],
			1,
		}
		if len(hex) == 8 {
			ret[3] = (digits[6]*16 + digits[7]) / 0xff
		}
		return ret, true
	}
	return RGBA{}, false
}

func parseFunctional(s string) (RGBA, bool) {
	op := strings.IndexByte(s, '(')
	ep := strings.IndexByte(s, ')')
	if op < 0 || ep+1 != len(s) {
		return RGBA{}, false
	}
	fname := s[:op]
	params := strings.Split(s[op+1:ep], ",")
	alpha := 1.0
	switch fname {
	case "rgba", "hsla":
		if len(params) != 4 && len(params) != 3 {
			return RGBA{}, false
		}
	case "rgb", "hsl":
		if len(params) != 3 {
			return RGBA{}, false
		}
	default:
		return RGBA{}, false
	}
	if len(params) == 4 {
		a, ok := parseCSSFloat(params[3])
		if !ok {
			return RGBA{}, false
		}
		alpha = a
	}
	switch fname {
	case "rgb", "rgba":
		var ret RGBA
		for idx := 0; idx < 3; idx++ {
			c, ok := parseCSSInt(params[idx])
			if !ok {
				return RGBA{}, false
			}
			ret[idx] = c
		}
		ret[3] = alpha
		return ret, true
	default:
		h, err := strconv.ParseFloat(params[0], 64)
		if err != nil {
			return RGBA{}, false
		}
		s, ok := parseCSSFloat(params[1])
		if !ok {
			return RGBA{}, false
		}
		l, ok := parseCSSFloat(params[2])
		if !ok {
			return RGBA{}, false
		}
		return HSLAToRGBA([4]float64{h, s, l, alpha}), true
	}
}

// Parse parses the provided CSS color string.  The second return value is
// false if the string is not a recognized color.
func Parse(colorStr string) (RGBA, bool) {
	if colorStr == "" {
		return RGBA{}, false
	}
	cacheMu.Lock()
	cached, ok := parseCache.Get(colorStr)
	cacheMu.Unlock()
	if ok {
		return cached.(RGBA), true
	}
	str := strings.ToLower(strings.ReplaceAll(colorStr, " ", ""))
	var ret RGBA
	switch {
	case str == "transparent":
		ret, ok = RGBA{0, 0, 0, 0}, true
	case strings.HasPrefix(str, "#"):
		ret, ok = parseHex(str)
	case strings.ContainsRune(str, '('):
		ret, ok = parseFunctional(str)
	default:
		var named imgcolor.RGBA
		named, ok = colornames.Map[str]
		ret = RGBA{float64(named.R), float64(named.G), float64(named.B), 1}
	}
	if !ok {
		return RGBA{}, false
	}
	cacheMu.Lock()
	parseCache.Add(colorStr, ret)
	cacheMu.Unlock()
	return ret, true
}

// Stringify renders the provided color as 'rgba(r,g,b,a)'.
func Stringify(c RGBA) string {
	return "rgba(" + util.FormatNumber(c[0]) + "," + util.FormatNumber(c[1]) + "," +
		util.FormatNumber(c[2]) + "," + util.FormatNumber(c[3]) + ")"
}

// ToHex renders the provided color as '#rrggbb', or as '#rrggbbaa' if it is
// not fully opaque.
func ToHex(c RGBA) string {
	hex := func(f float64) string {
		s := strconv.FormatUint(uint64(clampByte(f)), 16)
		if len(s) == 1 {
			return "0" + s
		}
		return s
	}
	ret := "#" + hex(c[0]) + hex(c[1]) + hex(c[2])
	if c[3] < 1 {
		ret += hex(c[3] * 255)
	}
	return ret
}

// ToNRGBA converts the provided color to a non-premultiplied image/color
// value.
func ToNRGBA(c RGBA) imgcolor.NRGBA {
	return imgcolor.NRGBA{
		R: uint8(clampByte(c[0])),
		G: uint8(clampByte(c[1])),
		B: uint8(clampByte(c[2])),
		A: uint8(clampByte(clampFloat(c[3]) * 255)),
	}
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// FastLerp interpolates component-wise along the provided color sequence at
// the provided normalized position in [0, 1].  Color components are rounded
// to bytes.  If out is non-nil, the result is also written there, so that
// hot loops may reuse a buffer.  The second return value is false if
// normalized lies outside [0, 1] or colors is empty.
func FastLerp(normalized float64, colors []RGBA, out *RGBA) (RGBA, bool) {
	if len(colors) == 0 || !(normalized >= 0 && normalized <= 1) {
		return RGBA{}, false
	}
	value := normalized * float64(len(colors)-1)
	leftIdx := math.Floor(value)
	rightIdx := math.Ceil(value)
	left, right := colors[int(leftIdx)], colors[int(rightIdx)]
	dv := value - leftIdx
	ret := RGBA{
		clampByte(lerp(left[0], right[0], dv)),
		clampByte(lerp(left[1], right[1], dv)),
		clampByte(lerp(left[2], right[2], dv)),
		clampFloat(lerp(left[3], right[3], dv)),
	}
	if out != nil {
		*out = ret
	}
	return ret, true
}

// RGBAToHSLA converts the provided color to hue (in degrees), saturation,
// lightness and alpha.
func RGBAToHSLA(c RGBA) [4]float64 {
	r, g, b := c[0]/255, c[1]/255, c[2]/255
	vMin := math.Min(r, math.Min(g, b))
	vMax := math.Max(r, math.Max(g, b))
	delta := vMax - vMin
	l := (vMax + vMin) / 2
	var h, s float64
	if delta != 0 {
		if l < 0.5 {
			s = delta / (vMax + vMin)
		} else {
			s = delta / (2 - vMax - vMin)
		}
		deltaR := ((vMax-r)/6 + delta/2) / delta
		deltaG := ((vMax-g)/6 + delta/2) / delta
		deltaB := ((vMax-b)/6 + delta/2) / delta
		switch vMax {
		case r:
			h = deltaB - deltaG
		case g:
			h = 1.0/3 + deltaR - deltaB
		default:
			h = 2.0/3 + deltaG - deltaR
		}
		if h < 0 {
			h++
		}
		if h > 1 {
			h--
		}
	}
	return [4]float64{h * 360, s, l, c[3]}
}

func hueToRGB(m1, m2, h float64) float64 {
	if h < 0 {
		h++
	} else if h > 1 {
		h--
	}
	switch {
	case h*6 < 1:
		return m1 + (m2-m1)*h*6
	case h*2 < 1:
		return m2
	case h*3 < 2:
		return m1 + (m2-m1)*(2.0/3-h)*6
	}
	return m1
}

// HSLAToRGBA converts hue (in degrees), saturation, lightness and alpha to a
// color.
func HSLAToRGBA(hsla [4]float64) RGBA {
	h := math.Mod(math.Mod(hsla[0], 360)+360, 360) / 360
	s := clampFloat(hsla[1])
	l := clampFloat(hsla[2])
	var m2 float64
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	m1 := l*2 - m2
	return RGBA{
		clampByte(hueToRGB(m1, m2, h+1.0/3) * 255),
		clampByte(hueToRGB(m1, m2, h) * 255),
		clampByte(hueToRGB(m1, m2, h-1.0/3) * 255),
		hsla[3],
	}
}

// ModifyHSL replaces the hue, saturation, and/or lightness of the provided
// color with the non-nil arguments, returning the adjusted color as
// 'rgba(r,g,b,a)'.  The second return value is false if colorStr cannot be
// parsed.
func ModifyHSL(colorStr string, h, s, l *float64) (string, bool) {
	c, ok := Parse(colorStr)
	if !ok {
		return "", false
	}
	hsla := RGBAToHSLA(c)
	if h != nil {
		hsla[0] = clampAngle(*h)
	}
	if s != nil {
		hsla[1] = clampFloat(*s)
	}
	if l != nil {
		hsla[2] = clampFloat(*l)
	}
	return Stringify(HSLAToRGBA(hsla)), true
}

// ModifyAlpha replaces the alpha of the provided color, returning the
// adjusted color as 'rgba(r,g,b,a)'.  The second return value is false if
// colorStr cannot be parsed.
func ModifyAlpha(colorStr string, alpha float64) (string, bool) {
	c, ok := Parse(colorStr)
	if !ok {
		return "", false
	}
	c[3] = clampFloat(alpha)
	return Stringify(c), true
}
