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

import "fmt"

// Channel is a visual property a Mapping can resolve.
type Channel int

// Supported visual channels.
const (
	Color Channel = iota
	ColorHue
	ColorSaturation
	ColorLightness
	ColorAlpha
	Decal
	Opacity
	LiftZ
	Symbol
	SymbolSize
	numChannels
)

var channelNames = [numChannels]string{
	Color:           "color",
	ColorHue:        "colorHue",
	ColorSaturation: "colorSaturation",
	ColorLightness:  "colorLightness",
	ColorAlpha:      "colorAlpha",
	Decal:           "decal",
	Opacity:         "opacity",
	LiftZ:           "liftZ",
	Symbol:          "symbol",
	SymbolSize:      "symbolSize",
}

var channelsByName = func() map[string]Channel {
	ret := make(map[string]Channel, numChannels)
	for c := Channel(0); c < numChannels; c++ {
		ret[channelNames[c]] = c
	}
	return ret
}()

func (c Channel) valid() bool {
	return c >= 0 && c < numChannels
}

func (c Channel) String() string {
	if !c.valid() {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel returns the Channel with the specified name.
func ParseChannel(name string) (Channel, bool) {
	c, ok := channelsByName[name]
	return c, ok
}

// Method is a strategy for normalizing raw values.
type Method int

// Supported mapping methods.
const (
	// Linear maps values within a data extent onto a continuous visual
	// range.
	Linear Method = iota
	// Piecewise maps values to the interval or discrete piece containing
	// them.
	Piecewise
	// Category maps category names, or ordinal indices, to visuals.
	Category
	// Fixed maps every value to the same visual.
	Fixed
	numMethods
)

var methodNames = [numMethods]string{
	Linear:    "linear",
	Piecewise: "piecewise",
	Category:  "category",
	Fixed:     "fixed",
}

func (m Method) valid() bool {
	return m >= 0 && m < numMethods
}

func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the Method with the specified name.
func ParseMethod(name string) (Method, bool) {
	for m := Method(0); m < numMethods; m++ {
		if methodNames[m] == name {
			return m, true
		}
	}
	return 0, false
}
