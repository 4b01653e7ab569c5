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

package util

import "github.com/aclements/go-moremath/scale"

// LinearMap maps val from the provided domain onto the provided range.  If
// the domain has zero width, the result is the middle of the range.  If clamp
// is true, values outside the domain map to the nearest range endpoint, and
// the endpoints themselves always map exactly.
func LinearMap(val float64, domain, rng [2]float64, clamp bool) float64 {
	d0, d1 := domain[0], domain[1]
	r0, r1 := rng[0], rng[1]
	if d1-d0 == 0 {
		if r1-r0 == 0 {
			return r0
		}
		return (r0 + r1) / 2
	}
	if clamp {
		if d1 > d0 {
			if val <= d0 {
				return r0
			} else if val >= d1 {
				return r1
			}
		} else {
			if val >= d0 {
				return r0
			} else if val <= d1 {
				return r1
			}
		}
	} else {
		if val == d0 {
			return r0
		}
		if val == d1 {
			return r1
		}
	}
	return scale.QQ{
		Src:  &scale.Linear{Min: d0, Max: d1},
		Dest: &scale.Linear{Min: r0, Max: r1},
	}.Map(val)
}
