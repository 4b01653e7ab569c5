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

// Package util defines the value representation shared by the visual mapping
// engine:
//
// V, a tagged value carrying either a raw data value (a number or a category
// name) or a visual value (a color string, a size, a symbol name, a list of
// these, or a keyed map of these);
//
// {type}Value functions (type={String, Strings, Bool, Integer, Double,
// Doubles, List, Map}) for safely constructing Values of the specified type;
//
// Expect{type}Value functions, over the same types, for safely retrieving
// values of the specified types from Values, returning an error if there's a
// type mismatch;
//
// Float, Key and Elements, which coerce Values the way loosely-typed chart
// options expect;
//
// LinearMap, the linear interpolation primitive all mappings are built on;
//
// SetLogger and Logger, which configure diagnostics for all packages.
package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueType int

// Enumerated value types.
const (
	unsetValue valueType = iota
	StringValueType
	StringsValueType
	BoolValueType
	IntegerValueType
	DoubleValueType
	DoublesValueType
	ListValueType
	MapValueType
)

func (vt valueType) String() string {
	switch vt {
	case StringValueType:
		return "str"
	case StringsValueType:
		return "strs"
	case BoolValueType:
		return "bool"
	case IntegerValueType:
		return "int"
	case DoubleValueType:
		return "dbl"
	case DoublesValueType:
		return "dbls"
	case ListValueType:
		return "list"
	case MapValueType:
		return "map"
	default:
		return "unset"
	}
}

// V represents a single raw or visual value.
type V struct {
	V any
	T valueType
}

// KV is a single keyed entry of a map-type V.  Map-type Vs preserve the order
// in which their entries were declared.
type KV struct {
	Key string
	Val *V
}

// PrettyPrint returns the receiver, deterministically prettyprinted.  Only for
// use in tests.
func (v *V) PrettyPrint() string {
	if v == nil {
		return "nil"
	}
	switch v.T {
	case StringValueType:
		return "'" + v.V.(string) + "'"
	case StringsValueType:
		return "[ '" + strings.Join(v.V.([]string), "', '") + "' ]"
	case BoolValueType:
		return strconv.FormatBool(v.V.(bool))
	case IntegerValueType:
		return strconv.FormatInt(v.V.(int64), 10)
	case DoubleValueType:
		return fmt.Sprintf("%.6f", v.V.(float64))
	case DoublesValueType:
		dbls := v.V.([]float64)
		strs := make([]string, len(dbls))
		for idx, d := range dbls {
			strs[idx] = fmt.Sprintf("%.6f", d)
		}
		return "[ " + strings.Join(strs, ", ") + " ]"
	case ListValueType:
		elems := v.V.([]*V)
		strs := make([]string, len(elems))
		for idx, elem := range elems {
			strs[idx] = elem.PrettyPrint()
		}
		return "[ " + strings.Join(strs, ", ") + " ]"
	case MapValueType:
		kvs := v.V.([]KV)
		strs := make([]string, len(kvs))
		for idx, kv := range kvs {
			strs[idx] = kv.Key + ": " + kv.Val.PrettyPrint()
		}
		return "{ " + strings.Join(strs, ", ") + " }"
	default:
		return "unset"
	}
}

// Quick builders for Value types.

// StringValue returns a new Value wrapping the provided string.
func StringValue(str string) *V {
	return &V{
		V: str,
		T: StringValueType,
	}
}

// StringsValue returns a new Value wrapping the provided strings.
func StringsValue(strs ...string) *V {
	return &V{
		V: strs,
		T: StringsValueType,
	}
}

// BoolValue returns a new Value wrapping the provided bool.
func BoolValue(b bool) *V {
	return &V{
		V: b,
		T: BoolValueType,
	}
}

// IntegerValue returns a new Value wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{
		V: i,
		T: IntegerValueType,
	}
}

// DoubleValue returns a new Value wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{
		V: f,
		T: DoubleValueType,
	}
}

// DoublesValue returns a new Value wrapping the provided float64s.
func DoublesValue(dbls ...float64) *V {
	return &V{
		V: dbls,
		T: DoublesValueType,
	}
}

// ListValue returns a new Value wrapping the provided Values, which need not
// share a type.
func ListValue(elems ...*V) *V {
	return &V{
		V: elems,
		T: ListValueType,
	}
}

// MapValue returns a new Value wrapping the provided keyed entries, in order.
func MapValue(kvs ...KV) *V {
	return &V{
		V: kvs,
		T: MapValueType,
	}
}

// ExpectStringValue expects the provided Value to be a string, returning
// that string or an error if it isn't.
func ExpectStringValue(val *V) (string, error) {
	if val == nil || val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str'")
	}
	return val.V.(string), nil
}

// ExpectStringsValue expects the provided Value to be a Strings, returning
// that Strings' contained string slice, or an error if it isn't.
func ExpectStringsValue(val *V) ([]string, error) {
	if val == nil || val.T != StringsValueType {
		return nil, fmt.Errorf("expected value type 'strs'")
	}
	return val.V.([]string), nil
}

// ExpectBoolValue expects the provided Value to be a bool, returning that
// bool or an error if it isn't.
func ExpectBoolValue(val *V) (bool, error) {
	if val == nil || val.T != BoolValueType {
		return false, fmt.Errorf("expected value type 'bool'")
	}
	return val.V.(bool), nil
}

// ExpectIntegerValue expects the provided Value to be an integer, returning
// that integer or an error if it isn't.
func ExpectIntegerValue(val *V) (int64, error) {
	if val == nil || val.T != IntegerValueType {
		return 0, fmt.Errorf("expected value type 'int'")
	}
	return val.V.(int64), nil
}

// ExpectDoubleValue expects the provided Value to be a float64, returning
// that float or an error if it isn't.
func ExpectDoubleValue(val *V) (float64, error) {
	if val == nil || val.T != DoubleValueType {
		return 0, fmt.Errorf("expected value type 'dbl'")
	}
	return val.V.(float64), nil
}

// ExpectDoublesValue expects the provided Value to be a Doubles, returning
// that Doubles' contained float64 slice or an error if it isn't.
func ExpectDoublesValue(val *V) ([]float64, error) {
	if val == nil || val.T != DoublesValueType {
		return nil, fmt.Errorf("expected value type 'dbls'")
	}
	return val.V.([]float64), nil
}

// ExpectListValue expects the provided Value to be a List, returning its
// elements or an error if it isn't.
func ExpectListValue(val *V) ([]*V, error) {
	if val == nil || val.T != ListValueType {
		return nil, fmt.Errorf("expected value type 'list'")
	}
	return val.V.([]*V), nil
}

// ExpectMapValue expects the provided Value to be a Map, returning its
// entries in declaration order or an error if it isn't.
func ExpectMapValue(val *V) ([]KV, error) {
	if val == nil || val.T != MapValueType {
		return nil, fmt.Errorf("expected value type 'map'")
	}
	return val.V.([]KV), nil
}

// IsMap returns true if the provided Value is a Map.
func IsMap(val *V) bool {
	return val != nil && val.T == MapValueType
}

// IsList returns true if the provided Value holds a sequence: a Strings,
// Doubles, or List.
func IsList(val *V) bool {
	return val != nil && (val.T == StringsValueType || val.T == DoublesValueType || val.T == ListValueType)
}

// Elements returns the provided sequence Value's elements as individual
// Values.  The second return value is false if val is not a sequence.
func Elements(val *V) ([]*V, bool) {
	if val == nil {
		return nil, false
	}
	switch val.T {
	case StringsValueType:
		strs := val.V.([]string)
		ret := make([]*V, len(strs))
		for idx, str := range strs {
			ret[idx] = StringValue(str)
		}
		return ret, true
	case DoublesValueType:
		dbls := val.V.([]float64)
		ret := make([]*V, len(dbls))
		for idx, d := range dbls {
			ret[idx] = DoubleValue(d)
		}
		return ret, true
	case ListValueType:
		return append([]*V(nil), val.V.([]*V)...), true
	default:
		return nil, false
	}
}

// Lookup returns the entry keyed by key in the provided map Value.
func Lookup(val *V, key string) (*V, bool) {
	kvs, err := ExpectMapValue(val)
	if err != nil {
		return nil, false
	}
	for _, kv := range kvs {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return nil, false
}

// Float coerces the provided Value to a float64.  Doubles and integers convert
// directly, and strings are parsed as numbers.  The second return value is
// false, and the first NaN, if no conversion applies.
func Float(val *V) (float64, bool) {
	if val == nil {
		return math.NaN(), false
	}
	switch val.T {
	case DoubleValueType:
		return val.V.(float64), true
	case IntegerValueType:
		return float64(val.V.(int64)), true
	case StringValueType:
		str := strings.TrimSpace(val.V.(string))
		if str == "" {
			return math.NaN(), false
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return math.NaN(), false
	}
}

// FormatNumber renders f the way a chart option author writes it: integers
// without a fractional part, very large or small magnitudes in exponent form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Key coerces the provided scalar Value to a string suitable for use as a
// category or map key.  Non-scalar Values yield false.
func Key(val *V) (string, bool) {
	if val == nil {
		return "", false
	}
	switch val.T {
	case StringValueType:
		return val.V.(string), true
	case IntegerValueType:
		return strconv.FormatInt(val.V.(int64), 10), true
	case DoubleValueType:
		return FormatNumber(val.V.(float64)), true
	case BoolValueType:
		return strconv.FormatBool(val.V.(bool)), true
	default:
		return "", false
	}
}

// Clone returns a deep copy of the provided Value.
func Clone(val *V) *V {
	if val == nil {
		return nil
	}
	switch val.T {
	case StringsValueType:
		return StringsValue(append([]string(nil), val.V.([]string)...)...)
	case DoublesValueType:
		return DoublesValue(append([]float64(nil), val.V.([]float64)...)...)
	case ListValueType:
		elems := val.V.([]*V)
		ret := make([]*V, len(elems))
		for idx, elem := range elems {
			ret[idx] = Clone(elem)
		}
		return ListValue(ret...)
	case MapValueType:
		kvs := val.V.([]KV)
		ret := make([]KV, len(kvs))
		for idx, kv := range kvs {
			ret[idx] = KV{Key: kv.Key, Val: Clone(kv.Val)}
		}
		return MapValue(ret...)
	default:
		ret := *val
		return &ret
	}
}
