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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON encodes the receiving V as plain JSON: strings, numbers and
// bools as themselves, sequences as arrays, and maps as objects whose keys
// appear in declaration order.
func (v *V) MarshalJSON() ([]byte, error) {
	switch v.T {
	case unsetValue:
		return []byte("null"), nil
	case ListValueType:
		return json.Marshal(v.V.([]*V))
	case MapValueType:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for idx, kv := range v.V.([]KV) {
			if idx > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(kv.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(kv.Val)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v.V)
	}
}

// UnmarshalJSON decodes plain JSON into the receiving V.  Integral numbers
// decode as integers, other numbers as doubles, arrays as Lists and objects
// as Maps.  A JSON null leaves the receiver unset.
func (v *V) UnmarshalJSON(data []byte) error {
	got, err := ValueFromJSON(data)
	if err != nil {
		return err
	}
	if got == nil {
		*v = V{}
		return nil
	}
	*v = *got
	return nil
}

// ValueFromJSON attempts to construct a V from the provided plain JSON.  A
// JSON null yields a nil V.
func ValueFromJSON(data []byte) (*V, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	ret, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return ret, nil
}

func decodeValue(dec *json.Decoder) (*V, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return nil, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntegerValue(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return DoubleValue(f), nil
	case json.Delim:
		switch t {
		case '[':
			elems := []*V{}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ListValue(elems...), nil
		case '{':
			kvs := []KV{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, KV{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return MapValue(kvs...), nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
