// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bcs

// WriteSeq writes a length-prefixed sequence, encoding each item with fn
func WriteSeq[T any](e *Encoder, items []T, fn func(*Encoder, T)) {
	e.WriteLength(len(items))
	for _, item := range items {
		if e.err != nil {
			return
		}
		fn(e, item)
	}
}

// ReadSeq reads a length-prefixed sequence, decoding each item with fn. An
// empty sequence decodes as nil
func ReadSeq[T any](d *Decoder, fn func(*Decoder) T) []T {
	n := d.ReadLength()
	if d.err != nil || n == 0 {
		return nil
	}
	ret := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item := fn(d)
		if d.err != nil {
			return nil
		}
		ret = append(ret, item)
	}
	return ret
}

// WriteOption writes the presence tag for v and, if v is not nil, the value
func WriteOption[T any](e *Encoder, v *T, fn func(*Encoder, T)) {
	e.WriteOptionTag(v != nil)
	if v != nil {
		fn(e, *v)
	}
}

// ReadOption reads an optional value. It returns nil when absent
func ReadOption[T any](d *Decoder, fn func(*Decoder) T) *T {
	if !d.ReadOptionTag() || d.err != nil {
		return nil
	}
	v := fn(d)
	if d.err != nil {
		return nil
	}
	return &v
}

// Nested runs fn as one level of container nesting. It is used for values
// encoded by function rather than through a Marshaler, such as the variants
// of an interface-typed enum
func (e *Encoder) Nested(fn func(*Encoder)) {
	e.WriteValue(encodeFunc(fn))
}

// Nested runs fn as one level of container nesting
func (d *Decoder) Nested(fn func(*Decoder)) {
	d.ReadValue(decodeFunc(fn))
}

type encodeFunc func(*Encoder)

func (f encodeFunc) MarshalBCS(e *Encoder) { f(e) }

type decodeFunc func(*Decoder)

func (f decodeFunc) UnmarshalBCS(d *Decoder) { f(d) }
