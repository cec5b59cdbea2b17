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

import "errors"

const (
	// MaxSequenceLength is the largest length prefix accepted for sequences,
	// byte arrays and strings
	MaxSequenceLength = 1<<31 - 1

	// MaxContainerDepth bounds the nesting of structs and enums
	MaxContainerDepth = 500
)

var (
	ErrUnexpectedEOF          = errors.New("bcs: unexpected end of input")
	ErrRemainingInput         = errors.New("bcs: remaining input after value")
	ErrContainerDepthExceeded = errors.New("bcs: exceeded max container depth")
	ErrNonCanonicalUleb128    = errors.New("bcs: non-canonical ULEB128 encoding")
	ErrSequenceTooLong        = errors.New("bcs: sequence length exceeds maximum")
	ErrInvalidBool            = errors.New("bcs: invalid bool value")
	ErrInvalidOptionTag       = errors.New("bcs: invalid option tag")
	ErrInvalidUTF8            = errors.New("bcs: string is not valid UTF-8")
	ErrValueOutOfRange        = errors.New("bcs: value out of range")
	ErrUnknownVariant         = errors.New("bcs: unknown enum variant")
)

// Marshaler is implemented by types that can write themselves in canonical form
type Marshaler interface {
	MarshalBCS(*Encoder)
}

// Unmarshaler is implemented by types that can read themselves from canonical form
type Unmarshaler interface {
	UnmarshalBCS(*Decoder)
}

// Marshal returns the canonical encoding of v
func Marshal(v Marshaler) ([]byte, error) {
	e := NewEncoder()
	e.WriteValue(v)
	return e.Bytes()
}

// Unmarshal decodes data into v. All of data must be consumed
func Unmarshal(data []byte, v Unmarshaler) error {
	d := NewDecoder(data)
	d.ReadValue(v)
	return d.Finish()
}
