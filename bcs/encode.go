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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// Encoder writes canonical BCS into an in-memory buffer
type Encoder struct {
	buf   bytes.Buffer
	err   error
	depth int
	uv    [16]byte
}

// NewEncoder returns an empty Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Err returns the first error recorded by the encoder
func (e *Encoder) Err() error {
	return e.err
}

// SetErr records err unless an earlier error is already set. Marshalers use
// it to report values that cannot be encoded
func (e *Encoder) SetErr(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Bytes returns the encoded output, or the first error encountered
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

func (e *Encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	e.buf.Write(b)
}

func (e *Encoder) WriteU8(v uint8) {
	e.uv[0] = v
	e.write(e.uv[:1])
}

func (e *Encoder) WriteU16(v uint16) {
	binary.LittleEndian.PutUint16(e.uv[:2], v)
	e.write(e.uv[:2])
}

func (e *Encoder) WriteU32(v uint32) {
	binary.LittleEndian.PutUint32(e.uv[:4], v)
	e.write(e.uv[:4])
}

func (e *Encoder) WriteU64(v uint64) {
	binary.LittleEndian.PutUint64(e.uv[:8], v)
	e.write(e.uv[:8])
}

// WriteU128 writes v as 16 little-endian bytes. v must fit in 128 bits
func (e *Encoder) WriteU128(v *uint256.Int) {
	if e.err != nil {
		return
	}
	if v == nil {
		e.SetErr(fmt.Errorf("%w: nil u128", ErrValueOutOfRange))
		return
	}
	if v.BitLen() > 128 {
		e.SetErr(
			fmt.Errorf("%w: u128 has %d bits", ErrValueOutOfRange, v.BitLen()),
		)
		return
	}
	be := v.Bytes32()
	// low 16 bytes of the big-endian form, reversed
	for i := 0; i < 16; i++ {
		e.uv[i] = be[31-i]
	}
	e.write(e.uv[:16])
}

// WriteBool writes a boolean as a single 0 or 1 byte
func (e *Encoder) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	e.WriteU8(b)
}

// WriteUleb128 writes v in ULEB128 form
func (e *Encoder) WriteUleb128(v uint32) {
	n := 0
	for v >= 0x80 {
		e.uv[n] = byte(v&0x7f) | 0x80
		v >>= 7
		n++
	}
	e.uv[n] = byte(v)
	e.write(e.uv[:n+1])
}

// WriteLength writes a sequence length prefix
func (e *Encoder) WriteLength(n int) {
	if n < 0 || n > MaxSequenceLength {
		e.SetErr(fmt.Errorf("%w: %d", ErrSequenceTooLong, n))
		return
	}
	e.WriteUleb128(uint32(n))
}

// WriteVariant writes an enum variant index
func (e *Encoder) WriteVariant(idx uint32) {
	e.WriteUleb128(idx)
}

// WriteOptionTag writes the presence byte of an optional value. The caller
// writes the value itself when present is true
func (e *Encoder) WriteOptionTag(present bool) {
	e.WriteBool(present)
}

// WriteFixedBytes writes b without a length prefix
func (e *Encoder) WriteFixedBytes(b []byte) {
	e.write(b)
}

// WriteBytes writes b with a length prefix
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteLength(len(b))
	e.write(b)
}

// WriteString writes s as length-prefixed UTF-8
func (e *Encoder) WriteString(s string) {
	if !utf8.ValidString(s) {
		e.SetErr(ErrInvalidUTF8)
		return
	}
	e.WriteLength(len(s))
	if e.err != nil {
		return
	}
	e.buf.WriteString(s)
}

// WriteValue writes a nested value, counting it against MaxContainerDepth
func (e *Encoder) WriteValue(v Marshaler) {
	if e.err != nil {
		return
	}
	if v == nil {
		e.SetErr(errors.New("bcs: cannot encode nil value"))
		return
	}
	e.depth++
	if e.depth > MaxContainerDepth {
		e.SetErr(ErrContainerDepthExceeded)
		e.depth--
		return
	}
	v.MarshalBCS(e)
	e.depth--
}
