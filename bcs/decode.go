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
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// Decoder reads canonical BCS from a byte slice
type Decoder struct {
	data  []byte
	pos   int
	err   error
	depth int
}

// NewDecoder returns a Decoder reading from data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Err returns the first error recorded by the decoder
func (d *Decoder) Err() error {
	return d.err
}

// SetErr records err unless an earlier error is already set
func (d *Decoder) SetErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Finish returns the first decode error, or ErrRemainingInput if any bytes
// were left unread
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if rem := d.Remaining(); rem > 0 {
		return fmt.Errorf("%w: %d bytes", ErrRemainingInput, rem)
	}
	return nil
}

func (d *Decoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > d.Remaining() {
		d.SetErr(
			fmt.Errorf(
				"%w: need %d bytes at offset %d, have %d",
				ErrUnexpectedEOF,
				n,
				d.pos,
				d.Remaining(),
			),
		)
		return nil
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b
}

func (d *Decoder) ReadU8() uint8 {
	b := d.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) ReadU16() uint16 {
	b := d.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) ReadU32() uint32 {
	b := d.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *Decoder) ReadU64() uint64 {
	b := d.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// ReadU128 reads 16 little-endian bytes
func (d *Decoder) ReadU128() *uint256.Int {
	b := d.next(16)
	if b == nil {
		return nil
	}
	var be [16]byte
	for i := 0; i < 16; i++ {
		be[i] = b[15-i]
	}
	return new(uint256.Int).SetBytes(be[:])
}

func (d *Decoder) ReadBool() bool {
	switch v := d.ReadU8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		d.SetErr(fmt.Errorf("%w: %d", ErrInvalidBool, v))
		return false
	}
}

// ReadUleb128 reads a ULEB128 value that must fit in 32 bits and use the
// minimal number of bytes
func (d *Decoder) ReadUleb128() uint32 {
	var value uint64
	for shift := uint(0); shift < 32; shift += 7 {
		b := d.next(1)
		if b == nil {
			return 0
		}
		digit := b[0] & 0x7f
		value |= uint64(digit) << shift
		if b[0]&0x80 == 0 {
			if shift > 0 && digit == 0 {
				d.SetErr(ErrNonCanonicalUleb128)
				return 0
			}
			if value > 0xffffffff {
				d.SetErr(
					fmt.Errorf("%w: ULEB128 exceeds u32", ErrValueOutOfRange),
				)
				return 0
			}
			return uint32(value)
		}
	}
	d.SetErr(fmt.Errorf("%w: ULEB128 exceeds u32", ErrValueOutOfRange))
	return 0
}

// ReadLength reads a sequence length prefix. Every element of the sequences
// used by this module occupies at least one byte, so a length larger than
// the remaining input is rejected up front
func (d *Decoder) ReadLength() int {
	n := d.ReadUleb128()
	if d.err != nil {
		return 0
	}
	if n > MaxSequenceLength {
		d.SetErr(fmt.Errorf("%w: %d", ErrSequenceTooLong, n))
		return 0
	}
	if int(n) > d.Remaining() {
		d.SetErr(
			fmt.Errorf(
				"%w: length %d exceeds remaining %d bytes",
				ErrUnexpectedEOF,
				n,
				d.Remaining(),
			),
		)
		return 0
	}
	return int(n)
}

// ReadVariant reads an enum variant index
func (d *Decoder) ReadVariant() uint32 {
	return d.ReadUleb128()
}

// ReadOptionTag reads the presence byte of an optional value
func (d *Decoder) ReadOptionTag() bool {
	switch v := d.ReadU8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		d.SetErr(fmt.Errorf("%w: %d", ErrInvalidOptionTag, v))
		return false
	}
}

// ReadFixedBytes reads exactly n bytes with no prefix. The result is a copy
func (d *Decoder) ReadFixedBytes(n int) []byte {
	b := d.next(n)
	if b == nil {
		return nil
	}
	ret := make([]byte, n)
	copy(ret, b)
	return ret
}

// ReadBytes reads a length-prefixed byte array
func (d *Decoder) ReadBytes() []byte {
	n := d.ReadLength()
	if d.err != nil {
		return nil
	}
	return d.ReadFixedBytes(n)
}

// ReadString reads a length-prefixed UTF-8 string
func (d *Decoder) ReadString() string {
	b := d.ReadBytes()
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.SetErr(ErrInvalidUTF8)
		return ""
	}
	return string(b)
}

// ReadValue reads a nested value, counting it against MaxContainerDepth
func (d *Decoder) ReadValue(v Unmarshaler) {
	if d.err != nil {
		return
	}
	d.depth++
	if d.depth > MaxContainerDepth {
		d.SetErr(ErrContainerDepthExceeded)
		d.depth--
		return
	}
	v.UnmarshalBCS(d)
	d.depth--
}
