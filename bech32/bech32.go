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

// Package bech32 implements the checksummed base-32 text format used for
// account identifiers.
//
// Checksum arithmetic and bit regrouping come from
// github.com/btcsuite/btcd/btcutil/bech32, whose generator polynomial is the
// one listed in Generator. This package adds the stricter input validation
// and a typed error for each way a string can be malformed, so callers can
// tell a mistyped identifier from a wrong-network one.
package bech32

import (
	"errors"
	"fmt"
	"strings"

	btcbech32 "github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// Charset maps 5-bit values to characters
	Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	// MaxLength is the longest string accepted by Encode and Decode
	MaxLength = 90

	// ChecksumLength is the number of checksum characters
	ChecksumLength = 6

	Separator = '1'
)

// Generator is the BCH generator polynomial folded by polymod
var Generator = [5]uint32{
	0x3b6a57b2,
	0x26508e6d,
	0x1ea119fa,
	0x3d4233dd,
	0x2a1462b3,
}

var (
	ErrTooLong              = errors.New("bech32: string too long")
	ErrInvalidHRP           = errors.New("bech32: invalid human-readable part")
	ErrMixedCase            = errors.New("bech32: mixed case")
	ErrInvalidSeparator     = errors.New("bech32: missing or misplaced separator")
	ErrInvalidDataCharacter = errors.New("bech32: invalid data character")
	ErrInvalidChecksum      = errors.New("bech32: invalid checksum")
	ErrInvalidPadding       = errors.New("bech32: invalid padding")
	ErrValueOutOfRange      = errors.New("bech32: value exceeds bit width")
)

// Encode returns hrp + "1" + data + checksum. data holds 5-bit values. The
// result is upper-case when hrp is upper-case and lower-case otherwise
func Encode(hrp string, data []byte) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidHRP)
	}
	if len(hrp)+len(data)+1+ChecksumLength > MaxLength {
		return "", fmt.Errorf(
			"%w: %d characters",
			ErrTooLong,
			len(hrp)+len(data)+1+ChecksumLength,
		)
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", fmt.Errorf(
				"%w: character 0x%02x at position %d",
				ErrInvalidHRP,
				hrp[i],
				i,
			)
		}
	}
	upper, err := caseOf(hrp)
	if err != nil {
		return "", err
	}
	for i, v := range data {
		if v > 31 {
			return "", fmt.Errorf(
				"%w: data value %d at position %d",
				ErrValueOutOfRange,
				v,
				i,
			)
		}
	}
	encoded, err := btcbech32.Encode(strings.ToLower(hrp), data)
	if err != nil {
		return "", fmt.Errorf("bech32: %w", err)
	}
	if upper {
		return strings.ToUpper(encoded), nil
	}
	return encoded, nil
}

// Decode validates text and returns its lower-case human-readable part and
// the 5-bit data values without the checksum
func Decode(text string) (string, []byte, error) {
	if len(text) > MaxLength {
		return "", nil, fmt.Errorf("%w: %d characters", ErrTooLong, len(text))
	}
	pos := strings.LastIndexByte(text, Separator)
	if pos < 0 {
		return "", nil, fmt.Errorf("%w: not found", ErrInvalidSeparator)
	}
	if pos == 0 {
		return "", nil, fmt.Errorf("%w: empty", ErrInvalidHRP)
	}
	if pos+1+ChecksumLength > len(text) {
		return "", nil, fmt.Errorf(
			"%w: at position %d leaves too few checksum characters",
			ErrInvalidSeparator,
			pos,
		)
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 33 && c <= 126 {
			continue
		}
		if i < pos {
			return "", nil, fmt.Errorf(
				"%w: character 0x%02x at position %d",
				ErrInvalidHRP,
				c,
				i,
			)
		}
		return "", nil, fmt.Errorf(
			"%w: character 0x%02x at position %d",
			ErrInvalidDataCharacter,
			c,
			i,
		)
	}
	if _, err := caseOf(text); err != nil {
		return "", nil, err
	}
	lower := strings.ToLower(text)
	for i := pos + 1; i < len(lower); i++ {
		if strings.IndexByte(Charset, lower[i]) < 0 {
			return "", nil, fmt.Errorf(
				"%w: %q at position %d",
				ErrInvalidDataCharacter,
				lower[i],
				i,
			)
		}
	}
	hrp, data, version, err := btcbech32.DecodeGeneric(lower)
	if err != nil {
		var checksumErr btcbech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			return "", nil, fmt.Errorf("%w: %s", ErrInvalidChecksum, err)
		}
		return "", nil, fmt.Errorf("bech32: %w", err)
	}
	// A bech32m checksum is valid for the library but not for this format
	if version != btcbech32.Version0 {
		return "", nil, fmt.Errorf("%w: not a bech32 checksum", ErrInvalidChecksum)
	}
	return hrp, data, nil
}

// ConvertBits regroups a stream of fromBits-wide values into toBits-wide
// values. With pad set a final partial group is zero-padded; without it any
// leftover bits must be zero and fewer than fromBits
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, fmt.Errorf(
			"%w: unsupported group widths %d -> %d",
			ErrValueOutOfRange,
			fromBits,
			toBits,
		)
	}
	if fromBits < 8 {
		for i, v := range data {
			if v>>fromBits != 0 {
				return nil, fmt.Errorf(
					"%w: value %d at position %d exceeds %d bits",
					ErrValueOutOfRange,
					v,
					i,
					fromBits,
				)
			}
		}
	}
	ret, err := btcbech32.ConvertBits(data, fromBits, toBits, pad)
	if err != nil {
		var groupErr btcbech32.ErrInvalidIncompleteGroup
		if errors.As(err, &groupErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPadding, err)
		}
		return nil, fmt.Errorf("bech32: %w", err)
	}
	return ret, nil
}

// caseOf reports whether s is upper-case. Strings mixing both cases fail
func caseOf(s string) (bool, error) {
	var hasLower, hasUpper bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return false, ErrMixedCase
	}
	return hasUpper, nil
}
