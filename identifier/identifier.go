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

// Package identifier encodes an account address and sub-address as a
// shareable bech32 account identifier, and wraps identifiers in payment
// intent URIs.
//
// An identifier is bech32(prefix, [version] || convertBits(address || subaddress, 8, 5)).
// The prefix names the network and is always passed in by the caller.
package identifier

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/golibra/bech32"
	"github.com/blinklabs-io/golibra/types"
)

const (
	MainnetPrefix = "lbr"
	TestnetPrefix = "tlb"

	// Version is the only identifier version
	Version uint8 = 1

	payloadSize = types.AccountAddressSize + types.SubAddressSize
)

var (
	ErrPrefixMismatch     = errors.New("identifier: network prefix mismatch")
	ErrUnsupportedVersion = errors.New("identifier: unsupported version")
	ErrInvalidLength      = errors.New("identifier: invalid decoded length")
)

// PrefixMismatchError reports an identifier for another network. It matches
// ErrPrefixMismatch
type PrefixMismatchError struct {
	Expected string
	Actual   string
}

func (e *PrefixMismatchError) Error() string {
	return fmt.Sprintf(
		"identifier: network prefix mismatch: expected %q, got %q",
		e.Expected,
		e.Actual,
	)
}

func (e *PrefixMismatchError) Is(target error) bool {
	return target == ErrPrefixMismatch
}

type AccountIdentifier struct {
	Prefix     string
	Version    uint8
	Address    types.AccountAddress
	SubAddress types.SubAddress
}

// New returns a current-version identifier
func New(prefix string, address types.AccountAddress, subAddress types.SubAddress) AccountIdentifier {
	return AccountIdentifier{
		Prefix:     prefix,
		Version:    Version,
		Address:    address,
		SubAddress: subAddress,
	}
}

func (a AccountIdentifier) Encode() (string, error) {
	if a.Version != Version {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, a.Version)
	}
	return Encode(a.Prefix, a.Address, a.SubAddress)
}

// Encode returns the bech32 account identifier for address and subAddress on
// the network named by prefix
func Encode(prefix string, address types.AccountAddress, subAddress types.SubAddress) (string, error) {
	payload := make([]byte, 0, payloadSize)
	payload = append(payload, address[:]...)
	payload = append(payload, subAddress[:]...)
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("encode account identifier: %w", err)
	}
	ret, err := bech32.Encode(prefix, append([]byte{Version}, data...))
	if err != nil {
		return "", fmt.Errorf("encode account identifier: %w", err)
	}
	return ret, nil
}

// Decode parses text, which must be an identifier for the network named by
// expectedPrefix
func Decode(expectedPrefix string, text string) (*AccountIdentifier, error) {
	hrp, data, err := bech32.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("decode account identifier: %w", err)
	}
	if hrp != expectedPrefix {
		return nil, &PrefixMismatchError{Expected: expectedPrefix, Actual: hrp}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrInvalidLength)
	}
	if data[0] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	payload, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("decode account identifier: %w", err)
	}
	if len(payload) != payloadSize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidLength,
			payloadSize,
			len(payload),
		)
	}
	ret := &AccountIdentifier{
		Prefix:  hrp,
		Version: data[0],
	}
	copy(ret.Address[:], payload[:types.AccountAddressSize])
	copy(ret.SubAddress[:], payload[types.AccountAddressSize:])
	return ret, nil
}
