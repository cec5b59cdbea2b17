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

package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blinklabs-io/golibra/bcs"
	"golang.org/x/crypto/sha3"
)

const (
	AccountAddressSize    = 16
	SubAddressSize        = 8
	AuthenticationKeySize = 32
)

// Authentication key schemes
const (
	SchemeEd25519      uint8 = 0
	SchemeMultiEd25519 uint8 = 1
)

// AccountAddress identifies an on-chain account
type AccountAddress [AccountAddressSize]byte

// CoreCodeAddress holds the framework modules, including the currency types
var CoreCodeAddress = AccountAddress{15: 0x01}

func NewAccountAddress(data []byte) (AccountAddress, error) {
	var ret AccountAddress
	if len(data) != AccountAddressSize {
		return ret, &InvalidLengthError{
			Type:     "account address",
			Expected: AccountAddressSize,
			Actual:   len(data),
		}
	}
	copy(ret[:], data)
	return ret, nil
}

// ParseAccountAddress parses a hex account address with an optional 0x prefix
func ParseAccountAddress(s string) (AccountAddress, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return AccountAddress{}, fmt.Errorf("parse account address: %w", err)
	}
	return NewAccountAddress(raw)
}

func (a AccountAddress) String() string {
	return hex.EncodeToString(a[:])
}

func (a AccountAddress) Bytes() []byte {
	return a[:]
}

func (a AccountAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AccountAddress) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tmp, err := ParseAccountAddress(s)
	if err != nil {
		return err
	}
	*a = tmp
	return nil
}

func (a AccountAddress) MarshalBCS(e *bcs.Encoder) {
	e.WriteFixedBytes(a[:])
}

func (a *AccountAddress) UnmarshalBCS(d *bcs.Decoder) {
	copy(a[:], d.ReadFixedBytes(AccountAddressSize))
}

// SubAddress distinguishes users behind a custodial account. The all-zero
// value is reserved to mean "no sub-address"
type SubAddress [SubAddressSize]byte

func NewSubAddress(data []byte) (SubAddress, error) {
	var ret SubAddress
	if len(data) != SubAddressSize {
		return ret, &InvalidLengthError{
			Type:     "sub-address",
			Expected: SubAddressSize,
			Actual:   len(data),
		}
	}
	copy(ret[:], data)
	return ret, nil
}

func ParseSubAddress(s string) (SubAddress, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return SubAddress{}, fmt.Errorf("parse sub-address: %w", err)
	}
	return NewSubAddress(raw)
}

// GenerateSubAddress reads random bytes from r until it gets a non-zero
// sub-address
func GenerateSubAddress(r io.Reader) (SubAddress, error) {
	var ret SubAddress
	for {
		if _, err := io.ReadFull(r, ret[:]); err != nil {
			return SubAddress{}, fmt.Errorf("generate sub-address: %w", err)
		}
		if !ret.IsZero() {
			return ret, nil
		}
	}
}

func (s SubAddress) IsZero() bool {
	return s == SubAddress{}
}

func (s SubAddress) String() string {
	return hex.EncodeToString(s[:])
}

func (s SubAddress) Bytes() []byte {
	return s[:]
}

func (s SubAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// AuthenticationKey is SHA3-256(public key || scheme). The last 16 bytes are
// the account address and the first 16 bytes are the auth key prefix
type AuthenticationKey [AuthenticationKeySize]byte

func NewAuthenticationKey(publicKey []byte, scheme uint8) AuthenticationKey {
	h := sha3.New256()
	h.Write(publicKey)
	h.Write([]byte{scheme})
	var ret AuthenticationKey
	copy(ret[:], h.Sum(nil))
	return ret
}

func (k AuthenticationKey) AccountAddress() AccountAddress {
	var ret AccountAddress
	copy(ret[:], k[AuthenticationKeySize-AccountAddressSize:])
	return ret
}

func (k AuthenticationKey) Prefix() []byte {
	ret := make([]byte, AuthenticationKeySize-AccountAddressSize)
	copy(ret, k[:])
	return ret
}

func (k AuthenticationKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k AuthenticationKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ChainID guards against replaying a transaction on another network
type ChainID uint8

const (
	ChainIDMainnet ChainID = 1
	ChainIDTestnet ChainID = 2
	ChainIDDevnet  ChainID = 3
	ChainIDTesting ChainID = 4
)

func (c ChainID) String() string {
	switch c {
	case ChainIDMainnet:
		return "MAINNET"
	case ChainIDTestnet:
		return "TESTNET"
	case ChainIDDevnet:
		return "DEVNET"
	case ChainIDTesting:
		return "TESTING"
	default:
		return fmt.Sprintf("%d", uint8(c))
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty hex string")
	}
	return hex.DecodeString(s)
}
