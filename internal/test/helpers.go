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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/golibra/types"
	"github.com/holiman/uint256"
)

// Known-answer fixtures shared by package tests. The key pair is test vector 1
// of RFC 8032; the remaining values were computed independently from
// SampleRawTransaction signed with that key
const (
	Ed25519Seed      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	Ed25519PublicKey = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	AuthKey          = "63c5215e87770d17b9f4cd47c777e322f4eb152cfd2054c1080fd9d57c48913b"
	AuthKeyAddress   = "f4eb152cfd2054c1080fd9d57c48913b"

	SampleSender         = "f72589b71ff4f8d139674a3f7369c69b"
	SampleSubAddress     = "cf64428bdeb62af2"
	SampleReceiver       = "a1b2c3d4e5f60718293a4b5c6d7e8f90"
	SampleRawTxnBCS      = "f72589b71ff4f8d139674a3f7369c69b2a000000000000000103010203010700000000000000000000000000000001034c4252034c4252000403a1b2c3d4e5f60718293a4b5c6d7e8f9001e80300000000000004046d657461040040420f00000000000000000000000000034c425200105e5f0000000002"
	SampleSigningMessage = "8729a3e8bbb178e72d05a9ea76e45b3f255910322f0fe91ccf8e2ff4706a5fa9"
	SampleSignature      = "619e8e4d3e14fe6f440de0f2b61525b1d88c8d4bf18a8a460b4546e43f9fb5f655632f70f64672f658d5729be05384d89d5dae84462694d891dbbadaad1b7305"
	SampleTransactionID  = "020183fde24c3f34bbecd49ec6774b95ab496a315f340f9b5188b5e432269ecd"
	SampleExpiration     = 1600000000
)

// SampleSignedTxnBCS is the canonical encoding of SampleRawTransaction with an
// Ed25519 authenticator
const SampleSignedTxnBCS = SampleRawTxnBCS + "0020" + Ed25519PublicKey + "40" + SampleSignature

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// EncodeHexString returns the lowercase hex form of data
func EncodeHexString(data []byte) string {
	return hex.EncodeToString(data)
}

// AccountAddress parses a hex account address, panicking on bad input
func AccountAddress(hexData string) types.AccountAddress {
	ret, err := types.NewAccountAddress(DecodeHexString(hexData))
	if err != nil {
		panic(fmt.Sprintf("error building account address: %s", err))
	}
	return ret
}

// SubAddress parses a hex sub-address, panicking on bad input
func SubAddress(hexData string) types.SubAddress {
	ret, err := types.NewSubAddress(DecodeHexString(hexData))
	if err != nil {
		panic(fmt.Sprintf("error building sub-address: %s", err))
	}
	return ret
}

// SampleRawTransaction returns a fresh copy of the transaction behind the
// Sample* fixtures: a script with one currency type argument and one
// argument of most kinds
func SampleRawTransaction() *types.RawTransaction {
	return &types.RawTransaction{
		Sender:         AccountAddress(SampleSender),
		SequenceNumber: 42,
		Payload: &types.Script{
			Code: []byte{1, 2, 3},
			TyArgs: []types.TypeTag{
				types.CurrencyTag("LBR"),
			},
			Args: []types.TransactionArgument{
				types.AddressArgument(AccountAddress(SampleReceiver)),
				types.U64Argument(1000),
				types.U8VectorArgument("meta"),
				types.U8VectorArgument(""),
			},
		},
		MaxGasAmount:            1000000,
		GasUnitPrice:            0,
		GasCurrencyCode:         "LBR",
		ExpirationTimestampSecs: SampleExpiration,
		ChainID:                 types.ChainIDTestnet,
	}
}

// U128 builds a u128 value from a big-endian hex string
func U128(hexData string) *uint256.Int {
	return new(uint256.Int).SetBytes(DecodeHexString(hexData))
}
