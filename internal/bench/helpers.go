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

// Package bench provides benchmarks and fixtures for the encode, hash and
// sign paths.
package bench

import (
	"fmt"

	"github.com/blinklabs-io/golibra/bcs"
	"github.com/blinklabs-io/golibra/internal/test"
	"github.com/blinklabs-io/golibra/signer"
	"github.com/blinklabs-io/golibra/types"
)

// TxFixture contains a pre-built transaction for benchmarking.
type TxFixture struct {
	Name      string
	Raw       *types.RawTransaction
	RawBCS    []byte
	Signed    *types.SignedTransaction
	SignedBCS []byte
	Key       *signer.PrivateKey
}

// LoadTxFixture builds the named transaction fixture. "sample" is the
// known-answer transaction; "large" carries a script of the given size.
func LoadTxFixture(name string, scriptSize int) (*TxFixture, error) {
	key, err := signer.ParsePrivateKey(test.Ed25519Seed)
	if err != nil {
		return nil, err
	}
	raw := test.SampleRawTransaction()
	switch name {
	case "sample":
	case "large":
		raw.Payload = &types.Script{
			Code: make([]byte, scriptSize),
			Args: []types.TransactionArgument{
				types.U8VectorArgument(make([]byte, scriptSize)),
			},
		}
	default:
		return nil, fmt.Errorf("unknown fixture: %s", name)
	}
	rawBCS, err := bcs.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode %s raw transaction: %w", name, err)
	}
	signed, err := signer.Sign(raw, key)
	if err != nil {
		return nil, fmt.Errorf("sign %s transaction: %w", name, err)
	}
	signedBCS, err := bcs.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("encode %s signed transaction: %w", name, err)
	}
	return &TxFixture{
		Name:      name,
		Raw:       raw,
		RawBCS:    rawBCS,
		Signed:    signed,
		SignedBCS: signedBCS,
		Key:       key,
	}, nil
}

// MustLoadTxFixture loads a fixture and panics on error.
// Use this in benchmark setup code.
func MustLoadTxFixture(name string, scriptSize int) *TxFixture {
	fixture, err := LoadTxFixture(name, scriptSize)
	if err != nil {
		panic(fmt.Sprintf("failed to load %s fixture: %v", name, err))
	}
	return fixture
}

// Fixtures returns the standard set of fixtures
func Fixtures() []*TxFixture {
	return []*TxFixture{
		MustLoadTxFixture("sample", 0),
		MustLoadTxFixture("large", 64*1024),
	}
}
