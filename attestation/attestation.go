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

// Package attestation builds the travel-rule metadata attached to large
// payments and the message the receiver's compliance key signs over it.
//
// The message is the exact byte sequence
//
//	bcs(metadata) || bcs(sender) || bcs(amount as u64) || "@@$$LIBRA_ATTEST$$@@"
//
// and is signed as is, not hashed first.
package attestation

import (
	"fmt"

	"github.com/blinklabs-io/golibra/bcs"
	"github.com/blinklabs-io/golibra/signer"
	"github.com/blinklabs-io/golibra/types"
)

// DomainTag is appended to every attestation message
const DomainTag = "@@$$LIBRA_ATTEST$$@@"

// NewTravelRuleMetadata returns version 0 travel rule metadata. An empty
// reference id is encoded as absent
func NewTravelRuleMetadata(offChainReferenceID string) *types.TravelRuleMetadata {
	ret := &types.TravelRuleMetadata{}
	if offChainReferenceID != "" {
		ret.OffChainReferenceID = &offChainReferenceID
	}
	return ret
}

// Message returns the bytes the compliance key signs for a payment of amount
// from sender carrying metadata
func Message(metadata types.Metadata, sender types.AccountAddress, amount uint64) ([]byte, error) {
	e := bcs.NewEncoder()
	e.WriteValue(metadata)
	sender.MarshalBCS(e)
	e.WriteU64(amount)
	e.WriteFixedBytes([]byte(DomainTag))
	ret, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("attestation message: %w", err)
	}
	return ret, nil
}

// Build returns the encoded travel rule metadata for referenceID along with
// its attestation message
func Build(referenceID string, sender types.AccountAddress, amount uint64) ([]byte, []byte, error) {
	metadata := NewTravelRuleMetadata(referenceID)
	metadataBytes, err := bcs.Marshal(metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("encode travel rule metadata: %w", err)
	}
	message, err := Message(metadata, sender, amount)
	if err != nil {
		return nil, nil, err
	}
	return metadataBytes, message, nil
}

// Sign signs an attestation message with a compliance key
func Sign(message []byte, key *signer.PrivateKey) []byte {
	return key.SignMessage(message)
}

// Verify checks a compliance signature over an attestation message
func Verify(message []byte, signature []byte, compliancePublicKey signer.PublicKey) error {
	if err := compliancePublicKey.VerifyMessage(message, signature); err != nil {
		return fmt.Errorf("attestation: %w", err)
	}
	return nil
}
