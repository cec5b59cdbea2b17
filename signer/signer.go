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

// Package signer holds Ed25519 account keys and signs raw transactions.
//
// Signing is deterministic: the same key and raw transaction always produce
// the same signed transaction and therefore the same transaction id.
package signer

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/golibra/types"
)

const (
	SeedSize      = ed25519.SeedSize
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = ed25519.SignatureSize
)

var (
	ErrMalformedKey          = errors.New("signer: malformed key")
	ErrInvalidSignature      = errors.New("signer: invalid signature")
	ErrUnsupportedAuthScheme = errors.New("signer: unsupported authenticator")
)

// PrivateKey is an Ed25519 signing key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKeyFromSeed derives a key from a 32-byte RFC 8032 seed
func NewPrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf(
			"%w: seed must be %d bytes, got %d",
			ErrMalformedKey,
			SeedSize,
			len(seed),
		)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// ParsePrivateKey parses a hex seed with an optional 0x prefix
func ParsePrivateKey(s string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(trimHex(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedKey, err)
	}
	return NewPrivateKeyFromSeed(seed)
}

// GeneratePrivateKey creates a key from a seed read from r
func GeneratePrivateKey(r io.Reader) (*PrivateKey, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	return NewPrivateKeyFromSeed(seed)
}

func (k *PrivateKey) Seed() []byte {
	return k.key.Seed()
}

func (k *PrivateKey) PublicKey() PublicKey {
	var ret PublicKey
	copy(ret[:], k.key.Public().(ed25519.PublicKey))
	return ret
}

// SignMessage returns the Ed25519 signature of msg
func (k *PrivateKey) SignMessage(msg []byte) []byte {
	return ed25519.Sign(k.key, msg)
}

// PublicKey is an Ed25519 verification key. Values built with NewPublicKey
// are canonical encodings of points outside the small-order subgroup
type PublicKey [PublicKeySize]byte

func NewPublicKey(data []byte) (PublicKey, error) {
	var ret PublicKey
	if len(data) != PublicKeySize {
		return ret, fmt.Errorf(
			"%w: public key must be %d bytes, got %d",
			ErrMalformedKey,
			PublicKeySize,
			len(data),
		)
	}
	point, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return ret, fmt.Errorf("%w: %s", ErrMalformedKey, err)
	}
	if !bytes.Equal(point.Bytes(), data) {
		return ret, fmt.Errorf("%w: non-canonical point encoding", ErrMalformedKey)
	}
	if new(edwards25519.Point).MultByCofactor(point).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return ret, fmt.Errorf("%w: small order point", ErrMalformedKey)
	}
	copy(ret[:], data)
	return ret, nil
}

func ParsePublicKey(s string) (PublicKey, error) {
	data, err := hex.DecodeString(trimHex(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %s", ErrMalformedKey, err)
	}
	return NewPublicKey(data)
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p PublicKey) AuthenticationKey() types.AuthenticationKey {
	return types.NewAuthenticationKey(p[:], types.SchemeEd25519)
}

// AccountAddress returns the address of an account created for this key
func (p PublicKey) AccountAddress() types.AccountAddress {
	return p.AuthenticationKey().AccountAddress()
}

// VerifyMessage checks an Ed25519 signature of msg
func (p PublicKey) VerifyMessage(msg []byte, signature []byte) error {
	if len(signature) != SignatureSize {
		return fmt.Errorf(
			"%w: signature must be %d bytes, got %d",
			ErrInvalidSignature,
			SignatureSize,
			len(signature),
		)
	}
	if !ed25519.Verify(p[:], msg, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign signs raw with key and wraps both in a signed transaction
func Sign(raw *types.RawTransaction, key *PrivateKey) (*types.SignedTransaction, error) {
	if raw == nil {
		return nil, errors.New("signer: nil raw transaction")
	}
	if key == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrMalformedKey)
	}
	msg, err := raw.SigningMessage()
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	auth := &types.Ed25519Authenticator{
		PublicKey: key.PublicKey(),
	}
	copy(auth.Signature[:], key.SignMessage(msg.Bytes()))
	return &types.SignedTransaction{
		RawTxn:        *raw,
		Authenticator: auth,
	}, nil
}

// Verify checks the authenticator of a signed transaction against its raw
// transaction. Only single Ed25519 authenticators are supported
func Verify(signed *types.SignedTransaction) error {
	if signed == nil {
		return errors.New("signer: nil signed transaction")
	}
	auth, ok := signed.Authenticator.(*types.Ed25519Authenticator)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedAuthScheme, signed.Authenticator)
	}
	pub, err := NewPublicKey(auth.PublicKey[:])
	if err != nil {
		return err
	}
	msg, err := signed.RawTxn.SigningMessage()
	if err != nil {
		return fmt.Errorf("verify transaction: %w", err)
	}
	return pub.VerifyMessage(msg.Bytes(), auth.Signature[:])
}

func trimHex(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
}
