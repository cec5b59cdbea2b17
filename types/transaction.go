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
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/golibra/bcs"
	"github.com/blinklabs-io/golibra/hasher"
)

// TransactionPayload variant indices
const (
	PayloadWriteSet uint32 = 0
	PayloadScript   uint32 = 1
	PayloadModule   uint32 = 2
)

// TransactionAuthenticator variant indices
const (
	AuthenticatorEd25519      uint32 = 0
	AuthenticatorMultiEd25519 uint32 = 1
)

// TransactionUser is the variant index of a signed user transaction in the
// ledger's Transaction enum
const TransactionUser uint32 = 0

// Hasher type names
const (
	RawTransactionTypeName = "RawTransaction"
	TransactionTypeName    = "Transaction"
)

// TransactionPayload is the body of a transaction. Clients build Script and
// Module payloads. Write-set payloads are only produced by the ledger itself
// and fail with ErrUnsupportedPayload
type TransactionPayload interface {
	bcs.Marshaler
	isTransactionPayload()
}

type WriteSetPayload struct{}

func (WriteSetPayload) isTransactionPayload() {}

func (WriteSetPayload) MarshalBCS(e *bcs.Encoder) {
	e.SetErr(fmt.Errorf("%w: write set", ErrUnsupportedPayload))
}

// Script is a Move script with its type arguments and arguments
type Script struct {
	Code   []byte
	TyArgs []TypeTag
	Args   []TransactionArgument
}

func (*Script) isTransactionPayload() {}

func (s *Script) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(PayloadScript)
	e.WriteBytes(s.Code)
	bcs.WriteSeq(e, s.TyArgs, writeTypeTag)
	bcs.WriteSeq(e, s.Args, writeArgument)
}

// Module publishes Move bytecode
type Module struct {
	Code []byte
}

func (*Module) isTransactionPayload() {}

func (m *Module) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(PayloadModule)
	e.WriteBytes(m.Code)
}

// ReadTransactionPayload decodes a transaction payload
func ReadTransactionPayload(d *bcs.Decoder) TransactionPayload {
	var ret TransactionPayload
	d.Nested(func(d *bcs.Decoder) {
		variant := d.ReadVariant()
		if d.Err() != nil {
			return
		}
		switch variant {
		case PayloadWriteSet:
			d.SetErr(fmt.Errorf("%w: write set", ErrUnsupportedPayload))
		case PayloadScript:
			s := &Script{}
			s.Code = d.ReadBytes()
			s.TyArgs = bcs.ReadSeq(d, ReadTypeTag)
			s.Args = bcs.ReadSeq(d, ReadTransactionArgument)
			ret = s
		case PayloadModule:
			ret = &Module{Code: d.ReadBytes()}
		default:
			d.SetErr(fmt.Errorf("%w: transaction payload %d", bcs.ErrUnknownVariant, variant))
		}
	})
	if d.Err() != nil {
		return nil
	}
	return ret
}

// RawTransaction is the unsigned part of a transaction
type RawTransaction struct {
	Sender                  AccountAddress
	SequenceNumber          uint64
	Payload                 TransactionPayload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	GasCurrencyCode         string
	ExpirationTimestampSecs uint64
	ChainID                 ChainID
}

func (t *RawTransaction) MarshalBCS(e *bcs.Encoder) {
	t.Sender.MarshalBCS(e)
	e.WriteU64(t.SequenceNumber)
	e.WriteValue(t.Payload)
	e.WriteU64(t.MaxGasAmount)
	e.WriteU64(t.GasUnitPrice)
	e.WriteString(t.GasCurrencyCode)
	e.WriteU64(t.ExpirationTimestampSecs)
	e.WriteU8(uint8(t.ChainID))
}

func (t *RawTransaction) UnmarshalBCS(d *bcs.Decoder) {
	t.Sender.UnmarshalBCS(d)
	t.SequenceNumber = d.ReadU64()
	t.Payload = ReadTransactionPayload(d)
	t.MaxGasAmount = d.ReadU64()
	t.GasUnitPrice = d.ReadU64()
	t.GasCurrencyCode = d.ReadString()
	t.ExpirationTimestampSecs = d.ReadU64()
	t.ChainID = ChainID(d.ReadU8())
}

// SigningMessage returns the bytes an account key signs for this transaction
func (t *RawTransaction) SigningMessage() (hasher.HashValue, error) {
	ret, err := hasher.Default().SumValue(RawTransactionTypeName, t)
	if err != nil {
		return hasher.HashValue{}, fmt.Errorf("signing message: %w", err)
	}
	return ret, nil
}

// TransactionAuthenticator proves the sender authorised a transaction
type TransactionAuthenticator interface {
	bcs.Marshaler
	isTransactionAuthenticator()
}

type Ed25519Authenticator struct {
	PublicKey [ed25519.PublicKeySize]byte
	Signature [ed25519.SignatureSize]byte
}

func (*Ed25519Authenticator) isTransactionAuthenticator() {}

func (a *Ed25519Authenticator) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(AuthenticatorEd25519)
	e.WriteBytes(a.PublicKey[:])
	e.WriteBytes(a.Signature[:])
}

// MultiEd25519Authenticator carries a K-of-N key set and its signatures in
// their packed form
type MultiEd25519Authenticator struct {
	PublicKey []byte
	Signature []byte
}

func (*MultiEd25519Authenticator) isTransactionAuthenticator() {}

func (a *MultiEd25519Authenticator) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(AuthenticatorMultiEd25519)
	e.WriteBytes(a.PublicKey)
	e.WriteBytes(a.Signature)
}

// ReadTransactionAuthenticator decodes a transaction authenticator
func ReadTransactionAuthenticator(d *bcs.Decoder) TransactionAuthenticator {
	var ret TransactionAuthenticator
	d.Nested(func(d *bcs.Decoder) {
		variant := d.ReadVariant()
		if d.Err() != nil {
			return
		}
		switch variant {
		case AuthenticatorEd25519:
			a := &Ed25519Authenticator{}
			readSized(d, "ed25519 public key", a.PublicKey[:])
			readSized(d, "ed25519 signature", a.Signature[:])
			ret = a
		case AuthenticatorMultiEd25519:
			ret = &MultiEd25519Authenticator{
				PublicKey: d.ReadBytes(),
				Signature: d.ReadBytes(),
			}
		default:
			d.SetErr(fmt.Errorf("%w: authenticator %d", bcs.ErrUnknownVariant, variant))
		}
	})
	if d.Err() != nil {
		return nil
	}
	return ret
}

func readSized(d *bcs.Decoder, name string, dst []byte) {
	b := d.ReadBytes()
	if d.Err() != nil {
		return
	}
	if len(b) != len(dst) {
		d.SetErr(&InvalidLengthError{Type: name, Expected: len(dst), Actual: len(b)})
		return
	}
	copy(dst, b)
}

// SignedTransaction is a raw transaction with its authenticator. It is
// produced by the signer and never modified afterwards
type SignedTransaction struct {
	RawTxn        RawTransaction
	Authenticator TransactionAuthenticator
}

func (t *SignedTransaction) MarshalBCS(e *bcs.Encoder) {
	e.WriteValue(&t.RawTxn)
	e.WriteValue(t.Authenticator)
}

func (t *SignedTransaction) UnmarshalBCS(d *bcs.Decoder) {
	d.ReadValue(&t.RawTxn)
	t.Authenticator = ReadTransactionAuthenticator(d)
}

// Hash returns the transaction id: the hash of the signed transaction
// wrapped as a user transaction
func (t *SignedTransaction) Hash() (hasher.HashValue, error) {
	ret, err := hasher.Default().SumValue(
		TransactionTypeName,
		&UserTransaction{SignedTransaction: t},
	)
	if err != nil {
		return hasher.HashValue{}, fmt.Errorf("transaction hash: %w", err)
	}
	return ret, nil
}

// Hex returns the hex encoded canonical bytes, as accepted by submit
func (t *SignedTransaction) Hex() (string, error) {
	raw, err := bcs.Marshal(t)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// ParseSignedTransaction decodes a hex encoded signed transaction
func ParseSignedTransaction(s string) (*SignedTransaction, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("parse signed transaction: %w", err)
	}
	ret := &SignedTransaction{}
	if err := bcs.Unmarshal(raw, ret); err != nil {
		return nil, fmt.Errorf("parse signed transaction: %w", err)
	}
	return ret, nil
}

// UserTransaction is a signed transaction as the ledger records it
type UserTransaction struct {
	*SignedTransaction
}

func (t *UserTransaction) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(TransactionUser)
	e.WriteValue(t.SignedTransaction)
}
