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
	"fmt"

	"github.com/blinklabs-io/golibra/bcs"
	"github.com/holiman/uint256"
)

// TransactionArgument variant indices
const (
	ArgumentU8       uint32 = 0
	ArgumentU64      uint32 = 1
	ArgumentU128     uint32 = 2
	ArgumentAddress  uint32 = 3
	ArgumentU8Vector uint32 = 4
	ArgumentBool     uint32 = 5
)

// TransactionArgument is a script argument. It is one of U8Argument,
// U64Argument, U128Argument, AddressArgument, U8VectorArgument or BoolArgument
type TransactionArgument interface {
	bcs.Marshaler
	isTransactionArgument()
}

type U8Argument uint8

func (U8Argument) isTransactionArgument() {}

func (a U8Argument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentU8)
	e.WriteU8(uint8(a))
}

type U64Argument uint64

func (U64Argument) isTransactionArgument() {}

func (a U64Argument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentU64)
	e.WriteU64(uint64(a))
}

type U128Argument struct {
	Value *uint256.Int
}

func (U128Argument) isTransactionArgument() {}

func (a U128Argument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentU128)
	e.WriteU128(a.Value)
}

type AddressArgument AccountAddress

func (AddressArgument) isTransactionArgument() {}

func (a AddressArgument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentAddress)
	e.WriteFixedBytes(a[:])
}

type U8VectorArgument []byte

func (U8VectorArgument) isTransactionArgument() {}

func (a U8VectorArgument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentU8Vector)
	e.WriteBytes(a)
}

type BoolArgument bool

func (BoolArgument) isTransactionArgument() {}

func (a BoolArgument) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(ArgumentBool)
	e.WriteBool(bool(a))
}

func writeArgument(e *bcs.Encoder, a TransactionArgument) {
	e.WriteValue(a)
}

// ReadTransactionArgument decodes one script argument
func ReadTransactionArgument(d *bcs.Decoder) TransactionArgument {
	var ret TransactionArgument
	d.Nested(func(d *bcs.Decoder) {
		variant := d.ReadVariant()
		if d.Err() != nil {
			return
		}
		switch variant {
		case ArgumentU8:
			ret = U8Argument(d.ReadU8())
		case ArgumentU64:
			ret = U64Argument(d.ReadU64())
		case ArgumentU128:
			ret = U128Argument{Value: d.ReadU128()}
		case ArgumentAddress:
			var addr AccountAddress
			addr.UnmarshalBCS(d)
			ret = AddressArgument(addr)
		case ArgumentU8Vector:
			ret = U8VectorArgument(d.ReadBytes())
		case ArgumentBool:
			ret = BoolArgument(d.ReadBool())
		default:
			d.SetErr(fmt.Errorf("%w: transaction argument %d", bcs.ErrUnknownVariant, variant))
		}
	})
	if d.Err() != nil {
		return nil
	}
	return ret
}
