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
	"strings"

	"github.com/blinklabs-io/golibra/bcs"
)

// TypeTag variant indices
const (
	TypeTagBool    uint32 = 0
	TypeTagU8      uint32 = 1
	TypeTagU64     uint32 = 2
	TypeTagU128    uint32 = 3
	TypeTagAddress uint32 = 4
	TypeTagSigner  uint32 = 5
	TypeTagVector  uint32 = 6
	TypeTagStruct  uint32 = 7
)

// TypeTag names a Move type in a script's type arguments. It is one of
// PrimitiveTag, VectorTag or StructTag
type TypeTag interface {
	bcs.Marshaler
	fmt.Stringer
	isTypeTag()
}

// PrimitiveTag is a type tag without parameters. Its value is the variant index
type PrimitiveTag uint32

const (
	BoolTag    = PrimitiveTag(TypeTagBool)
	U8Tag      = PrimitiveTag(TypeTagU8)
	U64Tag     = PrimitiveTag(TypeTagU64)
	U128Tag    = PrimitiveTag(TypeTagU128)
	AddressTag = PrimitiveTag(TypeTagAddress)
	SignerTag  = PrimitiveTag(TypeTagSigner)
)

func (PrimitiveTag) isTypeTag() {}

func (t PrimitiveTag) String() string {
	switch t {
	case BoolTag:
		return "bool"
	case U8Tag:
		return "u8"
	case U64Tag:
		return "u64"
	case U128Tag:
		return "u128"
	case AddressTag:
		return "address"
	case SignerTag:
		return "signer"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

func (t PrimitiveTag) MarshalBCS(e *bcs.Encoder) {
	if uint32(t) > TypeTagSigner {
		e.SetErr(fmt.Errorf("%w: primitive type tag %d", bcs.ErrUnknownVariant, uint32(t)))
		return
	}
	e.WriteVariant(uint32(t))
}

type VectorTag struct {
	Elem TypeTag
}

func (VectorTag) isTypeTag() {}

func (t VectorTag) String() string {
	return "vector<" + tagString(t.Elem) + ">"
}

func (t VectorTag) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(TypeTagVector)
	e.WriteValue(t.Elem)
}

// StructTag names a struct type published in a module
type StructTag struct {
	Address    AccountAddress
	Module     string
	Name       string
	TypeParams []TypeTag
}

// CurrencyTag returns the type tag of a currency published under CoreCodeAddress
func CurrencyTag(code string) StructTag {
	return StructTag{
		Address: CoreCodeAddress,
		Module:  code,
		Name:    code,
	}
}

func (StructTag) isTypeTag() {}

func (t StructTag) String() string {
	var sb strings.Builder
	sb.WriteString("0x" + t.Address.String())
	sb.WriteString("::" + t.Module)
	sb.WriteString("::" + t.Name)
	if len(t.TypeParams) > 0 {
		params := make([]string, len(t.TypeParams))
		for i, p := range t.TypeParams {
			params[i] = tagString(p)
		}
		sb.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	return sb.String()
}

func (t StructTag) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(TypeTagStruct)
	t.Address.MarshalBCS(e)
	e.WriteString(t.Module)
	e.WriteString(t.Name)
	bcs.WriteSeq(e, t.TypeParams, writeTypeTag)
}

func writeTypeTag(e *bcs.Encoder, t TypeTag) {
	e.WriteValue(t)
}

// ReadTypeTag decodes one type tag, counting it as a level of nesting
func ReadTypeTag(d *bcs.Decoder) TypeTag {
	var ret TypeTag
	d.Nested(func(d *bcs.Decoder) {
		ret = readTypeTagVariant(d)
	})
	if d.Err() != nil {
		return nil
	}
	return ret
}

func readTypeTagVariant(d *bcs.Decoder) TypeTag {
	variant := d.ReadVariant()
	if d.Err() != nil {
		return nil
	}
	switch variant {
	case TypeTagBool, TypeTagU8, TypeTagU64, TypeTagU128, TypeTagAddress, TypeTagSigner:
		return PrimitiveTag(variant)
	case TypeTagVector:
		return VectorTag{Elem: ReadTypeTag(d)}
	case TypeTagStruct:
		var t StructTag
		t.Address.UnmarshalBCS(d)
		t.Module = d.ReadString()
		t.Name = d.ReadString()
		t.TypeParams = bcs.ReadSeq(d, ReadTypeTag)
		return t
	default:
		d.SetErr(fmt.Errorf("%w: type tag %d", bcs.ErrUnknownVariant, variant))
		return nil
	}
}

func tagString(t TypeTag) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
