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
)

// Metadata variant indices
const (
	MetadataUndefined         uint32 = 0
	MetadataGeneral           uint32 = 1
	MetadataTravelRule        uint32 = 2
	MetadataUnstructuredBytes uint32 = 3
)

// Version index shared by the general and travel rule metadata layouts
const metadataVersion0 uint32 = 0

// Metadata is attached to a payment as a script argument. It is one of
// UndefinedMetadata, GeneralMetadata, TravelRuleMetadata or
// UnstructuredBytesMetadata
type Metadata interface {
	bcs.Marshaler
	isMetadata()
}

type UndefinedMetadata struct{}

func (*UndefinedMetadata) isMetadata() {}

func (*UndefinedMetadata) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(MetadataUndefined)
}

// GeneralMetadata routes a payment between custodial sub-accounts. A nil
// field is absent
type GeneralMetadata struct {
	ToSubaddress    []byte
	FromSubaddress  []byte
	ReferencedEvent *uint64
}

// NewGeneralMetadata builds version 0 general metadata. Nil arguments are
// left absent
func NewGeneralMetadata(to, from *SubAddress, referencedEvent *uint64) *GeneralMetadata {
	ret := &GeneralMetadata{}
	if to != nil {
		ret.ToSubaddress = to.Bytes()
	}
	if from != nil {
		ret.FromSubaddress = from.Bytes()
	}
	if referencedEvent != nil {
		event := *referencedEvent
		ret.ReferencedEvent = &event
	}
	return ret
}

func (*GeneralMetadata) isMetadata() {}

func (m *GeneralMetadata) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(MetadataGeneral)
	e.WriteVariant(metadataVersion0)
	writeOptionalBytes(e, m.ToSubaddress)
	writeOptionalBytes(e, m.FromSubaddress)
	bcs.WriteOption(e, m.ReferencedEvent, (*bcs.Encoder).WriteU64)
}

// TravelRuleMetadata carries the off-chain reference id both parties of a
// dual attestation agree on
type TravelRuleMetadata struct {
	OffChainReferenceID *string
}

func (*TravelRuleMetadata) isMetadata() {}

func (m *TravelRuleMetadata) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(MetadataTravelRule)
	e.WriteVariant(metadataVersion0)
	bcs.WriteOption(e, m.OffChainReferenceID, (*bcs.Encoder).WriteString)
}

type UnstructuredBytesMetadata struct {
	Metadata []byte
}

func (*UnstructuredBytesMetadata) isMetadata() {}

func (m *UnstructuredBytesMetadata) MarshalBCS(e *bcs.Encoder) {
	e.WriteVariant(MetadataUnstructuredBytes)
	writeOptionalBytes(e, m.Metadata)
}

// ReadMetadata decodes one metadata value
func ReadMetadata(d *bcs.Decoder) Metadata {
	var ret Metadata
	d.Nested(func(d *bcs.Decoder) {
		variant := d.ReadVariant()
		if d.Err() != nil {
			return
		}
		switch variant {
		case MetadataUndefined:
			ret = &UndefinedMetadata{}
		case MetadataGeneral:
			if !readMetadataVersion(d) {
				return
			}
			ret = &GeneralMetadata{
				ToSubaddress:    readOptionalBytes(d),
				FromSubaddress:  readOptionalBytes(d),
				ReferencedEvent: bcs.ReadOption(d, (*bcs.Decoder).ReadU64),
			}
		case MetadataTravelRule:
			if !readMetadataVersion(d) {
				return
			}
			ret = &TravelRuleMetadata{
				OffChainReferenceID: bcs.ReadOption(d, (*bcs.Decoder).ReadString),
			}
		case MetadataUnstructuredBytes:
			ret = &UnstructuredBytesMetadata{Metadata: readOptionalBytes(d)}
		default:
			d.SetErr(fmt.Errorf("%w: metadata %d", bcs.ErrUnknownVariant, variant))
		}
	})
	if d.Err() != nil {
		return nil
	}
	return ret
}

// ParseMetadata decodes metadata bytes, requiring that all input is consumed
func ParseMetadata(data []byte) (Metadata, error) {
	d := bcs.NewDecoder(data)
	ret := ReadMetadata(d)
	if err := d.Finish(); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return ret, nil
}

func readMetadataVersion(d *bcs.Decoder) bool {
	version := d.ReadVariant()
	if d.Err() != nil {
		return false
	}
	if version != metadataVersion0 {
		d.SetErr(fmt.Errorf("%w: metadata version %d", bcs.ErrUnknownVariant, version))
		return false
	}
	return true
}

func writeOptionalBytes(e *bcs.Encoder, b []byte) {
	e.WriteOptionTag(b != nil)
	if b != nil {
		e.WriteBytes(b)
	}
}

func readOptionalBytes(d *bcs.Decoder) []byte {
	if !d.ReadOptionTag() {
		return nil
	}
	return d.ReadBytes()
}
