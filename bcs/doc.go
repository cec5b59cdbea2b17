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

// Package bcs implements the Binary Canonical Serialization format used for
// every hash, signature and wire payload of the Libra ledger.
//
// Each logical value has exactly one encoding:
//
//   - unsigned integers are fixed width and little-endian (u8, u16, u32, u64, u128)
//   - sequence and string lengths are ULEB128 prefixed and capped at 2^31-1
//   - enum variants are prefixed with a ULEB128 variant index
//   - optional values carry a single presence byte (0 absent, 1 present)
//   - fixed-size arrays have no prefix
//   - strings are length-prefixed UTF-8
//
// Encoding and decoding use a sticky error: after the first failure every
// further call is a no-op and the error is reported once by Bytes, Finish,
// Marshal or Unmarshal. Nested values go through WriteValue/ReadValue, which
// track container depth and fail with ErrContainerDepthExceeded past
// MaxContainerDepth.
//
// Types implement Marshaler and Unmarshaler by hand:
//
//	func (a *Foo) MarshalBCS(e *bcs.Encoder) {
//	    e.WriteU64(a.Count)
//	    e.WriteString(a.Name)
//	}
//
//	func (a *Foo) UnmarshalBCS(d *bcs.Decoder) {
//	    a.Count = d.ReadU64()
//	    a.Name = d.ReadString()
//	}
package bcs
