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

package ledgerstate

import (
	"fmt"
	"sync"

	"github.com/blinklabs-io/golibra/types"
	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode  _cbor.EncMode
	cachedDecMode  _cbor.DecMode
	cachedModeErr  error
	cachedModeOnce sync.Once
)

func getModes() (_cbor.EncMode, _cbor.DecMode, error) {
	cachedModeOnce.Do(func() {
		cachedEncMode, cachedModeErr = _cbor.CoreDetEncOptions().EncMode()
		if cachedModeErr != nil {
			return
		}
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
		}
		cachedDecMode, cachedModeErr = decOptions.DecMode()
	})
	return cachedEncMode, cachedDecMode, cachedModeErr
}

// State is the tracked ledger position
type State struct {
	ChainID        types.ChainID `json:"chain_id"`
	Version        uint64        `json:"version"`
	TimestampUsecs uint64        `json:"timestamp_usecs"`
}

// stateArray is the CBOR form of State: [chain_id, version, timestamp_usecs]
type stateArray struct {
	_              struct{} `cbor:",toarray"`
	ChainID        uint8
	Version        uint64
	TimestampUsecs uint64
}

func (s State) MarshalCBOR() ([]byte, error) {
	em, _, err := getModes()
	if err != nil {
		return nil, err
	}
	return em.Marshal(stateArray{
		ChainID:        uint8(s.ChainID),
		Version:        s.Version,
		TimestampUsecs: s.TimestampUsecs,
	})
}

func (s *State) UnmarshalCBOR(data []byte) error {
	_, dm, err := getModes()
	if err != nil {
		return err
	}
	var tmp stateArray
	if err := dm.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("decode ledger state: %w", err)
	}
	s.ChainID = types.ChainID(tmp.ChainID)
	s.Version = tmp.Version
	s.TimestampUsecs = tmp.TimestampUsecs
	return nil
}
