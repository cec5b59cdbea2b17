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

package ledgerstate_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/blinklabs-io/golibra/ledgerstate"
	"github.com/blinklabs-io/golibra/types"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonicSequenceAccepted(t *testing.T) {
	tracker := ledgerstate.NewTracker(types.ChainIDTestnet)
	rng := rand.New(rand.NewSource(3))
	var version, ts uint64
	for range 1000 {
		version += uint64(rng.Intn(3))
		ts += uint64(rng.Intn(3))
		obs := ledgerstate.Observation{Version: version, TimestampUsecs: ts}
		if rng.Intn(2) == 0 {
			obs.ChainID = types.ChainIDTestnet
		}
		require.NoError(t, tracker.Handle(obs))
	}
	assert.Equal(
		t,
		ledgerstate.State{ChainID: types.ChainIDTestnet, Version: version, TimestampUsecs: ts},
		tracker.State(),
	)
}

func TestStaleResponses(t *testing.T) {
	testDefs := []struct {
		name     string
		obs      ledgerstate.Observation
		expected ledgerstate.StaleReason
	}{
		{
			name:     "chain id mismatch",
			obs:      ledgerstate.Observation{ChainID: types.ChainIDMainnet, Version: 20, TimestampUsecs: 2000},
			expected: ledgerstate.ReasonChainIDMismatch,
		},
		{
			name:     "version regression",
			obs:      ledgerstate.Observation{ChainID: types.ChainIDTestnet, Version: 9, TimestampUsecs: 2000},
			expected: ledgerstate.ReasonVersionRegression,
		},
		{
			name:     "timestamp regression",
			obs:      ledgerstate.Observation{Version: 10, TimestampUsecs: 999},
			expected: ledgerstate.ReasonTimestampRegression,
		},
		{
			name:     "below minimum",
			obs:      ledgerstate.Observation{Version: 11, TimestampUsecs: 1001, MinTimestampUsecs: 1001},
			expected: ledgerstate.ReasonBelowMinimumTimestamp,
		},
	}
	for _, testDef := range testDefs {
		tracker := ledgerstate.NewTracker(types.ChainIDTestnet, ledgerstate.WithWaypoint(10, 1000))
		before := tracker.State()
		err := tracker.Handle(testDef.obs)
		require.ErrorIs(t, err, ledgerstate.ErrStaleResponse, testDef.name)
		var staleErr *ledgerstate.StaleResponseError
		require.True(t, errors.As(err, &staleErr), testDef.name)
		assert.Equal(t, testDef.expected, staleErr.Reason, testDef.name)
		assert.Equal(t, before, staleErr.Tracked, testDef.name)
		assert.Contains(t, err.Error(), testDef.expected.String(), testDef.name)
		// A rejected response leaves the tracker untouched
		assert.Equal(t, before, tracker.State(), testDef.name)
	}
}

func TestMinimumTimestampSatisfied(t *testing.T) {
	tracker := ledgerstate.NewTracker(types.ChainIDTestnet, ledgerstate.WithWaypoint(10, 1000))
	require.NoError(t, tracker.Validate(ledgerstate.Observation{
		Version:           10,
		TimestampUsecs:    1000,
		MinTimestampUsecs: 1000,
	}))
	// Validate alone never advances
	require.NoError(t, tracker.Validate(ledgerstate.Observation{Version: 50, TimestampUsecs: 5000}))
	assert.Equal(t, uint64(10), tracker.State().Version)
}

func TestFirstRegressionStopsSequence(t *testing.T) {
	tracker := ledgerstate.NewTracker(types.ChainIDDevnet)
	steps := []ledgerstate.Observation{
		{Version: 1, TimestampUsecs: 10},
		{Version: 2, TimestampUsecs: 20},
		{Version: 2, TimestampUsecs: 20},
		{Version: 1, TimestampUsecs: 30},
	}
	for i, step := range steps {
		err := tracker.Handle(step)
		if i < 3 {
			require.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ledgerstate.ErrStaleResponse)
	}
	assert.Equal(t, uint64(2), tracker.State().Version)
	assert.Equal(t, uint64(20), tracker.State().TimestampUsecs)
}

func TestStateCBOR(t *testing.T) {
	state := ledgerstate.State{
		ChainID:        types.ChainIDTesting,
		Version:        123456,
		TimestampUsecs: 1600000000000000,
	}
	data, err := cbor.Marshal(state)
	require.NoError(t, err)
	// Three element array
	assert.Equal(t, byte(0x83), data[0])
	var decoded ledgerstate.State
	require.NoError(t, cbor.Unmarshal(data, &decoded))
	assert.Equal(t, state, decoded)

	tracker := ledgerstate.NewTracker(decoded.ChainID, ledgerstate.WithState(decoded))
	assert.Equal(t, state, tracker.State())

	assert.Error(t, cbor.Unmarshal([]byte{0x82, 0x01, 0x02}, &decoded))
}
