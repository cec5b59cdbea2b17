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

// Package ledgerstate keeps a client's view of the ledger consistent across
// RPC responses.
//
// A Tracker remembers the chain id, version and timestamp of the newest
// response it accepted and rejects any later response that would move the
// client backwards. Trackers are not safe for concurrent use; callers that
// share one must serialise Handle.
package ledgerstate

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/golibra/types"
)

var ErrStaleResponse = errors.New("stale response")

// StaleReason says which check rejected a response
type StaleReason int

const (
	ReasonChainIDMismatch StaleReason = iota + 1
	ReasonVersionRegression
	ReasonTimestampRegression
	ReasonBelowMinimumTimestamp
)

func (r StaleReason) String() string {
	switch r {
	case ReasonChainIDMismatch:
		return "chain id mismatch"
	case ReasonVersionRegression:
		return "version regression"
	case ReasonTimestampRegression:
		return "timestamp regression"
	case ReasonBelowMinimumTimestamp:
		return "timestamp below minimum"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// StaleResponseError is returned for a response older than, or from a
// different chain than, what the tracker has already seen. It matches
// ErrStaleResponse
type StaleResponseError struct {
	Reason   StaleReason
	Tracked  State
	Observed Observation
}

func (e *StaleResponseError) Error() string {
	switch e.Reason {
	case ReasonChainIDMismatch:
		return fmt.Sprintf(
			"stale response: %s: expected %d, got %d",
			e.Reason,
			e.Tracked.ChainID,
			e.Observed.ChainID,
		)
	case ReasonVersionRegression:
		return fmt.Sprintf(
			"stale response: %s: tracked %d, got %d",
			e.Reason,
			e.Tracked.Version,
			e.Observed.Version,
		)
	case ReasonTimestampRegression:
		return fmt.Sprintf(
			"stale response: %s: tracked %d, got %d",
			e.Reason,
			e.Tracked.TimestampUsecs,
			e.Observed.TimestampUsecs,
		)
	case ReasonBelowMinimumTimestamp:
		return fmt.Sprintf(
			"stale response: %s: tracked %d, minimum %d",
			e.Reason,
			e.Tracked.TimestampUsecs,
			e.Observed.MinTimestampUsecs,
		)
	default:
		return "stale response: " + e.Reason.String()
	}
}

func (e *StaleResponseError) Is(target error) bool {
	return target == ErrStaleResponse
}

// Observation is the ledger position reported by one response
type Observation struct {
	// ChainID is zero when the response did not report one
	ChainID        types.ChainID
	Version        uint64
	TimestampUsecs uint64
	// MinTimestampUsecs is zero when the caller has no minimum
	MinTimestampUsecs uint64
}

type Config struct {
	Waypoint State
}

// TrackerOptionFunc is a function that modifies a Config.
type TrackerOptionFunc func(*Config)

// NewConfig creates a new Config with default values, applying any provided option functions.
func NewConfig(options ...TrackerOptionFunc) Config {
	c := Config{}
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithWaypoint starts the tracker at a known version and timestamp instead
// of the genesis position
func WithWaypoint(version uint64, timestampUsecs uint64) TrackerOptionFunc {
	return func(c *Config) {
		c.Waypoint.Version = version
		c.Waypoint.TimestampUsecs = timestampUsecs
	}
}

// WithState starts the tracker from a previously saved state. The chain id
// of the state is ignored in favour of the one passed to NewTracker
func WithState(state State) TrackerOptionFunc {
	return WithWaypoint(state.Version, state.TimestampUsecs)
}

type Tracker struct {
	state State
}

func NewTracker(chainID types.ChainID, options ...TrackerOptionFunc) *Tracker {
	cfg := NewConfig(options...)
	return &Tracker{
		state: State{
			ChainID:        chainID,
			Version:        cfg.Waypoint.Version,
			TimestampUsecs: cfg.Waypoint.TimestampUsecs,
		},
	}
}

// State returns a copy of the tracked state
func (t *Tracker) State() State {
	return t.state
}

// Validate checks obs against the tracked state without changing it
func (t *Tracker) Validate(obs Observation) error {
	var reason StaleReason
	switch {
	case obs.ChainID != 0 && obs.ChainID != t.state.ChainID:
		reason = ReasonChainIDMismatch
	case obs.Version < t.state.Version:
		reason = ReasonVersionRegression
	case obs.TimestampUsecs < t.state.TimestampUsecs:
		reason = ReasonTimestampRegression
	case obs.MinTimestampUsecs != 0 && t.state.TimestampUsecs < obs.MinTimestampUsecs:
		reason = ReasonBelowMinimumTimestamp
	default:
		return nil
	}
	return &StaleResponseError{
		Reason:   reason,
		Tracked:  t.state,
		Observed: obs,
	}
}

// Update moves the tracked position. Callers validate first
func (t *Tracker) Update(version uint64, timestampUsecs uint64) {
	t.state.Version = version
	t.state.TimestampUsecs = timestampUsecs
}

// Handle validates obs and, if it is accepted, advances to it
func (t *Tracker) Handle(obs Observation) error {
	if err := t.Validate(obs); err != nil {
		return err
	}
	t.Update(obs.Version, obs.TimestampUsecs)
	return nil
}
