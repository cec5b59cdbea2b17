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

package libra

import (
	"log/slog"
	"time"

	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/ledgerstate"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithURL specifies the full node JSON-RPC endpoint. The network's default URL is used if none is provided
func WithURL(url string) ClientOptionFunc {
	return func(c *Client) {
		c.url = url
	}
}

// WithNetwork specifies the network. Responses from any other chain are rejected
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = network
	}
}

// WithLogger specifies the logger. slog.Default() is used if none is provided
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPollInterval specifies how often the wait functions query the node
func WithPollInterval(interval time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

// WithWaypoint starts ledger tracking at a known version and timestamp
func WithWaypoint(version uint64, timestampUsecs uint64) ClientOptionFunc {
	return func(c *Client) {
		c.trackerOptions = append(
			c.trackerOptions,
			ledgerstate.WithWaypoint(version, timestampUsecs),
		)
	}
}

// WithState resumes ledger tracking from a saved state. The state must have
// been saved on the same chain as the client's network
func WithState(state ledgerstate.State) ClientOptionFunc {
	return func(c *Client) {
		c.stateChainID = state.ChainID
		c.trackerOptions = append(c.trackerOptions, ledgerstate.WithState(state))
	}
}

// WithRPCOptions passes options through to the underlying JSON-RPC client
func WithRPCOptions(options ...jsonrpc.ClientOptionFunc) ClientOptionFunc {
	return func(c *Client) {
		c.rpcOptions = append(c.rpcOptions, options...)
	}
}
