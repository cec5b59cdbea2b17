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

// Package libra is a client for a Libra full node. It wraps the JSON-RPC
// client so that every response is checked against the ledger position seen
// so far, and it waits for submitted transactions to be executed.
package libra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/ledgerstate"
	"github.com/blinklabs-io/golibra/types"
)

var (
	ErrMissingURL           = errors.New("no full node URL configured")
	ErrInvalidNetwork       = errors.New("invalid network")
	ErrStateChainIDMismatch = errors.New("saved state belongs to a different chain")
)

// Client talks to a single full node and tracks the ledger position it reports
type Client struct {
	url            string
	network        Network
	logger         *slog.Logger
	pollInterval   time.Duration
	stateChainID   types.ChainID
	trackerOptions []ledgerstate.TrackerOptionFunc
	rpcOptions     []jsonrpc.ClientOptionFunc
	rpc            *jsonrpc.Client
	trackerMutex   sync.Mutex
	tracker        *ledgerstate.Tracker
}

// NewClient returns a new Client object with the specified options. A network must be provided
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		pollInterval: ledgerstate.DefaultPollInterval,
	}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if !c.network.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidNetwork, c.network)
	}
	if c.stateChainID != 0 && c.stateChainID != c.network.ChainID {
		return nil, fmt.Errorf(
			"%w: state chain %s, network %s",
			ErrStateChainIDMismatch,
			c.stateChainID,
			c.network.ChainID,
		)
	}
	if c.url == "" {
		c.url = c.network.DefaultURL
	}
	if c.url == "" {
		return nil, ErrMissingURL
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	rpcOptions := append(
		[]jsonrpc.ClientOptionFunc{jsonrpc.WithLogger(c.logger)},
		c.rpcOptions...,
	)
	c.rpc = jsonrpc.New(c.url, rpcOptions...)
	c.tracker = ledgerstate.NewTracker(c.network.ChainID, c.trackerOptions...)
	return c, nil
}

// New is an alias to NewClient
func New(options ...ClientOptionFunc) (*Client, error) {
	return NewClient(options...)
}

// Network returns the network the client was configured for
func (c *Client) Network() Network {
	return c.network
}

// RPC returns the underlying JSON-RPC client. Responses obtained through it
// bypass ledger tracking
func (c *Client) RPC() *jsonrpc.Client {
	return c.rpc
}

// State returns the most recent ledger position accepted by the client
func (c *Client) State() ledgerstate.State {
	c.trackerMutex.Lock()
	defer c.trackerMutex.Unlock()
	return c.tracker.State()
}

// handleResponse passes the ledger position of a response through the tracker.
// A nil info means no envelope was received and there is nothing to check
func (c *Client) handleResponse(method string, info *jsonrpc.LedgerInfo) error {
	if info == nil {
		return nil
	}
	obs := ledgerstate.Observation{
		ChainID:        types.ChainID(info.ChainID),
		Version:        info.Version,
		TimestampUsecs: info.TimestampUsecs,
	}
	c.trackerMutex.Lock()
	err := c.tracker.Handle(obs)
	c.trackerMutex.Unlock()
	if err != nil {
		c.logger.Warn(
			"rejected stale response",
			"component", "libra",
			"method", method,
			"url", c.url,
			"error", err,
		)
		return fmt.Errorf("%s: %w", method, err)
	}
	c.logger.Debug(
		"accepted response",
		"component", "libra",
		"method", method,
		"ledger_version", info.Version,
		"ledger_timestamp_usecs", info.TimestampUsecs,
	)
	return nil
}

// GetMetadata returns ledger metadata at version, or at the latest version when version is nil
func (c *Client) GetMetadata(ctx context.Context, version *uint64) (*jsonrpc.MetadataView, error) {
	ret, info, err := c.rpc.GetMetadata(ctx, version)
	if trackErr := c.handleResponse(jsonrpc.MethodGetMetadata, info); trackErr != nil {
		return nil, trackErr
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GetAccount returns nil without error for an account that does not exist
func (c *Client) GetAccount(ctx context.Context, address types.AccountAddress) (*jsonrpc.AccountView, error) {
	ret, info, err := c.rpc.GetAccount(ctx, address)
	if trackErr := c.handleResponse(jsonrpc.MethodGetAccount, info); trackErr != nil {
		return nil, trackErr
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GetAccountTransaction returns nil without error when the account has no
// transaction with that sequence number yet
func (c *Client) GetAccountTransaction(
	ctx context.Context,
	address types.AccountAddress,
	sequenceNumber uint64,
	includeEvents bool,
) (*jsonrpc.TransactionView, error) {
	ret, _, err := c.getAccountTransaction(ctx, address, sequenceNumber, includeEvents)
	return ret, err
}

func (c *Client) getAccountTransaction(
	ctx context.Context,
	address types.AccountAddress,
	sequenceNumber uint64,
	includeEvents bool,
) (*jsonrpc.TransactionView, *jsonrpc.LedgerInfo, error) {
	ret, info, err := c.rpc.GetAccountTransaction(ctx, address, sequenceNumber, includeEvents)
	if trackErr := c.handleResponse(jsonrpc.MethodGetAccountTransaction, info); trackErr != nil {
		return nil, nil, trackErr
	}
	if err != nil {
		return nil, nil, err
	}
	return ret, info, nil
}

func (c *Client) GetTransactions(
	ctx context.Context,
	fromVersion uint64,
	limit uint64,
	includeEvents bool,
) ([]jsonrpc.TransactionView, error) {
	ret, info, err := c.rpc.GetTransactions(ctx, fromVersion, limit, includeEvents)
	if trackErr := c.handleResponse(jsonrpc.MethodGetTransactions, info); trackErr != nil {
		return nil, trackErr
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) GetEvents(ctx context.Context, key string, start uint64, limit uint64) ([]jsonrpc.EventView, error) {
	ret, info, err := c.rpc.GetEvents(ctx, key, start, limit)
	if trackErr := c.handleResponse(jsonrpc.MethodGetEvents, info); trackErr != nil {
		return nil, trackErr
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) GetCurrencies(ctx context.Context) ([]jsonrpc.CurrencyInfoView, error) {
	ret, info, err := c.rpc.GetCurrencies(ctx)
	if trackErr := c.handleResponse(jsonrpc.MethodGetCurrencies, info); trackErr != nil {
		return nil, trackErr
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Submit sends a signed transaction to the node. Use WaitForSignedTransaction
// to learn whether it was executed
func (c *Client) Submit(ctx context.Context, signed *types.SignedTransaction) error {
	info, err := c.rpc.Submit(ctx, signed)
	if trackErr := c.handleResponse(jsonrpc.MethodSubmit, info); trackErr != nil {
		return trackErr
	}
	return err
}
