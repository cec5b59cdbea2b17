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

package jsonrpc

import (
	"context"

	"github.com/blinklabs-io/golibra/types"
)

// GetMetadata returns ledger metadata at version, or at the latest version
// when version is nil
func (c *Client) GetMetadata(ctx context.Context, version *uint64) (*MetadataView, *LedgerInfo, error) {
	var params []any
	if version != nil {
		params = append(params, *version)
	}
	var ret MetadataView
	info, err := c.Call(ctx, MethodGetMetadata, &ret, params...)
	if err != nil {
		return nil, info, err
	}
	return &ret, info, nil
}

// GetAccount returns nil without error for an account that does not exist
func (c *Client) GetAccount(ctx context.Context, address types.AccountAddress) (*AccountView, *LedgerInfo, error) {
	var ret *AccountView
	info, err := c.Call(ctx, MethodGetAccount, &ret, address.String())
	return ret, info, err
}

// GetAccountTransaction returns nil without error when the account has no
// transaction with that sequence number yet
func (c *Client) GetAccountTransaction(
	ctx context.Context,
	address types.AccountAddress,
	sequenceNumber uint64,
	includeEvents bool,
) (*TransactionView, *LedgerInfo, error) {
	var ret *TransactionView
	info, err := c.Call(
		ctx,
		MethodGetAccountTransaction,
		&ret,
		address.String(),
		sequenceNumber,
		includeEvents,
	)
	return ret, info, err
}

func (c *Client) GetTransactions(
	ctx context.Context,
	fromVersion uint64,
	limit uint64,
	includeEvents bool,
) ([]TransactionView, *LedgerInfo, error) {
	var ret []TransactionView
	info, err := c.Call(ctx, MethodGetTransactions, &ret, fromVersion, limit, includeEvents)
	return ret, info, err
}

func (c *Client) GetEvents(
	ctx context.Context,
	key string,
	start uint64,
	limit uint64,
) ([]EventView, *LedgerInfo, error) {
	var ret []EventView
	info, err := c.Call(ctx, MethodGetEvents, &ret, key, start, limit)
	return ret, info, err
}

func (c *Client) GetCurrencies(ctx context.Context) ([]CurrencyInfoView, *LedgerInfo, error) {
	var ret []CurrencyInfoView
	info, err := c.Call(ctx, MethodGetCurrencies, &ret)
	return ret, info, err
}

// Submit sends a signed transaction to the mempool. Success means the node
// accepted it, not that it was executed
func (c *Client) Submit(ctx context.Context, signed *types.SignedTransaction) (*LedgerInfo, error) {
	data, err := signed.Hex()
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, MethodSubmit, nil, data)
}
