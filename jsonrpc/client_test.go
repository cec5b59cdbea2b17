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

package jsonrpc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/blinklabs-io/golibra/internal/test"
	"github.com/blinklabs-io/golibra/internal/test/rpcmock"
	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func runConversation(
	t *testing.T,
	conversation []rpcmock.ConversationEntry,
	fn func(t *testing.T, client *jsonrpc.Client),
) {
	defer goleak.VerifyNone(t, rpcmock.LeakOptions()...)
	server := rpcmock.NewServer(conversation)
	client := jsonrpc.New(server.URL, jsonrpc.WithTimeout(5*time.Second))
	fn(t, client)
	server.Close()
	require.NoError(t, server.Err())
	assert.Equal(t, 0, server.Remaining(), "not all responses were served")
}

func TestGetMetadata(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetMetadata,
				Params: []any{},
				Result: map[string]any{
					"version":   rpcmock.MockVersion,
					"timestamp": rpcmock.MockTimestampUsecs,
					"chain_id":  rpcmock.MockChainID,
				},
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			meta, info, err := client.GetMetadata(context.Background(), nil)
			require.NoError(t, err)
			assert.Equal(t, rpcmock.MockVersion, meta.Version)
			assert.Equal(t, rpcmock.MockTimestampUsecs, meta.Timestamp)
			assert.Equal(t, rpcmock.MockChainID, meta.ChainID)
			require.NotNil(t, info)
			assert.Equal(
				t,
				jsonrpc.LedgerInfo{
					ChainID:        rpcmock.MockChainID,
					Version:        rpcmock.MockVersion,
					TimestampUsecs: rpcmock.MockTimestampUsecs,
				},
				*info,
			)
		},
	)
}

func TestGetMetadataAtVersion(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetMetadata,
				Params: []any{10},
				Result: map[string]any{"version": 10, "timestamp": 5, "chain_id": 2},
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			version := uint64(10)
			meta, _, err := client.GetMetadata(context.Background(), &version)
			require.NoError(t, err)
			assert.Equal(t, uint64(10), meta.Version)
		},
	)
}

func TestGetAccount(t *testing.T) {
	addr := test.AccountAddress(test.SampleSender)
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetAccount,
				Params: []any{test.SampleSender},
				Result: map[string]any{
					"address":         test.SampleSender,
					"sequence_number": 42,
					"balances": []any{
						map[string]any{"amount": 1000, "currency": "LBR"},
						map[string]any{"amount": 7, "currency": "Coin1"},
					},
					"role": map[string]any{"type": "parent_vasp", "human_name": "vasp"},
				},
				Ledger: rpcmock.MockLedger,
			},
			{
				Method: jsonrpc.MethodGetAccount,
				Params: []any{test.SampleSender},
				Result: nil,
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			account, _, err := client.GetAccount(context.Background(), addr)
			require.NoError(t, err)
			require.NotNil(t, account)
			assert.Equal(t, uint64(42), account.SequenceNumber)
			assert.Equal(t, uint64(1000), account.Balance("LBR"))
			assert.Equal(t, uint64(7), account.Balance("Coin1"))
			assert.Equal(t, uint64(0), account.Balance("Coin2"))
			assert.Equal(t, "parent_vasp", account.Role.Type)

			account, info, err := client.GetAccount(context.Background(), addr)
			require.NoError(t, err)
			assert.Nil(t, account)
			assert.NotNil(t, info)
		},
	)
}

func TestGetAccountTransaction(t *testing.T) {
	addr := test.AccountAddress(test.SampleSender)
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetAccountTransaction,
				Params: []any{test.SampleSender, 42, true},
				Result: nil,
				Ledger: rpcmock.MockLedger,
			},
			{
				Method: jsonrpc.MethodGetAccountTransaction,
				Params: []any{test.SampleSender, 42, true},
				Result: map[string]any{
					"version": 1001,
					"hash":    test.SampleTransactionID,
					"transaction": map[string]any{
						"type":            jsonrpc.TransactionTypeUser,
						"sender":          test.SampleSender,
						"sequence_number": 42,
					},
					"events":    []any{},
					"vm_status": map[string]any{"type": jsonrpc.VMStatusExecuted},
					"gas_used":  17,
				},
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			txn, _, err := client.GetAccountTransaction(context.Background(), addr, 42, true)
			require.NoError(t, err)
			assert.Nil(t, txn)

			txn, _, err = client.GetAccountTransaction(context.Background(), addr, 42, true)
			require.NoError(t, err)
			require.NotNil(t, txn)
			assert.Equal(t, uint64(1001), txn.Version)
			assert.Equal(t, test.SampleTransactionID, txn.Hash)
			assert.Equal(t, jsonrpc.VMStatusExecuted, txn.VMStatus.Type)
			assert.Equal(t, uint64(42), txn.Transaction.SequenceNumber)
		},
	)
}

func TestListMethods(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetTransactions,
				Params: []any{100, 2, false},
				Result: []any{
					map[string]any{"version": 100, "transaction": map[string]any{"type": "blockmetadata"}},
					map[string]any{"version": 101, "transaction": map[string]any{"type": "user"}},
				},
				Ledger: rpcmock.MockLedger,
			},
			{
				Method: jsonrpc.MethodGetEvents,
				Params: []any{"00000000000000001668f6be25668c1a17cd8caf6b8d2f25", 0, 10},
				Result: []any{
					map[string]any{
						"key":                 "00000000000000001668f6be25668c1a17cd8caf6b8d2f25",
						"sequence_number":     0,
						"transaction_version": 100,
						"data": map[string]any{
							"type":   "sentpayment",
							"amount": map[string]any{"amount": 5, "currency": "LBR"},
						},
					},
				},
				Ledger: rpcmock.MockLedger,
			},
			{
				Method: jsonrpc.MethodGetCurrencies,
				Params: []any{},
				Result: []any{
					map[string]any{"code": "LBR", "scaling_factor": 1000000, "fractional_part": 1000},
				},
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			ctx := context.Background()
			txns, _, err := client.GetTransactions(ctx, 100, 2, false)
			require.NoError(t, err)
			require.Len(t, txns, 2)
			assert.Equal(t, jsonrpc.TransactionTypeBlockMetadata, txns[0].Transaction.Type)
			assert.Equal(t, uint64(101), txns[1].Version)

			events, _, err := client.GetEvents(ctx, "00000000000000001668f6be25668c1a17cd8caf6b8d2f25", 0, 10)
			require.NoError(t, err)
			require.Len(t, events, 1)
			require.NotNil(t, events[0].Data.Amount)
			assert.Equal(t, uint64(5), events[0].Data.Amount.Amount)

			currencies, _, err := client.GetCurrencies(ctx)
			require.NoError(t, err)
			require.Len(t, currencies, 1)
			assert.Equal(t, "LBR", currencies[0].Code)
			assert.Equal(t, uint64(1000000), currencies[0].ScalingFactor)
		},
	)
}

func TestSubmit(t *testing.T) {
	signed, err := types.ParseSignedTransaction(test.SampleSignedTxnBCS)
	require.NoError(t, err)
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodSubmit,
				Params: []any{test.SampleSignedTxnBCS},
				Result: nil,
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			info, err := client.Submit(context.Background(), signed)
			require.NoError(t, err)
			assert.Equal(t, rpcmock.MockVersion, info.Version)
		},
	)
}

func TestServerError(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodSubmit,
				Error: &rpcmock.ErrorObject{
					Code:    jsonrpc.CodeVMValidationError,
					Message: "Server error: VM Validation error: SEQUENCE_NUMBER_TOO_OLD",
					Data:    map[string]any{"major_status": 3},
				},
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			info, err := client.Call(context.Background(), jsonrpc.MethodSubmit, nil, "00")
			require.Error(t, err)
			var rpcErr *jsonrpc.Error
			require.True(t, errors.As(err, &rpcErr))
			assert.Equal(t, jsonrpc.CodeVMValidationError, rpcErr.Code)
			assert.Equal(t, jsonrpc.MethodSubmit, rpcErr.Method)
			assert.JSONEq(t, `{"major_status":3}`, string(rpcErr.Data))
			assert.Contains(t, rpcErr.Error(), "SEQUENCE_NUMBER_TOO_OLD")
			// The ledger position is still reported alongside the error
			require.NotNil(t, info)
			assert.Equal(t, rpcmock.MockVersion, info.Version)
		},
	)
}

func TestHTTPError(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method:     jsonrpc.MethodGetCurrencies,
				StatusCode: http.StatusServiceUnavailable,
				RawBody:    "upstream unavailable",
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			_, info, err := client.GetCurrencies(context.Background())
			assert.Nil(t, info)
			var httpErr *jsonrpc.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
			assert.Equal(t, "upstream unavailable", httpErr.Body)
			assert.Equal(t, jsonrpc.MethodGetCurrencies, httpErr.Method)
		},
	)
}

func TestResponseIDMismatch(t *testing.T) {
	wrongID := uint64(999999)
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method:     jsonrpc.MethodGetCurrencies,
				Result:     []any{},
				Ledger:     rpcmock.MockLedger,
				ResponseID: &wrongID,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			_, info, err := client.GetCurrencies(context.Background())
			assert.Nil(t, info)
			assert.ErrorIs(t, err, jsonrpc.ErrInvalidResponse)
		},
	)
}

func TestMalformedResult(t *testing.T) {
	runConversation(
		t,
		[]rpcmock.ConversationEntry{
			{
				Method: jsonrpc.MethodGetCurrencies,
				Result: "not a list",
				Ledger: rpcmock.MockLedger,
			},
		},
		func(t *testing.T, client *jsonrpc.Client) {
			_, info, err := client.GetCurrencies(context.Background())
			assert.ErrorIs(t, err, jsonrpc.ErrInvalidResponse)
			assert.NotNil(t, info)
		},
	)
}

func TestHeadersAndCancel(t *testing.T) {
	defer goleak.VerifyNone(t, rpcmock.LeakOptions()...)
	server := rpcmock.NewServer(nil)
	defer server.Close()
	client := jsonrpc.New(server.URL, jsonrpc.WithHeader("X-Client", "test"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := client.GetCurrencies(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, server.URL, client.URL())
	assert.Empty(t, server.Methods())
}
