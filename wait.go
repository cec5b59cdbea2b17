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
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/blinklabs-io/golibra/jsonrpc"
	"github.com/blinklabs-io/golibra/ledgerstate"
	"github.com/blinklabs-io/golibra/types"
)

var (
	ErrTransactionHashMismatch = errors.New("transaction hash mismatch")
	ErrTransactionExpired      = errors.New("transaction expired")
)

// TransactionExecutionFailedError is returned when a transaction was
// committed but its VM status is not executed
type TransactionExecutionFailedError struct {
	Hash     string
	VMStatus jsonrpc.VMStatusView
}

func (e *TransactionExecutionFailedError) Error() string {
	ret := fmt.Sprintf("transaction %s execution failed: %s", e.Hash, e.VMStatus.Type)
	if e.VMStatus.Type == jsonrpc.VMStatusMoveAbort {
		ret += fmt.Sprintf(" (location %s, abort code %d)", e.VMStatus.Location, e.VMStatus.AbortCode)
	}
	return ret
}

func (c *Client) pollConfig(timeout time.Duration) ledgerstate.PollConfig {
	return ledgerstate.PollConfig{
		Interval: c.pollInterval,
		Timeout:  timeout,
		Logger:   c.logger,
	}
}

// WaitForTransaction polls until the account's transaction with the given
// sequence number is on chain. found is false if the timeout elapsed first
func (c *Client) WaitForTransaction(
	ctx context.Context,
	address types.AccountAddress,
	sequenceNumber uint64,
	timeout time.Duration,
) (*jsonrpc.TransactionView, bool, error) {
	return ledgerstate.Poll(
		ctx,
		c.pollConfig(timeout),
		func(ctx context.Context) (*jsonrpc.TransactionView, bool, error) {
			txn, err := c.GetAccountTransaction(ctx, address, sequenceNumber, true)
			if err != nil {
				return nil, false, err
			}
			return txn, txn != nil, nil
		},
	)
}

// WaitForSignedTransaction waits for signed to be committed and checks that
// the committed transaction is the one that was signed and that it executed
// successfully. It gives up early with ErrTransactionExpired once the ledger
// is past the transaction's expiration time
func (c *Client) WaitForSignedTransaction(
	ctx context.Context,
	signed *types.SignedTransaction,
	timeout time.Duration,
) (*jsonrpc.TransactionView, bool, error) {
	hash, err := signed.Hash()
	if err != nil {
		return nil, false, err
	}
	expiresAt := expirationUsecs(signed.RawTxn.ExpirationTimestampSecs)
	txn, found, err := ledgerstate.Poll(
		ctx,
		c.pollConfig(timeout),
		func(ctx context.Context) (*jsonrpc.TransactionView, bool, error) {
			txn, info, err := c.getAccountTransaction(
				ctx,
				signed.RawTxn.Sender,
				signed.RawTxn.SequenceNumber,
				true,
			)
			if err != nil {
				return nil, false, err
			}
			if txn != nil {
				return txn, true, nil
			}
			if info != nil && info.TimestampUsecs > expiresAt {
				return nil, false, fmt.Errorf(
					"%w: %s expired at %d, ledger is at %d",
					ErrTransactionExpired,
					hash,
					expiresAt,
					info.TimestampUsecs,
				)
			}
			return nil, false, nil
		},
	)
	if err != nil || !found {
		return txn, found, err
	}
	if !strings.EqualFold(txn.Hash, hash.String()) {
		return txn, true, fmt.Errorf(
			"%w: expected %s, got %s",
			ErrTransactionHashMismatch,
			hash,
			txn.Hash,
		)
	}
	if txn.VMStatus.Type != jsonrpc.VMStatusExecuted {
		return txn, true, &TransactionExecutionFailedError{
			Hash:     txn.Hash,
			VMStatus: txn.VMStatus,
		}
	}
	return txn, true, nil
}

func expirationUsecs(secs uint64) uint64 {
	if secs > math.MaxUint64/1_000_000 {
		return math.MaxUint64
	}
	return secs * 1_000_000
}
