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

// Transaction and VM status type names
const (
	TransactionTypeUser          = "user"
	TransactionTypeBlockMetadata = "blockmetadata"
	TransactionTypeWriteSet      = "writeset"

	VMStatusExecuted           = "executed"
	VMStatusOutOfGas           = "out_of_gas"
	VMStatusMoveAbort          = "move_abort"
	VMStatusExecutionFailure   = "execution_failure"
	VMStatusMiscellaneousError = "miscellaneous_error"
)

type MetadataView struct {
	Version                 uint64   `json:"version"`
	Timestamp               uint64   `json:"timestamp"`
	ChainID                 uint8    `json:"chain_id"`
	ScriptHashAllowList     []string `json:"script_hash_allow_list,omitempty"`
	ModulePublishingAllowed *bool    `json:"module_publishing_allowed,omitempty"`
	LibraVersion            *uint64  `json:"libra_version,omitempty"`
	DualAttestationLimit    *uint64  `json:"dual_attestation_limit,omitempty"`
	AccumulatorRootHash     string   `json:"accumulator_root_hash,omitempty"`
}

type AmountView struct {
	Amount   uint64 `json:"amount"`
	Currency string `json:"currency"`
}

type AccountRoleView struct {
	Type                           string       `json:"type"`
	ParentVASPAddress              string       `json:"parent_vasp_address,omitempty"`
	HumanName                      string       `json:"human_name,omitempty"`
	BaseURL                        string       `json:"base_url,omitempty"`
	ExpirationTimeSecs             uint64       `json:"expiration_time,omitempty"`
	ComplianceKey                  string       `json:"compliance_key,omitempty"`
	NumChildren                    uint64       `json:"num_children,omitempty"`
	ComplianceKeyRotationEventsKey string       `json:"compliance_key_rotation_events_key,omitempty"`
	BaseURLRotationEventsKey       string       `json:"base_url_rotation_events_key,omitempty"`
	ReceivedMintEventsKey          string       `json:"received_mint_events_key,omitempty"`
	PreburnBalances                []AmountView `json:"preburn_balances,omitempty"`
}

type AccountView struct {
	Address                        string          `json:"address"`
	Balances                       []AmountView    `json:"balances"`
	SequenceNumber                 uint64          `json:"sequence_number"`
	AuthenticationKey              string          `json:"authentication_key"`
	SentEventsKey                  string          `json:"sent_events_key"`
	ReceivedEventsKey              string          `json:"received_events_key"`
	DelegatedKeyRotationCapability bool            `json:"delegated_key_rotation_capability"`
	DelegatedWithdrawalCapability  bool            `json:"delegated_withdrawal_capability"`
	IsFrozen                       bool            `json:"is_frozen"`
	Role                           AccountRoleView `json:"role"`
}

// Balance returns the balance held in currency, or zero
func (a *AccountView) Balance(currency string) uint64 {
	for _, b := range a.Balances {
		if b.Currency == currency {
			return b.Amount
		}
	}
	return 0
}

type ScriptView struct {
	Type              string   `json:"type"`
	Code              string   `json:"code,omitempty"`
	Arguments         []string `json:"arguments,omitempty"`
	TypeArguments     []string `json:"type_arguments,omitempty"`
	Receiver          string   `json:"receiver,omitempty"`
	Amount            uint64   `json:"amount,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	Metadata          string   `json:"metadata,omitempty"`
	MetadataSignature string   `json:"metadata_signature,omitempty"`
}

type TransactionDataView struct {
	Type                    string      `json:"type"`
	TimestampUsecs          uint64      `json:"timestamp_usecs,omitempty"`
	Sender                  string      `json:"sender,omitempty"`
	SignatureScheme         string      `json:"signature_scheme,omitempty"`
	Signature               string      `json:"signature,omitempty"`
	PublicKey               string      `json:"public_key,omitempty"`
	SequenceNumber          uint64      `json:"sequence_number,omitempty"`
	ChainID                 uint8       `json:"chain_id,omitempty"`
	MaxGasAmount            uint64      `json:"max_gas_amount,omitempty"`
	GasUnitPrice            uint64      `json:"gas_unit_price,omitempty"`
	GasCurrency             string      `json:"gas_currency,omitempty"`
	ExpirationTimestampSecs uint64      `json:"expiration_timestamp_secs,omitempty"`
	ScriptHash              string      `json:"script_hash,omitempty"`
	ScriptBytes             string      `json:"script_bytes,omitempty"`
	Script                  *ScriptView `json:"script,omitempty"`
}

type VMStatusView struct {
	Type          string `json:"type"`
	Location      string `json:"location,omitempty"`
	AbortCode     uint64 `json:"abort_code,omitempty"`
	FunctionIndex uint16 `json:"function_index,omitempty"`
	CodeOffset    uint16 `json:"code_offset,omitempty"`
}

type EventDataView struct {
	Type     string      `json:"type"`
	Amount   *AmountView `json:"amount,omitempty"`
	Sender   string      `json:"sender,omitempty"`
	Receiver string      `json:"receiver,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
}

type EventView struct {
	Key                string        `json:"key"`
	SequenceNumber     uint64        `json:"sequence_number"`
	TransactionVersion uint64        `json:"transaction_version"`
	Data               EventDataView `json:"data"`
}

type TransactionView struct {
	Version     uint64              `json:"version"`
	Transaction TransactionDataView `json:"transaction"`
	Hash        string              `json:"hash"`
	Bytes       string              `json:"bytes"`
	Events      []EventView         `json:"events"`
	VMStatus    VMStatusView        `json:"vm_status"`
	GasUsed     uint64              `json:"gas_used"`
}

type CurrencyInfoView struct {
	Code                        string  `json:"code"`
	ScalingFactor               uint64  `json:"scaling_factor"`
	FractionalPart              uint64  `json:"fractional_part"`
	ToLBRExchangeRate           float64 `json:"to_lbr_exchange_rate"`
	MintEventsKey               string  `json:"mint_events_key"`
	BurnEventsKey               string  `json:"burn_events_key"`
	PreburnEventsKey            string  `json:"preburn_events_key"`
	CancelBurnEventsKey         string  `json:"cancel_burn_events_key"`
	ExchangeRateUpdateEventsKey string  `json:"exchange_rate_update_events_key"`
}
