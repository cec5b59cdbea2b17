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

package types_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/golibra/bcs"
	"github.com/blinklabs-io/golibra/internal/test"
	"github.com/blinklabs-io/golibra/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAddress(t *testing.T) {
	addr, err := types.ParseAccountAddress("0x" + test.SampleSender)
	require.NoError(t, err)
	assert.Equal(t, test.SampleSender, addr.String())
	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+test.SampleSender+`"`, string(data))
	var decoded types.AccountAddress
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
	assert.Equal(t, "00000000000000000000000000000001", types.CoreCodeAddress.String())
}

func TestFixedLengthConstructors(t *testing.T) {
	_, err := types.NewAccountAddress(make([]byte, 15))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
	_, err = types.NewAccountAddress(make([]byte, 17))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
	_, err = types.NewSubAddress(make([]byte, 7))
	assert.ErrorIs(t, err, types.ErrInvalidLength)
	var lengthErr *types.InvalidLengthError
	_, err = types.ParseSubAddress("0011")
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, types.SubAddressSize, lengthErr.Expected)
	assert.Equal(t, 2, lengthErr.Actual)
	_, err = types.ParseAccountAddress("zz")
	assert.Error(t, err)
}

func TestGenerateSubAddress(t *testing.T) {
	// The first eight bytes are all zero and must be skipped
	src := append(make([]byte, types.SubAddressSize), test.DecodeHexString(test.SampleSubAddress)...)
	sub, err := types.GenerateSubAddress(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, test.SampleSubAddress, sub.String())
	assert.False(t, sub.IsZero())
	assert.True(t, types.SubAddress{}.IsZero())
	_, err = types.GenerateSubAddress(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestAuthenticationKey(t *testing.T) {
	key := types.NewAuthenticationKey(
		test.DecodeHexString(test.Ed25519PublicKey),
		types.SchemeEd25519,
	)
	assert.Equal(t, test.AuthKey, key.String())
	assert.Equal(t, test.AuthKeyAddress, key.AccountAddress().String())
	assert.Equal(t, test.DecodeHexString(test.AuthKey)[:16], key.Prefix())
	multi := types.NewAuthenticationKey(
		test.DecodeHexString(test.Ed25519PublicKey),
		types.SchemeMultiEd25519,
	)
	assert.NotEqual(t, key, multi)
}

func TestChainIDString(t *testing.T) {
	assert.Equal(t, "MAINNET", types.ChainIDMainnet.String())
	assert.Equal(t, "TESTING", types.ChainIDTesting.String())
	assert.Equal(t, "42", types.ChainID(42).String())
}

func TestRawTransactionEncoding(t *testing.T) {
	raw := test.SampleRawTransaction()
	encoded, err := bcs.Marshal(raw)
	require.NoError(t, err)
	assert.Equal(t, test.SampleRawTxnBCS, hex.EncodeToString(encoded))
	var decoded types.RawTransaction
	require.NoError(t, bcs.Unmarshal(encoded, &decoded))
	assert.Equal(t, raw, &decoded)
	msg, err := raw.SigningMessage()
	require.NoError(t, err)
	assert.Equal(t, test.SampleSigningMessage, msg.String())
}

func TestSignedTransaction(t *testing.T) {
	auth := &types.Ed25519Authenticator{}
	copy(auth.PublicKey[:], test.DecodeHexString(test.Ed25519PublicKey))
	copy(auth.Signature[:], test.DecodeHexString(test.SampleSignature))
	signed := &types.SignedTransaction{
		RawTxn:        *test.SampleRawTransaction(),
		Authenticator: auth,
	}
	encoded, err := signed.Hex()
	require.NoError(t, err)
	assert.Equal(t, test.SampleSignedTxnBCS, encoded)
	txid, err := signed.Hash()
	require.NoError(t, err)
	assert.Equal(t, test.SampleTransactionID, txid.String())
	parsed, err := types.ParseSignedTransaction(encoded)
	require.NoError(t, err)
	assert.Equal(t, signed, parsed)
}

func TestSignedTransactionRejectsBadAuthenticator(t *testing.T) {
	// Public key with a 31 byte length prefix
	bad := test.SampleRawTxnBCS + "001f" + test.Ed25519PublicKey[:62] + "40" + test.SampleSignature
	_, err := types.ParseSignedTransaction(bad)
	assert.Error(t, err)
	// Unknown authenticator variant
	_, err = types.ParseSignedTransaction(test.SampleRawTxnBCS + "02")
	assert.ErrorIs(t, err, bcs.ErrUnknownVariant)
	// Trailing byte
	_, err = types.ParseSignedTransaction(test.SampleSignedTxnBCS + "00")
	assert.ErrorIs(t, err, bcs.ErrRemainingInput)
}

func TestWriteSetPayloadUnsupported(t *testing.T) {
	raw := test.SampleRawTransaction()
	raw.Payload = types.WriteSetPayload{}
	_, err := bcs.Marshal(raw)
	assert.ErrorIs(t, err, types.ErrUnsupportedPayload)
	_, err = raw.SigningMessage()
	assert.ErrorIs(t, err, types.ErrUnsupportedPayload)
	// Payload variant 0 on the wire
	encoded := test.DecodeHexString(test.SampleRawTxnBCS)
	encoded[24] = 0x00
	var decoded types.RawTransaction
	err = bcs.Unmarshal(encoded, &decoded)
	assert.ErrorIs(t, err, types.ErrUnsupportedPayload)
}

func TestModulePayload(t *testing.T) {
	raw := test.SampleRawTransaction()
	raw.Payload = &types.Module{Code: []byte{0xa1, 0x1c, 0xeb, 0x0b}}
	encoded, err := bcs.Marshal(raw)
	require.NoError(t, err)
	var decoded types.RawTransaction
	require.NoError(t, bcs.Unmarshal(encoded, &decoded))
	assert.Equal(t, raw, &decoded)
}

func TestTransactionArguments(t *testing.T) {
	testDefs := []struct {
		arg      types.TransactionArgument
		expected string
	}{
		{arg: types.U8Argument(7), expected: "0007"},
		{arg: types.U64Argument(1), expected: "010100000000000000"},
		{
			arg:      types.U128Argument{Value: test.U128("0100")},
			expected: "0200010000000000000000000000000000",
		},
		{arg: types.U8VectorArgument{0xca, 0xfe}, expected: "0402cafe"},
		{arg: types.BoolArgument(true), expected: "0501"},
	}
	for _, testDef := range testDefs {
		encoded, err := bcs.Marshal(testDef.arg)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, hex.EncodeToString(encoded))
		d := bcs.NewDecoder(encoded)
		decoded := types.ReadTransactionArgument(d)
		require.NoError(t, d.Finish())
		assert.Equal(t, testDef.arg, decoded)
	}
	// u128 beyond 128 bits
	_, err := bcs.Marshal(types.U128Argument{Value: test.U128("01" + "00000000000000000000000000000000")})
	assert.ErrorIs(t, err, bcs.ErrValueOutOfRange)
}

func TestTypeTags(t *testing.T) {
	tag := types.StructTag{
		Address: types.CoreCodeAddress,
		Module:  "Libra",
		Name:    "Libra",
		TypeParams: []types.TypeTag{
			types.CurrencyTag("Coin1"),
			types.VectorTag{Elem: types.U8Tag},
		},
	}
	assert.Equal(
		t,
		"0x00000000000000000000000000000001::Libra::Libra<0x00000000000000000000000000000001::Coin1::Coin1, vector<u8>>",
		tag.String(),
	)
	encoded, err := bcs.Marshal(tag)
	require.NoError(t, err)
	d := bcs.NewDecoder(encoded)
	decoded := types.ReadTypeTag(d)
	require.NoError(t, d.Finish())
	assert.Equal(t, tag, decoded)
	for _, prim := range []types.PrimitiveTag{
		types.BoolTag, types.U8Tag, types.U64Tag, types.U128Tag, types.AddressTag, types.SignerTag,
	} {
		encoded, err := bcs.Marshal(prim)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(prim)}, encoded)
	}
	_, err = bcs.Marshal(types.PrimitiveTag(6))
	assert.ErrorIs(t, err, bcs.ErrUnknownVariant)
	d = bcs.NewDecoder([]byte{8})
	assert.Nil(t, types.ReadTypeTag(d))
	assert.ErrorIs(t, d.Err(), bcs.ErrUnknownVariant)
}

func TestTypeTagDepthLimit(t *testing.T) {
	var tag types.TypeTag = types.U8Tag
	for range bcs.MaxContainerDepth {
		tag = types.VectorTag{Elem: tag}
	}
	_, err := bcs.Marshal(tag)
	assert.ErrorIs(t, err, bcs.ErrContainerDepthExceeded)
	// Hand-built input nested past the limit
	input := bytes.Repeat([]byte{byte(types.TypeTagVector)}, bcs.MaxContainerDepth+1)
	input = append(input, byte(types.TypeTagU8))
	d := bcs.NewDecoder(input)
	types.ReadTypeTag(d)
	assert.ErrorIs(t, d.Err(), bcs.ErrContainerDepthExceeded)
}

func TestMetadata(t *testing.T) {
	refID := "off chain reference id"
	event := uint64(5)
	to := test.SubAddress(test.SampleSubAddress)
	testDefs := []struct {
		metadata types.Metadata
		expected string
	}{
		{metadata: &types.UndefinedMetadata{}, expected: "00"},
		{
			metadata: &types.TravelRuleMetadata{OffChainReferenceID: &refID},
			expected: "020001166f666620636861696e207265666572656e6365206964",
		},
		{metadata: &types.TravelRuleMetadata{}, expected: "020000"},
		{
			metadata: types.NewGeneralMetadata(&to, nil, &event),
			expected: "01000108" + test.SampleSubAddress + "00010500000000000000",
		},
		{metadata: &types.UnstructuredBytesMetadata{Metadata: []byte{0xab}}, expected: "030101ab"},
		{metadata: &types.UnstructuredBytesMetadata{}, expected: "0300"},
	}
	for _, testDef := range testDefs {
		encoded, err := bcs.Marshal(testDef.metadata)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, hex.EncodeToString(encoded))
		decoded, err := types.ParseMetadata(encoded)
		require.NoError(t, err)
		assert.Equal(t, testDef.metadata, decoded)
	}
	_, err := types.ParseMetadata([]byte{0x02, 0x01, 0x00})
	assert.ErrorIs(t, err, bcs.ErrUnknownVariant)
	_, err = types.ParseMetadata([]byte{0x04})
	assert.ErrorIs(t, err, bcs.ErrUnknownVariant)
	_, err = types.ParseMetadata([]byte{0x02, 0x00, 0x02})
	assert.ErrorIs(t, err, bcs.ErrInvalidOptionTag)
}
