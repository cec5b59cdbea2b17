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

package identifier_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/blinklabs-io/golibra/bech32"
	"github.com/blinklabs-io/golibra/identifier"
	"github.com/blinklabs-io/golibra/internal/test"
	"github.com/blinklabs-io/golibra/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mainnetID       = "lbr1p7ujcndcl7nudzwt8fglhx6wxn08kgs5tm6mz4usw5p72t"
	mainnetNoSubID  = "lbr1p7ujcndcl7nudzwt8fglhx6wxnvqqqqqqqqqqqqqflf8ma"
	testnetID       = "tlb1p7ujcndcl7nudzwt8fglhx6wxn08kgs5tm6mz4usugm707"
	mainnetZeroID   = "lbr1pqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqvv86fe"
	testnetZeroID   = "tlb1pqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq7sa6vv"
	zeroSubAddress  = "0000000000000000"
	zeroAccountAddr = "00000000000000000000000000000000"
)

func TestEncodeKnownValues(t *testing.T) {
	testDefs := []struct {
		prefix     string
		address    string
		subAddress string
		expected   string
	}{
		{
			prefix:     identifier.MainnetPrefix,
			address:    test.SampleSender,
			subAddress: test.SampleSubAddress,
			expected:   mainnetID,
		},
		{
			prefix:     identifier.MainnetPrefix,
			address:    test.SampleSender,
			subAddress: zeroSubAddress,
			expected:   mainnetNoSubID,
		},
		{
			prefix:     identifier.TestnetPrefix,
			address:    test.SampleSender,
			subAddress: test.SampleSubAddress,
			expected:   testnetID,
		},
		{
			prefix:     identifier.MainnetPrefix,
			address:    zeroAccountAddr,
			subAddress: zeroSubAddress,
			expected:   mainnetZeroID,
		},
		{
			prefix:     identifier.TestnetPrefix,
			address:    zeroAccountAddr,
			subAddress: zeroSubAddress,
			expected:   testnetZeroID,
		},
	}
	for _, testDef := range testDefs {
		addr := test.AccountAddress(testDef.address)
		sub := test.SubAddress(testDef.subAddress)
		encoded, err := identifier.Encode(testDef.prefix, addr, sub)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, encoded)
		decoded, err := identifier.Decode(testDef.prefix, encoded)
		require.NoError(t, err)
		assert.Equal(t, identifier.New(testDef.prefix, addr, sub), *decoded)
	}
}

func TestDecodeUpperCase(t *testing.T) {
	decoded, err := identifier.Decode(identifier.MainnetPrefix, strings.ToUpper(mainnetID))
	require.NoError(t, err)
	assert.Equal(t, test.SampleSender, decoded.Address.String())
	assert.Equal(t, test.SampleSubAddress, decoded.SubAddress.String())
	assert.Equal(t, identifier.MainnetPrefix, decoded.Prefix)
}

func TestNetworkMismatch(t *testing.T) {
	_, err := identifier.Decode(identifier.TestnetPrefix, mainnetID)
	require.ErrorIs(t, err, identifier.ErrPrefixMismatch)
	var mismatch *identifier.PrefixMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, identifier.TestnetPrefix, mismatch.Expected)
	assert.Equal(t, identifier.MainnetPrefix, mismatch.Actual)
	_, err = identifier.Decode(identifier.MainnetPrefix, testnetID)
	assert.ErrorIs(t, err, identifier.ErrPrefixMismatch)
}

func TestDecodeInvalid(t *testing.T) {
	addr := test.AccountAddress(test.SampleSender)
	payload := append(addr.Bytes(), test.DecodeHexString(test.SampleSubAddress)...)
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	require.NoError(t, err)

	wrongVersion, err := bech32.Encode(identifier.MainnetPrefix, append([]byte{2}, data...))
	require.NoError(t, err)
	_, err = identifier.Decode(identifier.MainnetPrefix, wrongVersion)
	assert.ErrorIs(t, err, identifier.ErrUnsupportedVersion)

	shortData, err := bech32.ConvertBits(addr.Bytes(), 8, 5, true)
	require.NoError(t, err)
	short, err := bech32.Encode(identifier.MainnetPrefix, append([]byte{identifier.Version}, shortData...))
	require.NoError(t, err)
	_, err = identifier.Decode(identifier.MainnetPrefix, short)
	assert.ErrorIs(t, err, identifier.ErrInvalidLength)

	empty, err := bech32.Encode(identifier.MainnetPrefix, nil)
	require.NoError(t, err)
	_, err = identifier.Decode(identifier.MainnetPrefix, empty)
	assert.ErrorIs(t, err, identifier.ErrInvalidLength)

	// Last data character changed
	mistyped := mainnetID[:len(mainnetID)-1] + "q"
	_, err = identifier.Decode(identifier.MainnetPrefix, mistyped)
	assert.ErrorIs(t, err, bech32.ErrInvalidChecksum)

	_, err = identifier.Decode(identifier.MainnetPrefix, "lbr1P7ujcndcl7nudzwt8fglhx6wxn08kgs5tm6mz4usw5p72t")
	assert.ErrorIs(t, err, bech32.ErrMixedCase)

	_, err = identifier.New(identifier.MainnetPrefix, addr, types.SubAddress{}).Encode()
	require.NoError(t, err)
	_, err = identifier.AccountIdentifier{Prefix: identifier.MainnetPrefix, Version: 2}.Encode()
	assert.ErrorIs(t, err, identifier.ErrUnsupportedVersion)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for range 200 {
		var addr types.AccountAddress
		var sub types.SubAddress
		rng.Read(addr[:])
		rng.Read(sub[:])
		for _, prefix := range []string{identifier.MainnetPrefix, identifier.TestnetPrefix} {
			encoded, err := identifier.Encode(prefix, addr, sub)
			require.NoError(t, err)
			decoded, err := identifier.Decode(prefix, encoded)
			require.NoError(t, err)
			assert.Equal(t, addr, decoded.Address)
			assert.Equal(t, sub, decoded.SubAddress)
		}
	}
}

func TestPaymentIntentEncode(t *testing.T) {
	id := identifier.New(
		identifier.MainnetPrefix,
		test.AccountAddress(test.SampleSender),
		test.SubAddress(test.SampleSubAddress),
	)
	testDefs := []struct {
		intent   identifier.PaymentIntent
		expected string
	}{
		{
			intent:   identifier.PaymentIntent{AccountIdentifier: id},
			expected: "libra://" + mainnetID,
		},
		{
			intent:   identifier.PaymentIntent{AccountIdentifier: id, Currency: "LBR"},
			expected: "libra://" + mainnetID + "?c=LBR",
		},
		{
			intent:   identifier.PaymentIntent{AccountIdentifier: id, Amount: 5000},
			expected: "libra://" + mainnetID + "?am=5000",
		},
		{
			intent:   identifier.PaymentIntent{AccountIdentifier: id, Currency: "LBR", Amount: 5000},
			expected: "libra://" + mainnetID + "?c=LBR&am=5000",
		},
	}
	for _, testDef := range testDefs {
		encoded, err := testDef.intent.Encode()
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, encoded)
		decoded, err := identifier.DecodeIntent(identifier.MainnetPrefix, encoded)
		require.NoError(t, err)
		assert.Equal(t, testDef.intent, *decoded)
	}
}

func TestPaymentIntentDecode(t *testing.T) {
	intent, err := identifier.DecodeIntent(
		identifier.MainnetPrefix,
		"libra://"+mainnetID+"?foo=bar&am=12&c=Coin1&x",
	)
	require.NoError(t, err)
	assert.Equal(t, "Coin1", intent.Currency)
	assert.Equal(t, uint64(12), intent.Amount)
	assert.Equal(t, test.SampleSender, intent.Address.String())

	intent, err = identifier.DecodeIntent(identifier.MainnetPrefix, "libra://"+mainnetID+"?am=0")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), intent.Amount)

	testDefs := []struct {
		uri         string
		expectedErr error
	}{
		{uri: "https://" + mainnetID, expectedErr: identifier.ErrInvalidScheme},
		{uri: mainnetID, expectedErr: identifier.ErrInvalidScheme},
		{uri: "libra://" + mainnetID + "?am=abc", expectedErr: identifier.ErrInvalidAmount},
		{uri: "libra://" + mainnetID + "?am=-1", expectedErr: identifier.ErrInvalidAmount},
		{uri: "libra://" + mainnetID + "?am=1.5", expectedErr: identifier.ErrInvalidAmount},
		{uri: "libra://" + mainnetID + "?am=18446744073709551616", expectedErr: identifier.ErrInvalidAmount},
		{uri: "libra://" + testnetID, expectedErr: identifier.ErrPrefixMismatch},
		{uri: "libra://" + mainnetID + "/pay", expectedErr: identifier.ErrInvalidURI},
		{uri: "libra://", expectedErr: identifier.ErrInvalidURI},
	}
	for _, testDef := range testDefs {
		_, err := identifier.DecodeIntent(identifier.MainnetPrefix, testDef.uri)
		assert.ErrorIs(t, err, testDef.expectedErr, testDef.uri)
	}
}
