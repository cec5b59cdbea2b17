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

package identifier

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Scheme of payment intent URIs
const Scheme = "libra"

// Query keys of payment intent URIs
const (
	QueryCurrency = "c"
	QueryAmount   = "am"
)

var (
	ErrInvalidScheme = errors.New("identifier: invalid payment intent scheme")
	ErrInvalidAmount = errors.New("identifier: invalid payment intent amount")
	ErrInvalidURI    = errors.New("identifier: invalid payment intent URI")
)

// PaymentIntent asks for a payment to an account. An empty currency and a
// zero amount are absent
type PaymentIntent struct {
	AccountIdentifier
	Currency string
	Amount   uint64
}

// Encode returns the URI form, libra://<identifier>[?c=<currency>][&am=<amount>]
func (p PaymentIntent) Encode() (string, error) {
	id, err := p.AccountIdentifier.Encode()
	if err != nil {
		return "", err
	}
	var params []string
	if p.Currency != "" {
		params = append(params, QueryCurrency+"="+url.QueryEscape(p.Currency))
	}
	if p.Amount > 0 {
		params = append(params, QueryAmount+"="+strconv.FormatUint(p.Amount, 10))
	}
	ret := Scheme + "://" + id
	if len(params) > 0 {
		ret += "?" + strings.Join(params, "&")
	}
	return ret, nil
}

// DecodeIntent parses a payment intent URI whose identifier must belong to
// the network named by expectedPrefix. Unknown query keys are ignored
func DecodeIntent(expectedPrefix string, uri string) (*PaymentIntent, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, u.Scheme)
	}
	if u.Host == "" || u.User != nil || u.Port() != "" || (u.Path != "" && u.Path != "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	id, err := Decode(expectedPrefix, u.Host)
	if err != nil {
		return nil, err
	}
	ret := &PaymentIntent{AccountIdentifier: *id}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	ret.Currency = query.Get(QueryCurrency)
	if amount := query.Get(QueryAmount); amount != "" {
		ret.Amount, err = strconv.ParseUint(amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
		}
	}
	return ret, nil
}
