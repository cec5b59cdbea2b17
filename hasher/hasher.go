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

// Package hasher computes domain-separated SHA3-256 hashes.
//
// Each logical type T gets a salt prefix SHA3-256(Namespace || "::" || T).
// The hash of a value of type T is SHA3-256(prefix(T) || bcs(value)), so
// two types never share a hash domain even when their encodings are equal.
package hasher

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/golibra/bcs"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
)

const (
	HashSize = 32

	// DefaultNamespace is the salt namespace used by the Libra ledger
	DefaultNamespace = "LIBRA"

	separator = "::"

	defaultCacheSize = 64
)

var ErrInvalidTypeName = errors.New("invalid hash domain name")

// HashValue is a 32-byte SHA3-256 digest
type HashValue [HashSize]byte

func (h HashValue) String() string {
	return hex.EncodeToString(h[:])
}

func (h HashValue) Bytes() []byte {
	return h[:]
}

func (h HashValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// ParseHashValue decodes a hex string into a HashValue
func ParseHashValue(s string) (HashValue, error) {
	var ret HashValue
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return ret, err
	}
	if len(b) != HashSize {
		return ret, fmt.Errorf("invalid hash length: %d", len(b))
	}
	copy(ret[:], b)
	return ret, nil
}

// Hasher produces domain-separated hashes within one namespace. It is safe
// for concurrent use
type Hasher struct {
	namespace string
	prefixes  *lru.Cache[string, HashValue]
}

type HasherOptionFunc func(*hasherConfig)

type hasherConfig struct {
	cacheSize int
}

// WithCacheSize sets how many computed prefixes are kept
func WithCacheSize(size int) HasherOptionFunc {
	return func(c *hasherConfig) {
		c.cacheSize = size
	}
}

// New returns a Hasher for the given namespace
func New(namespace string, opts ...HasherOptionFunc) (*Hasher, error) {
	if err := validateName(namespace); err != nil {
		return nil, err
	}
	cfg := hasherConfig{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	cache, err := lru.New[string, HashValue](cfg.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create prefix cache: %w", err)
	}
	return &Hasher{
		namespace: namespace,
		prefixes:  cache,
	}, nil
}

var defaultHasher *Hasher

func init() {
	h, err := New(DefaultNamespace)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating default hasher: %s", err))
	}
	defaultHasher = h
}

// Default returns the shared Hasher for DefaultNamespace
func Default() *Hasher {
	return defaultHasher
}

func (h *Hasher) Namespace() string {
	return h.namespace
}

// Prefix returns the domain prefix for typeName
func (h *Hasher) Prefix(typeName string) (HashValue, error) {
	if err := validateName(typeName); err != nil {
		return HashValue{}, err
	}
	if p, ok := h.prefixes.Get(typeName); ok {
		return p, nil
	}
	p := HashValue(sha3.Sum256([]byte(h.namespace + separator + typeName)))
	h.prefixes.Add(typeName, p)
	return p, nil
}

// Sum returns SHA3-256(prefix(typeName) || data)
func (h *Hasher) Sum(typeName string, data []byte) (HashValue, error) {
	prefix, err := h.Prefix(typeName)
	if err != nil {
		return HashValue{}, err
	}
	state := sha3.New256()
	state.Write(prefix[:])
	state.Write(data)
	var ret HashValue
	copy(ret[:], state.Sum(nil))
	return ret, nil
}

// SumValue canonically encodes v and hashes it in the typeName domain
func (h *Hasher) SumValue(typeName string, v bcs.Marshaler) (HashValue, error) {
	data, err := bcs.Marshal(v)
	if err != nil {
		return HashValue{}, err
	}
	return h.Sum(typeName, data)
}

// A name containing the separator could make "A::B" + "C" collide with
// "A" + "B::C"
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTypeName)
	}
	if strings.Contains(name, separator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidTypeName, name, separator)
	}
	return nil
}
