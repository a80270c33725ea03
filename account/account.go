// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/nftledger/fault"
)

// limits on the length of an account id
const (
	MinimumLength = 2
	MaximumLength = 64
)

// HashLength - bytes in an account digest
const HashLength = 32

// Account - an account id such as "alice.near"
//
// lowercase letters and digits in runs separated by a single '-',
// '_' or '.'
type Account string

// New - validate a string as an account id
func New(s string) (Account, error) {
	a := Account(s)
	if err := a.Validate(); nil != err {
		return "", err
	}
	return a, nil
}

// Validate - check the account id is well formed
func (a Account) Validate() error {
	n := len(a)
	if n < MinimumLength || n > MaximumLength {
		return fault.InvalidAccount
	}

	separator := true // no leading separator
	for i := 0; i < n; i += 1 {
		c := a[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			separator = false
		case c == '-', c == '_', c == '.':
			if separator {
				return fault.InvalidAccount
			}
			separator = true
		default:
			return fault.InvalidAccount
		}
	}
	if separator {
		return fault.InvalidAccount
	}
	return nil
}

// Bytes - the account id as a byte slice
func (a Account) Bytes() []byte {
	return []byte(a)
}

// String - the account id
func (a Account) String() string {
	return string(a)
}

// Hash - SHA3-256 digest of the account id
func (a Account) Hash() [HashLength]byte {
	return sha3.Sum256([]byte(a))
}

// MarshalText - convert account to text
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

// UnmarshalText - convert text to a validated account
func (a *Account) UnmarshalText(s []byte) error {
	acc, err := New(string(s))
	if nil != err {
		return err
	}
	*a = acc
	return nil
}
