// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/zmqutil"
)

func TestParseKey(t *testing.T) {
	hex := strings.Repeat("0f", 32)

	key, private, err := zmqutil.ParseKey("PRIVATE:" + hex + "\n")
	assert.Nil(t, err, "private key error")
	assert.True(t, private, "private key not flagged")
	assert.Equal(t, 32, len(key), "wrong private key length")

	key, private, err = zmqutil.ParseKey("  PUBLIC:" + hex)
	assert.Nil(t, err, "public key error")
	assert.False(t, private, "public key flagged private")
	assert.Equal(t, byte(0x0f), key[31], "wrong public key byte")

	_, err = zmqutil.ReadPublicKey("PRIVATE:" + hex)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private key read as public")

	_, err = zmqutil.ReadPrivateKey("PUBLIC:" + hex)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public key read as private")

	_, _, err = zmqutil.ParseKey("PUBLIC:" + hex[2:])
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key accepted")

	_, _, err = zmqutil.ParseKey("SECRET:" + hex)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged key accepted")
}

func TestCanonicalAddress(t *testing.T) {
	items := []struct {
		address string
		bindTo  string
		v6      bool
	}{
		{"127.0.0.1:2135", "tcp://127.0.0.1:2135", false},
		{"*:2135", "tcp://*:2135", false},
		{"[::1]:2136", "tcp://[::1]:2136", true},
	}
	for i, item := range items {
		bindTo, v6, err := zmqutil.CanonicalAddress(item.address)
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, item.bindTo, bindTo, "%d: wrong endpoint", i)
		assert.Equal(t, item.v6, v6, "%d: wrong IPv6 flag", i)
	}

	for _, bad := range []string{"localhost:2135", "127.0.0.1", "not an address"} {
		_, _, err := zmqutil.CanonicalAddress(bad)
		assert.Equal(t, fault.InvalidIpAddress, err, "accepted: %q", bad)
	}
}
