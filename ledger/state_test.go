// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/ledger"
)

var testPrefixes = ledger.Prefixes{
	OwnerSets:        'O',
	CreatorSets:      'C',
	Tokens:           'T',
	TokenMetadata:    'M',
	ContractMetadata: 'N',
}

func TestStatePack(t *testing.T) {
	s := &ledger.State{
		OwnerId:        fixtures.OwnerAccount,
		Prefixes:       testPrefixes,
		MintingEnabled: true,
		TokenCount:     300,
	}
	packed := s.Pack()

	expected := []byte{
		0x00, 0x02,
		0x0a, 'o', 'w', 'n', 'e', 'r', '.', 'n', 'e', 'a', 'r',
		'O', 'C', 'T', 'M', 'N',
		0x01,
		0xac, 0x02,
	}
	assert.Equal(t, expected, packed, "wrong packed state")
	assert.True(t, ledger.IsTagged(packed), "state not tagged")

	unpacked, err := ledger.UnpackState(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, s, unpacked, "state differs")

	_, err = ledger.UnpackLegacyState(packed)
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "current state read as legacy")
}

func TestLegacyStatePack(t *testing.T) {
	s := &ledger.LegacyState{
		OwnerId:        fixtures.AliceAccount,
		Prefixes:       testPrefixes,
		MintingEnabled: false,
	}
	packed := s.Pack()

	expected := []byte{
		0x0a, 'a', 'l', 'i', 'c', 'e', '.', 'n', 'e', 'a', 'r',
		'O', 'C', 'T', 'M', 'N',
		0x00,
	}
	assert.Equal(t, expected, packed, "wrong packed legacy state")
	assert.False(t, ledger.IsTagged(packed), "legacy state tagged")

	unpacked, err := ledger.UnpackLegacyState(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, s, unpacked, "legacy state differs")

	_, err = ledger.UnpackState(packed)
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "legacy state read as current")
}

func TestStateTruncated(t *testing.T) {
	s := &ledger.State{
		OwnerId:        fixtures.BobAccount,
		Prefixes:       testPrefixes,
		MintingEnabled: true,
		TokenCount:     1,
	}
	packed := s.Pack()
	for i := 0; i < len(packed); i += 1 {
		_, err := ledger.UnpackState(packed[:i])
		assert.Equal(t, fault.CorruptOrWrongSchema, err, "%d: truncated state accepted", i)
	}

	// trailing bytes are not part of any state
	_, err := ledger.UnpackState(append(packed, 0x00))
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "extended state accepted")

	legacy := (&ledger.LegacyState{
		OwnerId:  fixtures.BobAccount,
		Prefixes: testPrefixes,
	}).Pack()
	for i := 0; i < len(legacy); i += 1 {
		_, err := ledger.UnpackLegacyState(legacy[:i])
		assert.Equal(t, fault.CorruptOrWrongSchema, err, "%d: truncated legacy state accepted", i)
	}
	_, err = ledger.UnpackLegacyState(append(legacy, 0x01))
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "extended legacy state accepted")
}

func TestStateBadStatus(t *testing.T) {
	legacy := (&ledger.LegacyState{
		OwnerId:  fixtures.BobAccount,
		Prefixes: testPrefixes,
	}).Pack()
	legacy[len(legacy)-1] = 0x02
	_, err := ledger.UnpackLegacyState(legacy)
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "bad status accepted")
}

func TestStateWrongVersion(t *testing.T) {
	packed := (&ledger.State{
		OwnerId:  fixtures.BobAccount,
		Prefixes: testPrefixes,
	}).Pack()
	packed[1] = 0x7f
	_, err := ledger.UnpackState(packed)
	assert.Equal(t, fault.CorruptOrWrongSchema, err, "unknown version accepted")
}
