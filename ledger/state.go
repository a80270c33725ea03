// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/storage"
	"github.com/bitmark-inc/nftledger/util"
)

// root state layout
//
//	legacy:  owner ++ prefixes ++ status
//	current: 0x00 ++ version ++ owner ++ prefixes ++ status ++ token count
//
//	owner    = varint length ++ account id
//	prefixes = owner sets ++ creator sets ++ tokens ++ token metadata ++ contract metadata
//	status   = 0x00 (minting disabled) or 0x01 (minting enabled)
//
// an account id is at least two bytes so a legacy state never starts
// with 0x00
const (
	stateMarker     = 0x00
	legacyVersion   = 0x01
	currentVersion  = 0x02
	prefixCount     = 5
	minimumStateLen = 1 + account.MinimumLength + prefixCount + 1
)

// the single key in the state pool
var stateKey = []byte("STATE")

// Prefixes - pool prefix bytes of the collections held by the state
type Prefixes struct {
	OwnerSets        byte `json:"ownerSets"`
	CreatorSets      byte `json:"creatorSets"`
	Tokens           byte `json:"tokens"`
	TokenMetadata    byte `json:"tokenMetadata"`
	ContractMetadata byte `json:"contractMetadata"`
}

// State - the current root state
type State struct {
	OwnerId        account.Account `json:"ownerId"`
	Prefixes       Prefixes        `json:"prefixes"`
	MintingEnabled bool            `json:"mintingEnabled"`
	TokenCount     uint64          `json:"tokenCount"`
}

// LegacyState - the root state before explicit versioning
type LegacyState struct {
	OwnerId        account.Account `json:"ownerId"`
	Prefixes       Prefixes        `json:"prefixes"`
	MintingEnabled bool            `json:"mintingEnabled"`
}

// DefaultPrefixes - the collection prefixes of a database
func DefaultPrefixes(pools *storage.Pools) Prefixes {
	return Prefixes{
		OwnerSets:        pools.OwnerSets.Prefix(),
		CreatorSets:      pools.CreatorSets.Prefix(),
		Tokens:           pools.Tokens.Prefix(),
		TokenMetadata:    pools.TokenMetadata.Prefix(),
		ContractMetadata: pools.ContractMetadata.Prefix(),
	}
}

// Validate - check that every prefix names the expected pool
func (p Prefixes) Validate(pools *storage.Pools) error {
	if p != DefaultPrefixes(pools) {
		return fault.CorruptOrWrongSchema
	}
	return nil
}

// Pack - current state with its version tag
func (s *State) Pack() []byte {
	buffer := []byte{stateMarker, currentVersion}
	buffer = packCommon(buffer, s.OwnerId, s.Prefixes, s.MintingEnabled)
	return append(buffer, util.ToVarint64(s.TokenCount)...)
}

// Pack - legacy state, untagged
func (s *LegacyState) Pack() []byte {
	return packCommon(nil, s.OwnerId, s.Prefixes, s.MintingEnabled)
}

func packCommon(buffer []byte, owner account.Account, p Prefixes, enabled bool) []byte {
	buffer = util.PackBytes(buffer, owner.Bytes())
	buffer = append(buffer, p.OwnerSets, p.CreatorSets, p.Tokens, p.TokenMetadata, p.ContractMetadata)
	if enabled {
		return append(buffer, 0x01)
	}
	return append(buffer, 0x00)
}

// returns the fields and the number of bytes used
func unpackCommon(buffer []byte) (account.Account, Prefixes, bool, int, error) {
	owner, n := util.UnpackBytes(buffer)
	if 0 == n {
		return "", Prefixes{}, false, 0, fault.CorruptOrWrongSchema
	}
	a, err := account.New(string(owner))
	if nil != err {
		return "", Prefixes{}, false, 0, fault.CorruptOrWrongSchema
	}
	if len(buffer) < n+prefixCount+1 {
		return "", Prefixes{}, false, 0, fault.CorruptOrWrongSchema
	}
	p := Prefixes{
		OwnerSets:        buffer[n],
		CreatorSets:      buffer[n+1],
		Tokens:           buffer[n+2],
		TokenMetadata:    buffer[n+3],
		ContractMetadata: buffer[n+4],
	}
	n += prefixCount

	enabled := false
	switch buffer[n] {
	case 0x00:
	case 0x01:
		enabled = true
	default:
		return "", Prefixes{}, false, 0, fault.CorruptOrWrongSchema
	}
	return a, p, enabled, n + 1, nil
}

// IsTagged - true if the bytes carry an explicit version
func IsTagged(buffer []byte) bool {
	return len(buffer) > 0 && stateMarker == buffer[0]
}

// UnpackState - parse a current state
func UnpackState(buffer []byte) (*State, error) {
	if len(buffer) < 2+minimumStateLen || !IsTagged(buffer) || currentVersion != buffer[1] {
		return nil, fault.CorruptOrWrongSchema
	}
	owner, p, enabled, n, err := unpackCommon(buffer[2:])
	if nil != err {
		return nil, err
	}
	n += 2

	count, cn := util.FromVarint64(buffer[n:])
	if 0 == cn || n+cn != len(buffer) {
		return nil, fault.CorruptOrWrongSchema
	}

	return &State{
		OwnerId:        owner,
		Prefixes:       p,
		MintingEnabled: enabled,
		TokenCount:     count,
	}, nil
}

// UnpackLegacyState - parse a legacy state
//
// every byte must be consumed
func UnpackLegacyState(buffer []byte) (*LegacyState, error) {
	if len(buffer) < minimumStateLen || IsTagged(buffer) {
		return nil, fault.CorruptOrWrongSchema
	}
	owner, p, enabled, n, err := unpackCommon(buffer)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.CorruptOrWrongSchema
	}
	return &LegacyState{
		OwnerId:        owner,
		Prefixes:       p,
		MintingEnabled: enabled,
	}, nil
}

// ReadState - decode whatever state is committed in a database
//
// returns *State or *LegacyState
func ReadState(db *storage.Database) (interface{}, error) {
	buffer := db.Pool.State.Get(stateKey)
	if nil == buffer {
		return nil, fault.NotInitialised
	}
	if IsTagged(buffer) {
		return UnpackState(buffer)
	}
	return UnpackLegacyState(buffer)
}

// read the current state inside a transaction
func loadState(trx storage.Transaction, pools *storage.Pools) (*State, error) {
	buffer := trx.Get(pools.State, stateKey)
	if nil == buffer {
		return nil, fault.NotInitialised
	}
	s, err := UnpackState(buffer)
	if nil != err {
		return nil, err
	}
	if err := s.Prefixes.Validate(pools); nil != err {
		return nil, err
	}
	return s, nil
}

func saveState(trx storage.Transaction, pools *storage.Pools, s *State) {
	trx.Put(pools.State, stateKey, s.Pack())
}

// the owner recorded in either schema
func readOwner(trx storage.Transaction, pools *storage.Pools) (account.Account, error) {
	buffer := trx.Get(pools.State, stateKey)
	if nil == buffer {
		return "", fault.NotInitialised
	}
	if IsTagged(buffer) {
		s, err := UnpackState(buffer)
		if nil != err {
			return "", err
		}
		return s.OwnerId, nil
	}
	s, err := UnpackLegacyState(buffer)
	if nil != err {
		return "", err
	}
	return s.OwnerId, nil
}
