// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/storage"
)

// one schema upgrade: parse the stored bytes of version "from" and
// return the packed state of version "to"
type schemaStep struct {
	from    byte
	to      byte
	upgrade func(trx storage.Transaction, pools *storage.Pools, buffer []byte) ([]byte, error)
}

// applied in order until the current version is reached
var schemaSteps = []schemaStep{
	{from: legacyVersion, to: currentVersion, upgrade: upgradeLegacy},
}

// the version of a stored state
func storedVersion(buffer []byte) byte {
	if !IsTagged(buffer) {
		return legacyVersion
	}
	if len(buffer) < 2 {
		return 0
	}
	return buffer[1]
}

// upgrade replaces the code and schedules migrate on the new code
//
// the arguments are the new code
func (l *Ledger) upgrade(ctx *host.Context, args []byte) (interface{}, error) {
	owner, err := readOwner(ctx.Transaction(), ctx.Pools())
	if nil != err {
		return nil, err
	}
	if ctx.Predecessor() != owner {
		l.log.Warnf("upgrade: not owner: %s", ctx.Predecessor())
		return nil, fault.NotAuthorized
	}
	if 0 == len(args) {
		return nil, fault.EmptyCode
	}

	code := make([]byte, len(args))
	copy(code, args)

	ctx.Schedule(
		host.DeployContract{Code: code},
		host.FunctionCall{Method: MethodMigrate},
	)
	l.log.Infof("upgrade: %d bytes of code scheduled", len(code))
	return nil, nil
}

// migrate rewrites a legacy root state in the current layout
//
// only callable by the contract account itself; a state that is
// already current is refused
func (l *Ledger) migrate(ctx *host.Context, args []byte) (interface{}, error) {
	if ctx.Predecessor() != ctx.CurrentAccount() {
		return nil, fault.PrivateMethod
	}

	trx := ctx.Transaction()
	pools := ctx.Pools()

	buffer := trx.Get(pools.State, stateKey)
	if nil == buffer {
		return nil, fault.NotInitialised
	}

	version := storedVersion(buffer)
	if currentVersion == version {
		l.log.Errorf("migrate: state is already version: %d", version)
		return nil, fault.CorruptOrWrongSchema
	}

	for _, step := range schemaSteps {
		if step.from != version {
			continue
		}
		upgraded, err := step.upgrade(trx, pools, buffer)
		if nil != err {
			l.log.Errorf("migrate: version: %d → %d  error: %s", step.from, step.to, err)
			return nil, err
		}
		buffer = upgraded
		version = step.to
	}
	if currentVersion != version {
		l.log.Errorf("migrate: no path from version: %d", version)
		return nil, fault.CorruptOrWrongSchema
	}

	s, err := UnpackState(buffer)
	if nil != err {
		return nil, err
	}
	ctx.Log("old state read")
	saveState(trx, pools, s)

	l.log.Infof("migrate: complete  owner: %s  tokens: %d", s.OwnerId, s.TokenCount)
	return s, nil
}

// legacy → current: copy every field, count the existing tokens
func upgradeLegacy(trx storage.Transaction, pools *storage.Pools, buffer []byte) ([]byte, error) {
	old, err := UnpackLegacyState(buffer)
	if nil != err {
		return nil, err
	}
	if err := old.Prefixes.Validate(pools); nil != err {
		return nil, err
	}

	n, err := pools.TokenMetadata.NewFetchCursor().Count()
	if nil != err {
		return nil, err
	}

	s := &State{
		OwnerId:        old.OwnerId,
		Prefixes:       old.Prefixes,
		MintingEnabled: old.MintingEnabled,
		TokenCount:     uint64(n),
	}
	return s.Pack(), nil
}
