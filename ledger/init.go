// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/events"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/record"
)

// default contract metadata
const (
	DefaultName = "Nativo NFT"
	DefaultIcon = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 16 16'%3E%3Ccircle cx='8' cy='8' r='7' fill='%23f79336'/%3E%3C/svg%3E"

	DefaultSymbol = "NATIVO"
)

// the single key in the contract metadata pool
var metadataKey = []byte("METADATA")

type initialiseArgs struct {
	OwnerId  *account.Account         `json:"owner_id"`
	Metadata *record.ContractMetadata `json:"metadata"`
}

// DefaultContractMetadata - metadata used by new_default_meta
func DefaultContractMetadata() *record.ContractMetadata {
	icon := DefaultIcon
	return &record.ContractMetadata{
		Spec:   events.Version,
		Name:   DefaultName,
		Symbol: DefaultSymbol,
		Icon:   &icon,
	}
}

func (l *Ledger) initialise(ctx *host.Context, args []byte) (interface{}, error) {
	var a initialiseArgs
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.OwnerId || nil == a.Metadata {
		return nil, fault.MissingParameters
	}
	return l.create(ctx, *a.OwnerId, a.Metadata)
}

func (l *Ledger) initialiseDefault(ctx *host.Context, args []byte) (interface{}, error) {
	var a initialiseArgs
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.OwnerId {
		return nil, fault.MissingParameters
	}
	return l.create(ctx, *a.OwnerId, DefaultContractMetadata())
}

// write a fresh root state and contract metadata
func (l *Ledger) create(ctx *host.Context, owner account.Account, metadata *record.ContractMetadata) (interface{}, error) {
	trx := ctx.Transaction()
	pools := ctx.Pools()

	if trx.Has(pools.State, stateKey) {
		return nil, fault.AlreadyInitialised
	}

	packed, err := metadata.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(pools.ContractMetadata, metadataKey, packed)

	s := &State{
		OwnerId:        owner,
		Prefixes:       DefaultPrefixes(pools),
		MintingEnabled: true,
		TokenCount:     0,
	}
	saveState(trx, pools, s)

	l.log.Infof("initialised  owner: %s  name: %q", owner, metadata.Name)
	return nil, nil
}
