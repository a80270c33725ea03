// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the NFT contract
//
// owns the root state, the token tables and the owner and creator
// indexes; every method runs inside a host invocation
package ledger

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/ownership"
	"github.com/bitmark-inc/nftledger/storage"
)

// method names
const (
	MethodNew                = "new"
	MethodNewDefaultMeta     = "new_default_meta"
	MethodMint               = "nft_mint"
	MethodSetStatusMinter    = "set_status_minter"
	MethodGetStatusMinter    = "get_status_minter"
	MethodSetOwnerAccount    = "set_owner_account"
	MethodGetOwnerId         = "get_owner_id"
	MethodUpdateMetadataIcon = "update_metadata_icon"
	MethodUpgrade            = "upgrade"
	MethodMigrate            = "migrate"
	MethodToken              = "nft_token"
	MethodTokensForOwner     = "nft_tokens_for_owner"
	MethodTokensForCreator   = "nft_tokens_for_creator"
	MethodSupplyForOwner     = "nft_supply_for_owner"
	MethodSupplyForCreator   = "nft_supply_for_creator"
	MethodTotalSupply        = "nft_total_supply"
	MethodMetadata           = "nft_metadata"
)

// maximum number of ids returned by a list query
const maximumListLimit = 100

type handler func(l *Ledger, ctx *host.Context, args []byte) (interface{}, error)

type method struct {
	payable bool
	run     handler
}

var methods = map[string]method{
	MethodNew:                {run: (*Ledger).initialise},
	MethodNewDefaultMeta:     {run: (*Ledger).initialiseDefault},
	MethodMint:               {payable: true, run: (*Ledger).mint},
	MethodSetStatusMinter:    {run: (*Ledger).setStatusMinter},
	MethodGetStatusMinter:    {run: (*Ledger).getStatusMinter},
	MethodSetOwnerAccount:    {run: (*Ledger).setOwnerAccount},
	MethodGetOwnerId:         {run: (*Ledger).getOwnerId},
	MethodUpdateMetadataIcon: {run: (*Ledger).updateMetadataIcon},
	MethodUpgrade:            {run: (*Ledger).upgrade},
	MethodMigrate:            {run: (*Ledger).migrate},
	MethodToken:              {run: (*Ledger).token},
	MethodTokensForOwner:     {run: (*Ledger).tokensForOwner},
	MethodTokensForCreator:   {run: (*Ledger).tokensForCreator},
	MethodSupplyForOwner:     {run: (*Ledger).supplyForOwner},
	MethodSupplyForCreator:   {run: (*Ledger).supplyForCreator},
	MethodTotalSupply:        {run: (*Ledger).totalSupply},
	MethodMetadata:           {run: (*Ledger).metadata},
}

// Ledger - the contract code
type Ledger struct {
	log      *logger.L
	owners   ownership.Index
	creators ownership.Index
}

// New - create the contract over a database
func New(db *storage.Database) *Ledger {
	return &Ledger{
		log:      logger.New("ledger"),
		owners:   ownership.New("owners", db.Pool.OwnerSets, db.Pool.OwnerTokens),
		creators: ownership.New("creators", db.Pool.CreatorSets, db.Pool.CreatorTokens),
	}
}

// Payable - true if the method accepts an attached deposit
func (l *Ledger) Payable(name string) bool {
	m, ok := methods[name]
	return ok && m.payable
}

// Dispatch - run a method
func (l *Ledger) Dispatch(ctx *host.Context, name string, args []byte) (interface{}, error) {
	m, ok := methods[name]
	if !ok {
		return nil, fault.UnknownMethod
	}
	l.log.Debugf("%s from: %s", name, ctx.Predecessor())
	return m.run(l, ctx, args)
}

// decode JSON arguments, an empty argument list is "{}"
func decodeArgs(args []byte, v interface{}) error {
	if 0 == len(args) {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); nil != err {
		if e, ok := err.(fault.InvalidError); ok {
			return e
		}
		return fault.MissingParameters
	}
	return nil
}

// only the recorded owner may continue
func (l *Ledger) assertOwner(ctx *host.Context, s *State) error {
	if ctx.Predecessor() != s.OwnerId {
		l.log.Warnf("not owner: %s", ctx.Predecessor())
		return fault.NotAuthorized
	}
	return nil
}
