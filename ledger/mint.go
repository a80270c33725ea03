// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/events"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/record"
)

// MaximumRoyaltyRecipients - royalties must have fewer entries than this
//
// only the number of recipients is limited, not the sum of their shares
const MaximumRoyaltyRecipients = 7

type mintArgs struct {
	Metadata           *record.TokenMetadata      `json:"metadata"`
	ReceiverId         *account.Account           `json:"receiver_id"`
	PerpetualRoyalties map[account.Account]uint32 `json:"perpetual_royalties"`
}

func (l *Ledger) mint(ctx *host.Context, args []byte) (interface{}, error) {
	var a mintArgs
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.Metadata || nil == a.ReceiverId {
		return nil, fault.MissingParameters
	}

	trx := ctx.Transaction()
	pools := ctx.Pools()

	s, err := loadState(trx, pools)
	if nil != err {
		return nil, err
	}
	if !s.MintingEnabled {
		return nil, fault.MintingDisabled
	}
	if len(a.PerpetualRoyalties) >= MaximumRoyaltyRecipients {
		return nil, fault.TooManyRoyaltyRecipients
	}

	s.TokenCount += 1
	tokenId := record.TokenIdFromSequence(s.TokenCount)
	saveState(trx, pools, s)

	initialUsage := ctx.StorageUsage()

	royalty := make(map[account.Account]uint32, len(a.PerpetualRoyalties))
	for k, v := range a.PerpetualRoyalties {
		royalty[k] = v
	}
	receiver := *a.ReceiverId
	token := record.NewToken(receiver, royalty)

	if trx.Has(pools.Tokens, tokenId.Bytes()) {
		l.log.Criticalf("mint: token: %s already exists", tokenId)
		panic(fault.DuplicateToken)
	}

	packedToken, err := token.Pack()
	if nil != err {
		return nil, err
	}
	packedMetadata, err := a.Metadata.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(pools.Tokens, tokenId.Bytes(), packedToken)
	trx.Put(pools.TokenMetadata, tokenId.Bytes(), packedMetadata)

	l.creators.Insert(trx, token.CreatorId, tokenId)
	l.owners.Insert(trx, token.OwnerId, tokenId)

	ctx.Log(events.MintDetail(record.NewJsonToken(tokenId, token, a.Metadata)).String())
	ctx.Log(events.Mint(token.OwnerId, []record.TokenId{tokenId}, nil).String())

	required := ctx.StorageUsage() - initialUsage
	if err := refundDeposit(ctx, required); nil != err {
		return nil, err
	}

	l.log.Infof("minted: %s  owner: %s  storage: %d bytes", tokenId, receiver, required)
	return tokenId, nil
}

// charge for storage growth and return any surplus
func refundDeposit(ctx *host.Context, storageUsed uint64) error {
	cost, overflow := new(uint256.Int).MulOverflow(ctx.StorageByteCost(), uint256.NewInt(storageUsed))
	if overflow {
		return fault.InsufficientStorageDeposit
	}

	deposit := ctx.AttachedDeposit()
	if deposit.Lt(cost) {
		return fault.InsufficientStorageDeposit
	}

	refund := new(uint256.Int).Sub(deposit, cost)
	if !refund.IsZero() {
		ctx.Refund(refund)
	}
	return nil
}
