// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/ownership"
	"github.com/bitmark-inc/nftledger/record"
)

type listArgs struct {
	AccountId   *account.Account `json:"account_id"`
	FromTokenId record.TokenId   `json:"from_token_id"`
	Limit       *int             `json:"limit"`
}

type accountArgs struct {
	AccountId *account.Account `json:"account_id"`
}

// token view or nil
func (l *Ledger) token(ctx *host.Context, args []byte) (interface{}, error) {
	var a struct {
		TokenId *record.TokenId `json:"token_id"`
	}
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.TokenId {
		return nil, fault.MissingParameters
	}
	if _, err := loadState(ctx.Transaction(), ctx.Pools()); nil != err {
		return nil, err
	}

	view, err := readToken(ctx, *a.TokenId)
	if fault.TokenNotFound == err {
		return nil, nil
	}
	return view, err
}

// combine a token record with its metadata
func readToken(ctx *host.Context, tokenId record.TokenId) (*record.JsonToken, error) {
	trx := ctx.Transaction()
	pools := ctx.Pools()

	packedToken := trx.Get(pools.Tokens, tokenId.Bytes())
	if nil == packedToken {
		return nil, fault.TokenNotFound
	}
	token, err := record.UnpackToken(packedToken)
	if nil != err {
		logger.Criticalf("token: %s  record: %x  error: %s", tokenId, packedToken, err)
		return nil, err
	}

	metadata := &record.TokenMetadata{}
	packedMetadata := trx.Get(pools.TokenMetadata, tokenId.Bytes())
	if nil != packedMetadata {
		metadata, err = record.UnpackTokenMetadata(packedMetadata)
		if nil != err {
			logger.Criticalf("token: %s  metadata: %x  error: %s", tokenId, packedMetadata, err)
			return nil, err
		}
	}
	return record.NewJsonToken(tokenId, token, metadata), nil
}

func (l *Ledger) tokensForOwner(ctx *host.Context, args []byte) (interface{}, error) {
	return l.list(ctx, args, l.owners)
}

func (l *Ledger) tokensForCreator(ctx *host.Context, args []byte) (interface{}, error) {
	return l.list(ctx, args, l.creators)
}

func (l *Ledger) list(ctx *host.Context, args []byte, index ownership.Index) (interface{}, error) {
	var a listArgs
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.AccountId {
		return nil, fault.MissingParameters
	}
	limit := maximumListLimit
	if nil != a.Limit {
		if *a.Limit <= 0 {
			return nil, fault.InvalidCount
		}
		if *a.Limit < limit {
			limit = *a.Limit
		}
	}
	if _, err := loadState(ctx.Transaction(), ctx.Pools()); nil != err {
		return nil, err
	}

	ids, err := index.List(*a.AccountId, a.FromTokenId, limit)
	if nil != err {
		return nil, err
	}

	tokens := make([]*record.JsonToken, 0, len(ids))
	for _, id := range ids {
		view, err := readToken(ctx, id)
		if nil != err {
			return nil, err
		}
		tokens = append(tokens, view)
	}
	return tokens, nil
}

func (l *Ledger) supplyForOwner(ctx *host.Context, args []byte) (interface{}, error) {
	return l.supply(ctx, args, l.owners)
}

func (l *Ledger) supplyForCreator(ctx *host.Context, args []byte) (interface{}, error) {
	return l.supply(ctx, args, l.creators)
}

// counts are returned as decimal strings
func (l *Ledger) supply(ctx *host.Context, args []byte, index ownership.Index) (interface{}, error) {
	var a accountArgs
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.AccountId {
		return nil, fault.MissingParameters
	}
	if _, err := loadState(ctx.Transaction(), ctx.Pools()); nil != err {
		return nil, err
	}

	n, err := index.Supply(*a.AccountId)
	if nil != err {
		return nil, err
	}
	return strconv.Itoa(n), nil
}

func (l *Ledger) totalSupply(ctx *host.Context, args []byte) (interface{}, error) {
	if _, err := loadState(ctx.Transaction(), ctx.Pools()); nil != err {
		return nil, err
	}
	n, err := ctx.Pools().TokenMetadata.NewFetchCursor().Count()
	if nil != err {
		return nil, err
	}
	return strconv.Itoa(n), nil
}

func (l *Ledger) metadata(ctx *host.Context, args []byte) (interface{}, error) {
	if _, err := loadState(ctx.Transaction(), ctx.Pools()); nil != err {
		return nil, err
	}
	return readContractMetadata(ctx.Transaction(), ctx.Pools())
}
