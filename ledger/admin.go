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
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/storage"
)

func (l *Ledger) setStatusMinter(ctx *host.Context, args []byte) (interface{}, error) {
	var a struct {
		NewStatus *bool `json:"new_status"`
	}
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.NewStatus {
		return nil, fault.MissingParameters
	}

	s, err := loadState(ctx.Transaction(), ctx.Pools())
	if nil != err {
		return nil, err
	}
	if err := l.assertOwner(ctx, s); nil != err {
		return nil, err
	}

	s.MintingEnabled = *a.NewStatus
	saveState(ctx.Transaction(), ctx.Pools(), s)
	ctx.Log(strconv.FormatBool(s.MintingEnabled))
	return s.MintingEnabled, nil
}

func (l *Ledger) getStatusMinter(ctx *host.Context, args []byte) (interface{}, error) {
	s, err := loadState(ctx.Transaction(), ctx.Pools())
	if nil != err {
		return nil, err
	}
	ctx.Log(strconv.FormatBool(s.MintingEnabled))
	return s.MintingEnabled, nil
}

func (l *Ledger) setOwnerAccount(ctx *host.Context, args []byte) (interface{}, error) {
	var a struct {
		NewAccount *account.Account `json:"new_account"`
	}
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.NewAccount {
		return nil, fault.MissingParameters
	}

	s, err := loadState(ctx.Transaction(), ctx.Pools())
	if nil != err {
		return nil, err
	}
	if err := l.assertOwner(ctx, s); nil != err {
		return nil, err
	}

	l.log.Infof("owner: %s → %s", s.OwnerId, *a.NewAccount)
	s.OwnerId = *a.NewAccount
	saveState(ctx.Transaction(), ctx.Pools(), s)
	ctx.Log(s.OwnerId.String())
	return s.OwnerId, nil
}

func (l *Ledger) getOwnerId(ctx *host.Context, args []byte) (interface{}, error) {
	s, err := loadState(ctx.Transaction(), ctx.Pools())
	if nil != err {
		return nil, err
	}
	ctx.Log(s.OwnerId.String())
	return s.OwnerId, nil
}

func (l *Ledger) updateMetadataIcon(ctx *host.Context, args []byte) (interface{}, error) {
	var a struct {
		Icon *string `json:"icon"`
	}
	if err := decodeArgs(args, &a); nil != err {
		return nil, err
	}
	if nil == a.Icon {
		return nil, fault.MissingParameters
	}

	trx := ctx.Transaction()
	pools := ctx.Pools()

	s, err := loadState(trx, pools)
	if nil != err {
		return nil, err
	}
	if err := l.assertOwner(ctx, s); nil != err {
		return nil, err
	}

	m, err := readContractMetadata(trx, pools)
	if nil != err {
		return nil, err
	}
	m.Icon = a.Icon

	packed, err := m.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(pools.ContractMetadata, metadataKey, packed)
	return nil, nil
}

// contract metadata including pending writes
func readContractMetadata(trx storage.Transaction, pools *storage.Pools) (*record.ContractMetadata, error) {
	buffer := trx.Get(pools.ContractMetadata, metadataKey)
	if nil == buffer {
		return nil, fault.NotInitialised
	}
	m, err := record.UnpackContractMetadata(buffer)
	if nil != err {
		logger.Criticalf("contract metadata: %x  error: %s", buffer, err)
		return nil, fault.CorruptOrWrongSchema
	}
	return m, nil
}
