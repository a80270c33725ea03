// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - account to token set indexes
//
// each index is two pools:
//
//	sets:    account                 → set prefix
//	members: set prefix ++ token id  → (empty)
//
// the set prefix is SHA3-256(account) so the members of different
// accounts never share a key range
package ownership

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/storage"
)

// Index - interface for an account to token set index
type Index interface {
	Insert(storage.Transaction, account.Account, record.TokenId)
	Contains(storage.Transaction, account.Account, record.TokenId) bool
	List(account.Account, record.TokenId, int) ([]record.TokenId, error)
	Supply(account.Account) (int, error)
}

type index struct {
	log     *logger.L
	sets    *storage.PoolHandle
	members *storage.PoolHandle
}

// New - create an index over a sets pool and a members pool
func New(name string, sets *storage.PoolHandle, members *storage.PoolHandle) Index {
	return &index{
		log:     logger.New(name),
		sets:    sets,
		members: members,
	}
}

// Insert - add a token to the set of an account
//
// the first insert for an account allocates its set prefix
func (x *index) Insert(trx storage.Transaction, id account.Account, tokenId record.TokenId) {
	prefix := trx.Get(x.sets, id.Bytes())
	if nil == prefix {
		h := id.Hash()
		prefix = h[:]
		trx.Put(x.sets, id.Bytes(), prefix)
		x.log.Debugf("new set: %s → %x", id, prefix)
	} else if account.HashLength != len(prefix) {
		logger.Panicf("ownership: %s: corrupt set prefix: %x", id, prefix)
	}

	trx.Put(x.members, memberKey(prefix, tokenId), []byte{})
}

// Contains - check set membership, including pending writes
func (x *index) Contains(trx storage.Transaction, id account.Account, tokenId record.TokenId) bool {
	prefix := trx.Get(x.sets, id.Bytes())
	if nil == prefix {
		return false
	}
	return trx.Has(x.members, memberKey(prefix, tokenId))
}

func memberKey(prefix []byte, tokenId record.TokenId) []byte {
	key := make([]byte, 0, len(prefix)+len(tokenId))
	key = append(key, prefix...)
	return append(key, tokenId.Bytes()...)
}
