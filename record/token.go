// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strconv"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
)

// TokenId - decimal identifier of a token
type TokenId string

// TokenIdFromSequence - the identifier for a sequence number
func TokenIdFromSequence(n uint64) TokenId {
	return TokenId(strconv.FormatUint(n, 10))
}

// Bytes - the identifier as a byte slice
func (id TokenId) Bytes() []byte {
	return []byte(id)
}

// String - the identifier
func (id TokenId) String() string {
	return string(id)
}

// Token - ownership record of a single token
type Token struct {
	OwnerId            account.Account            `json:"owner_id"`
	CreatorId          account.Account            `json:"creator_id"`
	NextApprovalId     uint64                     `json:"next_approval_id"`
	ApprovedAccountIds map[account.Account]uint64 `json:"approved_account_ids"`
	Royalty            map[account.Account]uint32 `json:"royalty"`
}

// NewToken - a freshly minted token owned by its creator
func NewToken(creator account.Account, royalty map[account.Account]uint32) *Token {
	if nil == royalty {
		royalty = make(map[account.Account]uint32)
	}
	return &Token{
		OwnerId:            creator,
		CreatorId:          creator,
		NextApprovalId:     0,
		ApprovedAccountIds: make(map[account.Account]uint64),
		Royalty:            royalty,
	}
}

// Pack - pack a token record
func (t *Token) Pack() (Packed, error) {
	if err := t.OwnerId.Validate(); nil != err {
		return nil, err
	}
	if err := t.CreatorId.Validate(); nil != err {
		return nil, err
	}

	p := newPacker(TokenTag)
	p.string(t.OwnerId.String())
	p.string(t.CreatorId.String())
	p.number(t.NextApprovalId)
	p.accountMap(t.ApprovedAccountIds)
	p.royaltyMap(t.Royalty)
	return p.buffer, nil
}

// UnpackToken - unpack a record that must be a token
func UnpackToken(buffer []byte) (*Token, error) {
	r, _, err := Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	t, ok := r.(*Token)
	if !ok {
		return nil, fault.NotPackedRecord
	}
	return t, nil
}
