// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/nftledger/account"
)

// JsonToken - the complete public view of a token
type JsonToken struct {
	TokenId            TokenId                    `json:"token_id"`
	OwnerId            account.Account            `json:"owner_id"`
	Metadata           *TokenMetadata             `json:"metadata"`
	CreatorId          account.Account            `json:"creator_id"`
	ApprovedAccountIds map[account.Account]uint64 `json:"approved_account_ids"`
	Royalty            map[account.Account]uint32 `json:"royalty"`
}

// NewJsonToken - combine a token and its metadata
func NewJsonToken(id TokenId, t *Token, m *TokenMetadata) *JsonToken {
	return &JsonToken{
		TokenId:            id,
		OwnerId:            t.OwnerId,
		Metadata:           m,
		CreatorId:          t.CreatorId,
		ApprovedAccountIds: t.ApprovedAccountIds,
		Royalty:            t.Royalty,
	}
}
