// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/record"
)

// List - fetch the committed token ids of an account
//
// ids are in byte order starting after start ("" for the beginning)
func (x *index) List(id account.Account, start record.TokenId, count int) ([]record.TokenId, error) {
	prefix := x.sets.Get(id.Bytes())
	if nil == prefix {
		return []record.TokenId{}, nil
	}

	cursor := x.members.NewPrefixCursor(prefix)
	if "" != start {
		cursor.Seek(append(start.Bytes(), 0x00))
	}

	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	ids := make([]record.TokenId, 0, len(items))
	for _, item := range items {
		ids = append(ids, record.TokenId(item.Key))
	}
	return ids, nil
}

// Supply - number of committed tokens in the set of an account
func (x *index) Supply(id account.Account) (int, error) {
	prefix := x.sets.Get(id.Bytes())
	if nil == prefix {
		return 0, nil
	}
	return x.members.NewPrefixCursor(prefix).Count()
}
