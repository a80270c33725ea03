// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/nft"
)

// MintData - parameters of a mint
type MintData struct {
	Receiver  account.Account
	Deposit   string
	Metadata  *record.TokenMetadata
	Royalties map[account.Account]uint32
}

// Mint - create one token
func (client *Client) Mint(mintConfig *MintData) (*nft.MintReply, error) {

	args := nft.MintArguments{
		Caller:             client.caller,
		Deposit:            mintConfig.Deposit,
		ReceiverId:         &mintConfig.Receiver,
		Metadata:           mintConfig.Metadata,
		PerpetualRoyalties: mintConfig.Royalties,
	}

	client.printJson("Mint Request", args)

	var reply nft.MintReply
	if err := client.client.Call("Ledger.Mint", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("Mint Reply", reply)

	return &reply, nil
}
