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

// TokensData - one page of an owner or creator listing
type TokensData struct {
	Account account.Account
	From    record.TokenId
	Count   int
}

// GetToken - fetch one token
func (client *Client) GetToken(tokenId record.TokenId) (*nft.TokenReply, error) {
	args := nft.TokenArguments{
		TokenId: tokenId,
	}

	var reply nft.TokenReply
	if err := client.client.Call("Ledger.Token", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetOwnerTokens - tokens held by an account
func (client *Client) GetOwnerTokens(tokensConfig *TokensData) (*nft.TokensReply, error) {
	return client.tokens("Ledger.TokensForOwner", tokensConfig)
}

// GetCreatorTokens - tokens minted by an account
func (client *Client) GetCreatorTokens(tokensConfig *TokensData) (*nft.TokensReply, error) {
	return client.tokens("Ledger.TokensForCreator", tokensConfig)
}

func (client *Client) tokens(method string, tokensConfig *TokensData) (*nft.TokensReply, error) {
	args := nft.TokensArguments{
		Account:     tokensConfig.Account,
		FromTokenId: tokensConfig.From,
		Count:       tokensConfig.Count,
	}

	client.printJson(method+" Request", args)

	var reply nft.TokensReply
	if err := client.client.Call(method, &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetMetadata - the contract metadata
func (client *Client) GetMetadata() (*nft.MetadataReply, error) {
	var reply nft.MetadataReply
	if err := client.client.Call("Ledger.Metadata", &nft.EmptyArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetTotalSupply - number of minted tokens
func (client *Client) GetTotalSupply() (*nft.SupplyReply, error) {
	var reply nft.SupplyReply
	if err := client.client.Call("Ledger.TotalSupply", &nft.EmptyArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
