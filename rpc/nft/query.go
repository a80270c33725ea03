// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nft

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/ledger"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/ratelimit"
)

// Token
// -----

// TokenArguments - arguments for RPC
type TokenArguments struct {
	TokenId record.TokenId `json:"token_id"`
}

// TokenReply - result of token RPC, nil if not found
type TokenReply struct {
	Token *record.JsonToken `json:"token"`
}

// Token - one token with its metadata
func (l *Ledger) Token(arguments *TokenArguments, reply *TokenReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.TokenId {
		return fault.MissingParameters
	}
	value, _, err := l.view(ledger.MethodToken, map[string]interface{}{
		"token_id": arguments.TokenId,
	})
	if nil != err {
		return err
	}
	reply.Token, _ = value.(*record.JsonToken)
	return nil
}

// Lists
// -----

// TokensArguments - arguments for RPC
type TokensArguments struct {
	Account     account.Account `json:"account_id"`
	FromTokenId record.TokenId  `json:"from_token_id"` // exclusive, "" for first page
	Count       int             `json:"count"`
}

// TokensReply - result of tokens RPC
type TokensReply struct {
	Tokens []*record.JsonToken `json:"tokens"`
}

// TokensForOwner - page through the tokens of an owner
func (l *Ledger) TokensForOwner(arguments *TokensArguments, reply *TokensReply) error {
	return l.tokens(ledger.MethodTokensForOwner, arguments, reply)
}

// TokensForCreator - page through the tokens of a creator
func (l *Ledger) TokensForCreator(arguments *TokensArguments, reply *TokensReply) error {
	return l.tokens(ledger.MethodTokensForCreator, arguments, reply)
}

func (l *Ledger) tokens(method string, arguments *TokensArguments, reply *TokensReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}
	if err := ratelimit.LimitN(l.Limiter, arguments.Count, MaximumTokensCount); nil != err {
		return err
	}
	if err := arguments.Account.Validate(); nil != err {
		return err
	}

	value, _, err := l.view(method, map[string]interface{}{
		"account_id":    arguments.Account,
		"from_token_id": arguments.FromTokenId,
		"limit":         arguments.Count,
	})
	if nil != err {
		return err
	}
	reply.Tokens, _ = value.([]*record.JsonToken)
	return nil
}

// Supply
// ------

// SupplyArguments - arguments for RPC
type SupplyArguments struct {
	Account account.Account `json:"account_id"`
}

// SupplyReply - result of supply RPC, a decimal count
type SupplyReply struct {
	Supply string `json:"supply"`
}

// SupplyForOwner - number of tokens held by an account
func (l *Ledger) SupplyForOwner(arguments *SupplyArguments, reply *SupplyReply) error {
	return l.supply(ledger.MethodSupplyForOwner, arguments, reply)
}

// SupplyForCreator - number of tokens created by an account
func (l *Ledger) SupplyForCreator(arguments *SupplyArguments, reply *SupplyReply) error {
	return l.supply(ledger.MethodSupplyForCreator, arguments, reply)
}

func (l *Ledger) supply(method string, arguments *SupplyArguments, reply *SupplyReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}
	if err := arguments.Account.Validate(); nil != err {
		return err
	}
	value, _, err := l.view(method, map[string]interface{}{
		"account_id": arguments.Account,
	})
	if nil != err {
		return err
	}
	reply.Supply, _ = value.(string)
	return nil
}

// TotalSupply - number of tokens minted
func (l *Ledger) TotalSupply(arguments *EmptyArguments, reply *SupplyReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	value, _, err := l.view(ledger.MethodTotalSupply, nil)
	if nil != err {
		return err
	}
	reply.Supply, _ = value.(string)
	return nil
}

// Metadata
// --------

// MetadataReply - result of metadata RPC
type MetadataReply struct {
	Metadata *record.ContractMetadata `json:"metadata"`
}

// Metadata - the contract metadata
func (l *Ledger) Metadata(arguments *EmptyArguments, reply *MetadataReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	value, _, err := l.view(ledger.MethodMetadata, nil)
	if nil != err {
		return err
	}
	reply.Metadata, _ = value.(*record.ContractMetadata)
	return nil
}
