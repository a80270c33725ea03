// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package events - log lines for external indexers
//
// every line is the marker "EVENT_JSON:" followed by a JSON object
package events

import (
	"encoding/json"
	"strings"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/record"
)

// standard identification carried by every event
const (
	StandardName = "nep171"
	Version      = "nft-1.0.0"
)

// Prefix - marks a log line as an event
const Prefix = "EVENT_JSON:"

// event kinds
const (
	KindMint       = "nft_mint"
	KindMintDetail = "NftMintInt"
)

// Log - an event envelope
type Log struct {
	Standard string      `json:"standard"`
	Version  string      `json:"version"`
	Event    string      `json:"event"`
	Data     interface{} `json:"data"`
}

// MintLog - one entry of a standard mint event
type MintLog struct {
	OwnerId  account.Account  `json:"owner_id"`
	TokenIds []record.TokenId `json:"token_ids"`
	Memo     *string          `json:"memo,omitempty"`
}

// detail carried by the diagnostic mint event
type mintDetail struct {
	Type   string            `json:"type"`
	Params *record.JsonToken `json:"params"`
}

// String - the log line for the event
func (l Log) String() string {
	buffer, err := json.Marshal(l)
	if nil != err {
		// only plain data is ever logged
		panic(err)
	}
	return Prefix + string(buffer)
}

// Mint - the standard event listing the owner and minted ids
func Mint(owner account.Account, ids []record.TokenId, memo *string) Log {
	return Log{
		Standard: StandardName,
		Version:  Version,
		Event:    KindMint,
		Data: []MintLog{
			{
				OwnerId:  owner,
				TokenIds: ids,
				Memo:     memo,
			},
		},
	}
}

// MintDetail - the diagnostic event carrying the full token view
func MintDetail(token *record.JsonToken) Log {
	return Log{
		Standard: StandardName,
		Version:  Version,
		Event:    KindMintDetail,
		Data: mintDetail{
			Type:   "NftMint",
			Params: token,
		},
	}
}

// Parse - decode an event line
//
// returns false for lines that are not events
func Parse(line string) (*Log, bool) {
	if !strings.HasPrefix(line, Prefix) {
		return nil, false
	}
	var raw struct {
		Standard string          `json:"standard"`
		Version  string          `json:"version"`
		Event    string          `json:"event"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(line[len(Prefix):]), &raw); nil != err {
		return nil, false
	}
	return &Log{
		Standard: raw.Standard,
		Version:  raw.Version,
		Event:    raw.Event,
		Data:     raw.Data,
	}, true
}
