// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/node"
)

type statusReply struct {
	Node           *node.InfoReply          `json:"node"`
	Connection     string                   `json:"connection"`
	Metadata       *record.ContractMetadata `json:"metadata,omitempty"`
	TotalSupply    string                   `json:"totalSupply,omitempty"`
	MintingEnabled bool                     `json:"mintingEnabled"`
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}

	response := statusReply{
		Node:       info,
		Connection: m.connect,
	}

	// an uninitialised contract still has node status
	if metadata, err := client.GetMetadata(); nil == err {
		response.Metadata = metadata.Metadata
	}
	if supply, err := client.GetTotalSupply(); nil == err {
		response.TotalSupply = supply.Supply
	}
	if status, err := client.GetMinting(); nil == err {
		response.MintingEnabled = status.Enabled
	}

	printJson(m.w, response)

	return nil
}
