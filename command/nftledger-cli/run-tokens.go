// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/command/nftledger-cli/rpccalls"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/nft"
)

func runToken(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	tokenId := c.String("id")
	if "" == tokenId {
		return fmt.Errorf("token id is required")
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetToken(record.TokenId(tokenId))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runOwnerTokens(c *cli.Context) error {
	return listTokens(c, (*rpccalls.Client).GetOwnerTokens)
}

func runCreatorTokens(c *cli.Context) error {
	return listTokens(c, (*rpccalls.Client).GetCreatorTokens)
}

func listTokens(c *cli.Context, list func(*rpccalls.Client, *rpccalls.TokensData) (*nft.TokensReply, error)) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := account.Account(c.String("account"))
	if "" == owner {
		owner = m.caller
		if "" == owner {
			return fmt.Errorf("account is required")
		}
	}
	if err := owner.Validate(); nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	from := record.TokenId(c.String("from"))

	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", owner)
		fmt.Fprintf(m.e, "from: %q\n", from)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	tokensConfig := &rpccalls.TokensData{
		Account: owner,
		From:    from,
		Count:   count,
	}

	response, err := list(client, tokensConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
