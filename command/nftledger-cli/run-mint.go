// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/nftledger/command/nftledger-cli/rpccalls"
	"github.com/bitmark-inc/nftledger/record"
)

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if err := requireCaller(m); nil != err {
		return err
	}

	receiver, err := checkAccount(c, "receiver")
	if nil != err {
		return err
	}

	deposit := c.String("deposit")
	if "" == deposit {
		return fmt.Errorf("deposit is required")
	}

	tokenMetadata := &record.TokenMetadata{}
	if s := c.String("metadata"); "" != s {
		if err := json.Unmarshal([]byte(s), tokenMetadata); nil != err {
			return fmt.Errorf("metadata: %s", err)
		}
	} else {
		if title := c.String("title"); "" != title {
			tokenMetadata.Title = &title
		}
		if media := c.String("media"); "" != media {
			tokenMetadata.Media = &media
		}
	}

	royalties, err := parseRoyalties(c.StringSlice("royalty"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "deposit: %s\n", deposit)
		fmt.Fprintf(m.e, "royalties: %d\n", len(royalties))
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	mintConfig := &rpccalls.MintData{
		Receiver:  receiver,
		Deposit:   deposit,
		Metadata:  tokenMetadata,
		Royalties: royalties,
	}

	response, err := client.Mint(mintConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
