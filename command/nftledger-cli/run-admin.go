// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"
)

func runSetMinting(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if err := requireCaller(m); nil != err {
		return err
	}

	enabled := false
	switch c.Args().First() {
	case "on", "enable", "true":
		enabled = true
	case "off", "disable", "false":
	default:
		return fmt.Errorf("set-minting requires: on|off")
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SetMinting(enabled)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runSetOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if err := requireCaller(m); nil != err {
		return err
	}

	newOwner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SetOwner(newOwner)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runSetIcon(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if err := requireCaller(m); nil != err {
		return err
	}

	icon := c.String("icon")
	if "" == icon {
		return fmt.Errorf("icon is required")
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SetIcon(icon)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runUpgrade(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if err := requireCaller(m); nil != err {
		return err
	}

	fileName := c.String("file")
	if "" == fileName {
		return fmt.Errorf("file is required")
	}

	code, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "code: %d bytes\n", len(code))
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Upgrade(code)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	if !response.Migrated {
		return fmt.Errorf("code deployed but migration failed: %s", response.Error)
	}
	return nil
}
