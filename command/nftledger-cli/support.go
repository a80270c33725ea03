// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/command/nftledger-cli/rpccalls"
)

// connect as the caller
func newClient(m *metadata) (*rpccalls.Client, error) {
	var tlsConfig *tls.Config
	if m.useTLS {
		var err error
		tlsConfig, err = rpccalls.TLSConfig(m.certificate, m.key)
		if nil != err {
			return nil, err
		}
	}
	return rpccalls.NewClient(m.connect, tlsConfig, m.caller, m.verbose, m.e)
}

// commands that change state need a caller
func requireCaller(m *metadata) error {
	if "" == m.caller {
		return fmt.Errorf("caller is required")
	}
	return nil
}

// a required account flag
func checkAccount(c *cli.Context, name string) (account.Account, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return "", fmt.Errorf("%s is required", name)
	}
	return account.New(s)
}

// ACCOUNT:BASIS_POINTS items
func parseRoyalties(items []string) (map[account.Account]uint32, error) {
	if 0 == len(items) {
		return nil, nil
	}
	royalties := make(map[account.Account]uint32)
	for _, item := range items {
		s := strings.Split(item, ":")
		if 2 != len(s) {
			return nil, fmt.Errorf("royalty: %q is not ACCOUNT:BASIS_POINTS", item)
		}
		a, err := account.New(s[0])
		if nil != err {
			return nil, fmt.Errorf("royalty: %q error: %s", item, err)
		}
		n, err := strconv.ParseUint(s[1], 10, 32)
		if nil != err {
			return nil, fmt.Errorf("royalty: %q error: %s", item, err)
		}
		royalties[a] = uint32(n)
	}
	return royalties, nil
}
