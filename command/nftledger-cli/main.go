// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/nftledger/account"
)

type metadata struct {
	connect     string
	useTLS      bool
	certificate string
	key         string
	caller      account.Account
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "nftledger-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " nftledgerd host/IP and port, `HOST:PORT`",
			EnvVar: "NFTLEDGER_CONNECT",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " connect using TLS",
		},
		cli.StringFlag{
			Name:   "certificate, C",
			Value:  "",
			Usage:  " client certificate, implies TLS `FILE`",
			EnvVar: "NFTLEDGER_CERTIFICATE",
		},
		cli.StringFlag{
			Name:   "key, K",
			Value:  "",
			Usage:  " client certificate private key `FILE`",
			EnvVar: "NFTLEDGER_KEY",
		},
		cli.StringFlag{
			Name:   "caller, a",
			Value:  "",
			Usage:  " account making the call `ACCOUNT`",
			EnvVar: "NFTLEDGER_CALLER",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "mint",
			Usage:     "mint a new token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*account to receive the token `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "deposit, d",
					Value: "",
					Usage: "*storage deposit in smallest units `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "title, T",
					Value: "",
					Usage: " token title `STRING`",
				},
				cli.StringFlag{
					Name:  "media, m",
					Value: "",
					Usage: " token media URL `URL`",
				},
				cli.StringFlag{
					Name:  "metadata, M",
					Value: "",
					Usage: " complete token metadata `JSON`, overrides title and media",
				},
				cli.StringSliceFlag{
					Name:  "royalty, R",
					Usage: " perpetual royalty `ACCOUNT:BASIS_POINTS`, repeatable",
				},
			},
			Action: runMint,
		},
		{
			Name:      "token",
			Usage:     "show one token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*token id `ID`",
				},
			},
			Action: runToken,
		},
		{
			Name:      "owner-tokens",
			Usage:     "list tokens held by an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     listFlags(),
			Action:    runOwnerTokens,
		},
		{
			Name:      "creator-tokens",
			Usage:     "list tokens minted by an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     listFlags(),
			Action:    runCreatorTokens,
		},
		{
			Name:      "set-minting",
			Usage:     "enable or disable minting (owner only)",
			ArgsUsage: "on|off",
			Action:    runSetMinting,
		},
		{
			Name:      "set-owner",
			Usage:     "change the contract owner (owner only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*new owner `ACCOUNT`",
				},
			},
			Action: runSetOwner,
		},
		{
			Name:      "set-icon",
			Usage:     "replace the contract icon (owner only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "icon, i",
					Value: "",
					Usage: "*icon data URI `URI`",
				},
			},
			Action: runSetIcon,
		},
		{
			Name:      "upgrade",
			Usage:     "deploy new code and migrate the state (owner only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` of contract code",
				},
			},
			Action: runUpgrade,
		},
		{
			Name:   "status",
			Usage:  "display nftledgerd status",
			Action: runStatus,
		},
		{
			Name:  "version",
			Usage: "display nftledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("connect: missing host:port")
		}

		caller := account.Account(c.GlobalString("caller"))
		if "" != caller {
			if err := caller.Validate(); nil != err {
				return fmt.Errorf("caller: %q error: %s", caller, err)
			}
		}

		certificate := c.GlobalString("certificate")
		key := c.GlobalString("key")
		if ("" == certificate) != ("" == key) {
			return fmt.Errorf("certificate and key must be given together")
		}

		if verbose {
			fmt.Fprintf(e, "connect: %s\n", connect)
			fmt.Fprintf(e, "caller: %s\n", caller)
		}

		c.App.Metadata["config"] = &metadata{
			connect:     connect,
			useTLS:      c.GlobalBool("tls") || "" != certificate,
			certificate: certificate,
			key:         key,
			caller:      caller,
			verbose:     verbose,
			e:           e,
			w:           w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "account, o",
			Value: "",
			Usage: " account `ACCOUNT` default is the caller",
		},
		cli.StringFlag{
			Name:  "from, s",
			Value: "",
			Usage: " list after this token `ID`",
		},
		cli.IntFlag{
			Name:  "count, n",
			Value: 20,
			Usage: " maximum records to output `COUNT`",
		},
	}
}
