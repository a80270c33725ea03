// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/nftledger/account"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	caller  account.Account
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// TLSConfig - client TLS settings, with a client certificate when
// both files are given
//
// the server certificate is self signed so it is not verified
func TLSConfig(certificateFile string, keyFile string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}
	if "" == certificateFile || "" == keyFile {
		return tlsConfig, nil
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFile, keyFile)
	if nil != err {
		return nil, err
	}
	tlsConfig.Certificates = []tls.Certificate{keyPair}
	return tlsConfig, nil
}

// NewClient - create a RPC connection to a nftledgerd
//
// a nil tlsConfig gives plain TCP
func NewClient(connect string, tlsConfig *tls.Config, caller account.Account, verbose bool, handle io.Writer) (*Client, error) {

	var conn net.Conn
	var err error
	if nil != tlsConfig {
		conn, err = tls.Dial("tcp", connect, tlsConfig)
	} else {
		conn, err = net.Dial("tcp", connect)
	}
	if err != nil {
		return nil, err
	}

	return newClient(conn, caller, verbose, handle), nil
}

func newClient(conn net.Conn, caller account.Account, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		caller:  caller,
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the nftledgerd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
