// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/counter"
	"github.com/bitmark-inc/nftledger/rpc/nft"
	"github.com/bitmark-inc/nftledger/rpc/node"
	"github.com/bitmark-inc/nftledger/storage"
)

// Services - what the RPC services run against
type Services struct {
	Executor nft.Executor
	Database *storage.Database
	Contract account.Account
	Digest   func() []byte
}

// Factory - builds servers that share the service rate limits
type Factory struct {
	ledger *nft.Ledger
	node   *node.Node
}

// NewFactory - prepare the Ledger and Node services
func NewFactory(log *logger.L, version string, rpcCount *counter.Counter, services Services) *Factory {
	start := time.Now().UTC()

	return &Factory{
		ledger: nft.New(log, services.Executor),
		node:   node.New(log, services.Database, services.Contract, services.Digest, start, version, rpcCount),
	}
}

// Create - a server whose state changing calls are made by caller
//
// an empty caller leaves the caller to each request
func (f *Factory) Create(caller account.Account) *rpc.Server {
	ledger := *f.ledger
	ledger.Caller = caller

	server := rpc.NewServer()

	_ = server.Register(&ledger)
	_ = server.Register(f.node)

	return server
}

// Create - a server with the Ledger and Node services
func Create(log *logger.L, version string, rpcCount *counter.Counter, services Services) *rpc.Server {
	return NewFactory(log, version, rpcCount, services).Create("")
}
