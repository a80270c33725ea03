// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - the Node RPC service: daemon status
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/counter"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/mode"
	"github.com/bitmark-inc/nftledger/rpc/ratelimit"
	"github.com/bitmark-inc/nftledger/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	Contract account.Account
	Database *storage.Database
	Digest   func() []byte
	counter  *counter.Counter
}

// New - create the RPC service
//
// digest returns the hash of the deployed code or nil
func New(log *logger.L, db *storage.Database, contract account.Account, digest func() []byte, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		Contract: contract,
		Database: db,
		Digest:   digest,
		counter:  counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Contract     account.Account `json:"contract"`
	StorageUsage uint64          `json:"storageUsage"`
	CodeDigest   []byte          `json:"codeDigest"`
	RPCs         uint64          `json:"rpcs"`
	Mode         string          `json:"mode"`
	Version      string          `json:"version"`
	Uptime       string          `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	if nil == node.Database {
		return fault.DatabaseIsNotSet
	}

	reply.Contract = node.Contract
	reply.StorageUsage = node.Database.Usage()
	if nil != node.Digest {
		reply.CodeDigest = node.Digest()
	}
	reply.RPCs = node.counter.Uint64()
	reply.Mode = mode.String()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
