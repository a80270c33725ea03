// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/storage"
)

// Context - the environment seen by one invocation
type Context struct {
	db          *storage.Database
	trx         storage.Transaction
	predecessor account.Account
	current     account.Account
	deposit     *uint256.Int
	bytePrice   *uint256.Int
	view        bool
	logs        []string
	refund      *uint256.Int
	actions     []Action
}

// Pools - the storage pools of the ledger database
func (c *Context) Pools() *storage.Pools {
	return &c.db.Pool
}

// Transaction - the writes of this invocation
func (c *Context) Transaction() storage.Transaction {
	return c.trx
}

// Predecessor - the account that made the call
func (c *Context) Predecessor() account.Account {
	return c.predecessor
}

// CurrentAccount - the account of the contract itself
func (c *Context) CurrentAccount() account.Account {
	return c.current
}

// IsView - true if no writes will be committed
func (c *Context) IsView() bool {
	return c.view
}

// AttachedDeposit - funds sent with the call
func (c *Context) AttachedDeposit() *uint256.Int {
	return new(uint256.Int).Set(c.deposit)
}

// StorageByteCost - price of holding one byte
func (c *Context) StorageByteCost() *uint256.Int {
	return new(uint256.Int).Set(c.bytePrice)
}

// StorageUsage - bytes used by the contract including pending writes
func (c *Context) StorageUsage() uint64 {
	return c.trx.Usage()
}

// Log - append a line to the invocation log
func (c *Context) Log(line string) {
	c.logs = append(c.logs, line)
}

// Refund - return funds to the predecessor once the invocation commits
func (c *Context) Refund(amount *uint256.Int) {
	c.refund.Add(c.refund, amount)
}

// Schedule - queue an ordered action batch on the current account
//
// the actions run after the invocation commits
func (c *Context) Schedule(actions ...Action) {
	c.actions = append(c.actions, actions...)
}
