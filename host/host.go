// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - runs contract invocations against the ledger database
//
// invocations are serialised and each one commits all of its writes
// or none of them
package host

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/storage"
)

// Contract - the code run by the host
type Contract interface {
	Payable(method string) bool
	Dispatch(ctx *Context, method string, args []byte) (interface{}, error)
}

// Refunder - returns funds to an account
type Refunder interface {
	Refund(to account.Account, amount *uint256.Int) error
}

// Sink - receives the log lines of committed invocations
type Sink interface {
	Publish(lines []string)
}

// Invocation - one call to the contract
type Invocation struct {
	Method      string
	Predecessor account.Account
	Deposit     *uint256.Int
	Args        []byte
}

// Outcome - the result of a successful invocation
type Outcome struct {
	Value     interface{}
	Logs      []string
	Refund    *uint256.Int
	ActionErr error
}

// Host - the execution environment of one contract account
type Host struct {
	sync.Mutex

	log       *logger.L
	db        *storage.Database
	current   account.Account
	bytePrice *uint256.Int
	contract  Contract
	refunder  Refunder
	sink      Sink
	nextEvent uint64
}

// New - create a host for a contract
func New(db *storage.Database, current account.Account, bytePrice *uint256.Int, contract Contract, refunder Refunder, sink Sink) (*Host, error) {
	if err := current.Validate(); nil != err {
		return nil, err
	}

	n, err := db.Pool.Events.NewFetchCursor().Count()
	if nil != err {
		return nil, err
	}

	return &Host{
		log:       logger.New("host"),
		db:        db,
		current:   current,
		bytePrice: new(uint256.Int).Set(bytePrice),
		contract:  contract,
		refunder:  refunder,
		sink:      sink,
		nextEvent: uint64(n),
	}, nil
}

// CurrentAccount - the account the contract runs as
func (h *Host) CurrentAccount() account.Account {
	return h.current
}

// Execute - run one invocation to completion
//
// any scheduled actions run after the invocation has committed
func (h *Host) Execute(inv Invocation) (*Outcome, error) {
	h.Lock()
	defer h.Unlock()

	outcome, err := h.run(inv)
	if nil != err {
		return nil, err
	}
	return outcome, nil
}

// View - run a method whose writes are always discarded
func (h *Host) View(method string, args []byte) (interface{}, []string, error) {
	h.Lock()
	defer h.Unlock()

	trx, err := h.db.Begin()
	if nil != err {
		return nil, nil, err
	}
	defer trx.Abort()

	ctx := h.newContext(trx, h.current, uint256.NewInt(0))
	ctx.view = true

	value, err := h.dispatch(ctx, method, args)
	if nil != err {
		return nil, nil, err
	}
	return value, ctx.logs, nil
}

// must hold the host lock
func (h *Host) run(inv Invocation) (*Outcome, error) {
	deposit := inv.Deposit
	if nil == deposit {
		deposit = uint256.NewInt(0)
	}

	value, ctx, err := h.commit(inv, deposit)
	if nil != err {
		h.log.Warnf("%s from: %s  failed: %s", inv.Method, inv.Predecessor, err)
		if !deposit.IsZero() {
			h.refund(inv.Predecessor, deposit)
		}
		return nil, err
	}

	if len(ctx.logs) > 0 && nil != h.sink {
		h.sink.Publish(ctx.logs)
	}
	if !ctx.refund.IsZero() {
		h.refund(inv.Predecessor, ctx.refund)
	}

	outcome := &Outcome{
		Value:  value,
		Logs:   ctx.logs,
		Refund: ctx.refund,
	}
	if len(ctx.actions) > 0 {
		outcome.ActionErr = h.runActions(ctx.actions)
	}
	return outcome, nil
}

// dispatch inside a transaction, commit only on success
func (h *Host) commit(inv Invocation, deposit *uint256.Int) (interface{}, *Context, error) {
	if !deposit.IsZero() && !h.contract.Payable(inv.Method) {
		return nil, nil, fault.NotPayable
	}
	if err := inv.Predecessor.Validate(); nil != err {
		return nil, nil, err
	}

	trx, err := h.db.Begin()
	if nil != err {
		return nil, nil, err
	}

	ctx := h.newContext(trx, inv.Predecessor, deposit)

	value, err := h.dispatch(ctx, inv.Method, inv.Args)
	if nil != err {
		trx.Abort()
		return nil, nil, err
	}

	n := h.nextEvent
	for _, line := range ctx.logs {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, n)
		trx.Put(h.db.Pool.Events, key, []byte(line))
		n += 1
	}

	err = trx.Commit()
	if nil != err {
		h.log.Criticalf("%s: commit error: %s", inv.Method, err)
		return nil, nil, err
	}
	h.nextEvent = n

	h.log.Debugf("%s from: %s  committed  usage: %d", inv.Method, inv.Predecessor, h.db.Usage())
	return value, ctx, nil
}

// call the contract turning any panic into an error
func (h *Host) dispatch(ctx *Context, method string, args []byte) (value interface{}, err error) {
	defer func() {
		if r := recover(); nil != r {
			h.log.Errorf("%s: aborted: %v", method, r)
			value = nil
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	return h.contract.Dispatch(ctx, method, args)
}

func (h *Host) newContext(trx storage.Transaction, predecessor account.Account, deposit *uint256.Int) *Context {
	return &Context{
		db:          h.db,
		trx:         trx,
		predecessor: predecessor,
		current:     h.current,
		deposit:     deposit,
		bytePrice:   h.bytePrice,
		refund:      uint256.NewInt(0),
	}
}

func (h *Host) refund(to account.Account, amount *uint256.Int) {
	if nil == h.refunder {
		return
	}
	err := h.refunder.Refund(to, new(uint256.Int).Set(amount))
	if nil != err {
		h.log.Errorf("refund: %s to: %s  error: %s", amount.Dec(), to, err)
	}
}
