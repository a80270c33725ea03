// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Transaction - all writes of one invocation, committed atomically
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Usage() uint64
	Commit() error
	Abort()
}

type transaction struct {
	d         *Database
	committed uint64
	delta     int64
	finished  bool
}

func newTransaction(d *Database, committed uint64) *transaction {
	return &transaction{
		d:         d,
		committed: committed,
	}
}

// bytes charged for holding one record
func (t *transaction) cost(p *PoolHandle, key []byte, value []byte) int64 {
	if p.unmetered {
		return 0
	}
	return int64(len(key) + len(value) + int(t.d.overhead))
}

// Put - store a key/value bytes pair
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	if t.finished {
		logger.Panicf("pool.Put: %s on finished transaction", p.name)
	}
	k := p.prefixKey(key)
	old, err := t.d.access.Get(k)
	logger.PanicIfError("pool.Put", err)
	if nil != old {
		t.delta -= t.cost(p, k, old)
	}
	t.delta += t.cost(p, k, value)
	t.d.access.Put(k, value)
}

// Delete - remove a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	if t.finished {
		logger.Panicf("pool.Delete: %s on finished transaction", p.name)
	}
	k := p.prefixKey(key)
	old, err := t.d.access.Get(k)
	logger.PanicIfError("pool.Delete", err)
	if nil == old {
		return
	}
	t.delta -= t.cost(p, k, old)
	t.d.access.Delete(k)
}

// Get - read a value, including pending writes
//
// returns nil if not found
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	value, err := t.d.access.Get(p.prefixKey(key))
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists, including pending writes
func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	found, err := t.d.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return found
}

// Usage - storage usage in bytes as if the transaction were committed
func (t *transaction) Usage() uint64 {
	u := int64(t.committed) + t.delta
	if u < 0 {
		return 0
	}
	return uint64(u)
}

// Commit - write all pending data and the new usage counter
func (t *transaction) Commit() error {
	if t.finished {
		return nil
	}
	usage := make([]byte, 8)
	binary.BigEndian.PutUint64(usage, t.Usage())
	t.d.access.Put(usageKey, usage)

	err := t.d.access.Commit()
	t.finish()
	return err
}

// Abort - discard all pending data
func (t *transaction) Abort() {
	if t.finished {
		return
	}
	t.finish()
}

func (t *transaction) finish() {
	t.finished = true
	t.d.access.Abort()
	t.d.release()
}
