// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/nftledger/fault"
)

// FetchCursor - cursor structure
//
// a cursor reads committed data only
type FetchCursor struct {
	pool     *PoolHandle
	strip    int
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool:  p,
		strip: 1,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// NewPrefixCursor - initialise a cursor over the keys starting with
// keyPrefix, the returned keys have keyPrefix removed
func (p *PoolHandle) NewPrefixCursor(keyPrefix []byte) *FetchCursor {
	r := util.BytesPrefix(p.prefixKey(keyPrefix))
	return &FetchCursor{
		pool:     p,
		strip:    1 + len(keyPrefix),
		maxRange: *r,
	}
}

// Seek - move cursor to specific key position
//
// the key is relative to the cursor prefix
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	start := make([]byte, 0, cursor.strip+len(key))
	start = append(start, cursor.maxRange.Start[:cursor.strip]...)
	cursor.maxRange.Start = append(start, key...)
	return cursor
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	iter := cursor.pool.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	var last []byte
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		last = append(last[:0], key...)

		results = append(results, cursor.element(key, value))
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	// the smallest key after the last one returned
	if nil != last {
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if cursor == nil {
		return fault.InvalidCursor
	}

	iter := cursor.pool.db.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {
		e := cursor.element(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if err != nil {
			break iterating
		}
	}
	iter.Release()
	if err == nil {
		err = iter.Error()
	}
	return err
}

// Count - number of elements in the range
func (cursor *FetchCursor) Count() (int, error) {
	if cursor == nil {
		return 0, fault.InvalidCursor
	}

	iter := cursor.pool.db.NewIterator(&cursor.maxRange, nil)
	n := 0
	for iter.Next() {
		n += 1
	}
	iter.Release()
	return n, iter.Error()
}

// copy out of the iterator and strip the prefix
func (cursor *FetchCursor) element(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-cursor.strip)
	copy(dataKey, key[cursor.strip:])

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
