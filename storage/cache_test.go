// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteThenRead(t *testing.T) {
	cache := newCache()

	key := "test"
	expected := []byte{'a', 'b', 'c', 'd'}

	_, _, found := cache.Get(key)
	assert.False(t, found, "key already exists")

	cache.Set(dbPut, key, expected)
	actual, op, found := cache.Get(key)
	assert.True(t, found, "key not found")
	assert.Equal(t, dbPut, op, "wrong operation")
	assert.Equal(t, expected, actual, "wrong value")
}

func TestSetCopiesValue(t *testing.T) {
	cache := newCache()

	data := []byte{'a', 'b'}
	cache.Set(dbPut, "test", data)
	data[0] = 'z'

	actual, _, _ := cache.Get("test")
	assert.Equal(t, []byte{'a', 'b'}, actual, "cache shares caller buffer")
}

func TestClear(t *testing.T) {
	cache := newCache()

	cache.Set(dbPut, "test", []byte{'a', 'b', 'c', 'd'})
	cache.Clear()

	_, _, found := cache.Get("test")
	assert.False(t, found, "Clear did not empty the cache")
}

func TestReadDeleteOperation(t *testing.T) {
	cache := newCache()

	cache.Set(dbPut, "test", []byte{'a'})
	cache.Set(dbDelete, "test", nil)

	value, op, found := cache.Get("test")
	assert.True(t, found, "a pending delete must be reported")
	assert.Equal(t, dbDelete, op, "wrong operation")
	assert.Nil(t, value, "deleted key returned data")
}
