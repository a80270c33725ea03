// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/storage"
)

const testOverhead = 40

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// open a fresh in-memory database
func setup(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory(testOverhead)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db
}

func TestPoolsAreDistinct(t *testing.T) {
	db := setup(t)
	defer db.Close()

	seen := make(map[byte]string)
	for _, p := range []*storage.PoolHandle{
		db.Pool.State,
		db.Pool.ContractMetadata,
		db.Pool.Tokens,
		db.Pool.TokenMetadata,
		db.Pool.OwnerSets,
		db.Pool.OwnerTokens,
		db.Pool.CreatorSets,
		db.Pool.CreatorTokens,
		db.Pool.Events,
		db.Pool.Code,
		db.Pool.TestData,
	} {
		if !assert.NotNil(t, p, "pool not initialised") {
			continue
		}
		name, dup := seen[p.Prefix()]
		assert.False(t, dup, "prefix %q shared by %s and %s", p.Prefix(), name, p.Name())
		seen[p.Prefix()] = p.Name()
	}
}

func TestReopenKeepsData(t *testing.T) {
	name := filepath.Join(t.TempDir(), "reopen.leveldb")

	db, err := storage.Open(name, storage.ReadWrite, testOverhead)
	if !assert.Nil(t, err, "open error") {
		return
	}
	trx, err := db.Begin()
	assert.Nil(t, err, "begin error")
	trx.Put(db.Pool.TestData, []byte("key"), []byte("value"))
	assert.Nil(t, trx.Commit(), "commit error")
	usage := db.Usage()
	db.Close()

	db, err = storage.Open(name, storage.ReadOnly, testOverhead)
	if !assert.Nil(t, err, "reopen error") {
		return
	}
	defer db.Close()

	assert.Equal(t, []byte("value"), db.Pool.TestData.Get([]byte("key")), "data lost")
	assert.Equal(t, usage, db.Usage(), "usage counter lost")
}

func TestRefuseNewerDatabase(t *testing.T) {
	name := filepath.Join(t.TempDir(), "newer.leveldb")

	raw, err := leveldb.OpenFile(name, nil)
	if !assert.Nil(t, err, "leveldb open error") {
		return
	}
	version := make([]byte, 4)
	binary.BigEndian.PutUint32(version, 0xffff)
	_ = raw.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, version, nil)
	raw.Close()

	_, err = storage.Open(name, storage.ReadWrite, testOverhead)
	assert.Equal(t, fault.DatabaseVersion, err, "downgrade not detected")
}

func TestReadOnlyMissingDatabase(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing.leveldb")

	_, err := storage.Open(name, storage.ReadOnly, testOverhead)
	assert.NotNil(t, err, "read only open created a database")
}
