// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/fault"
)

// Pools - the exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	State            *PoolHandle `prefix:"S"`
	ContractMetadata *PoolHandle `prefix:"N"`
	Tokens           *PoolHandle `prefix:"T"`
	TokenMetadata    *PoolHandle `prefix:"M"`
	OwnerSets        *PoolHandle `prefix:"O"`
	OwnerTokens      *PoolHandle `prefix:"L"`
	CreatorSets      *PoolHandle `prefix:"C"`
	CreatorTokens    *PoolHandle `prefix:"K"`
	Events           *PoolHandle `prefix:"E" usage:"none"`
	Code             *PoolHandle `prefix:"W" usage:"none"`
	TestData         *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// for storage accounting
var usageKey = []byte{0x00, 'U', 'S', 'A', 'G', 'E'}

const (
	currentDBVersion = 0x100

	// DefaultRecordOverhead - bytes charged per stored record in
	// addition to its key and value
	DefaultRecordOverhead = 40
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - an open ledger database
type Database struct {
	sync.Mutex

	Pool Pools

	log      *logger.L
	db       *leveldb.DB
	readOnly bool
	overhead uint64
	access   *dataAccess
	trx      *transaction
}

// Open - open up the database on disk
//
// a missing database is created unless readOnly is set
func Open(name string, readOnly bool, recordOverhead uint64) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly, recordOverhead)
}

// OpenMemory - open an empty database held entirely in memory
func OpenMemory(recordOverhead uint64) (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite, recordOverhead)
}

func setup(db *leveldb.DB, readOnly bool, recordOverhead uint64) (*Database, error) {
	log := logger.New("storage")

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.DatabaseVersion
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	d := &Database{
		log:      log,
		db:       db,
		readOnly: readOnly,
		overhead: recordOverhead,
	}
	d.access = newDA(db, newCache())

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("pool: %s has the same prefix as: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:      fieldInfo.Name,
			prefix:    prefix,
			limit:     limit,
			unmetered: "none" == fieldInfo.Tag.Get("usage"),
			db:        db,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return d, nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()

	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// Usage - committed storage usage in bytes
func (d *Database) Usage() uint64 {
	value, err := d.db.Get(usageKey, nil)
	if leveldb.ErrNotFound == err {
		return 0
	}
	logger.PanicIfError("storage.Usage", err)
	if 8 != len(value) {
		logger.Panicf("storage.Usage truncated record: %x", value)
	}
	return binary.BigEndian.Uint64(value)
}

// Begin - start the single write transaction
func (d *Database) Begin() (Transaction, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.DatabaseIsNotSet
	}
	if nil != d.trx {
		return nil, fault.TransactionInUse
	}

	err := d.access.Begin()
	if nil != err {
		return nil, err
	}
	d.trx = newTransaction(d, d.Usage())
	return d.trx, nil
}

// called by the transaction when it finishes
func (d *Database) release() {
	d.Lock()
	d.trx = nil
	d.Unlock()
}

// return the stored version, zero if none
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
