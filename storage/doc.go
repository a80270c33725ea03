// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. account      = account id as bytes
// 4. set prefix   = SHA3-256(account) (32 bytes)
// 5. token id     = decimal token id as bytes
// 6. count        = successive index value as big endian uint64 (8 bytes)
// 7. *others*     = byte values of various length
//
// Root state:
//
//	S ++ "STATE"               - the single root state value
//	                             data: packed root state (see ledger)
//	N ++ "METADATA"            - contract metadata
//	                             data: packed contract metadata
//
// Tokens:
//
//	T ++ token id              - token record
//	                             data: packed token
//	M ++ token id              - token metadata
//	                             data: packed token metadata
//
// Ownership:
//
//	O ++ account               - owner index set
//	                             data: set prefix
//	L ++ set prefix ++ token id - member of an owner set
//	                             data: (empty)
//	C ++ account               - creator index set
//	                             data: set prefix
//	K ++ set prefix ++ token id - member of a creator set
//	                             data: (empty)
//
// Host (not counted in storage usage):
//
//	E ++ count                 - committed event log lines
//	                             data: log line
//	W ++ "CODE"                - deployed contract code
//	                             data: code bytes
//	W ++ "DIGEST"              - SHA3-256 of deployed code
//
// Accounting (not in any pool):
//
//	0x00 ++ "VERSION"          - database version (big endian uint32)
//	0x00 ++ "USAGE"            - storage usage in bytes (big endian uint64)
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
