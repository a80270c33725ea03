// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the token data model and its packed binary form
//
// every packed record starts with a varint tag giving its type, the
// fields follow in declaration order:
//
//	string   = varint length ++ bytes
//	optional = 0x00 (absent) or 0x01 ++ string
//	number   = varint
//	map      = varint count ++ (key ++ value) sorted by key
//
// maps are sorted so that equal records always pack to equal bytes
package record
