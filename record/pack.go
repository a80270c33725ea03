// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"sort"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/util"
)

// Packed - a record in its binary form
type Packed []byte

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	TokenTag            = TagType(iota)
	TokenMetadataTag    = TagType(iota)
	ContractMetadataTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//
//	switch r := result.(type) {
//	case *record.Token:
func (record Packed) Unpack() (r interface{}, n int, e error) {

	defer func() {
		if x := recover(); nil != x {
			r = nil
			n = 0
			e = fault.NotPackedRecord
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.NotPackedRecord
	}

	u := &unpacker{buffer: record, n: n}

	switch TagType(recordType) {

	case TokenTag:
		t := &Token{
			OwnerId:   u.account(),
			CreatorId: u.account(),
		}
		t.NextApprovalId = u.number()
		t.ApprovedAccountIds = u.accountMap()
		t.Royalty = u.royaltyMap()
		return t, u.n, nil

	case TokenMetadataTag:
		m := &TokenMetadata{
			Title:         u.optional(),
			Description:   u.optional(),
			Media:         u.optional(),
			MediaHash:     u.optional(),
			Copies:        u.optionalNumber(),
			IssuedAt:      u.optional(),
			ExpiresAt:     u.optional(),
			StartsAt:      u.optional(),
			UpdatedAt:     u.optional(),
			Extra:         u.optional(),
			Reference:     u.optional(),
			ReferenceHash: u.optional(),
		}
		return m, u.n, nil

	case ContractMetadataTag:
		c := &ContractMetadata{
			Spec:          u.string(),
			Name:          u.string(),
			Symbol:        u.string(),
			Icon:          u.optional(),
			BaseUri:       u.optional(),
			Reference:     u.optional(),
			ReferenceHash: u.optional(),
		}
		return c, u.n, nil

	default:
		return nil, 0, fault.NotPackedRecord
	}
}

// accumulate the packed fields of a record
type packer struct {
	buffer Packed
}

func newPacker(tag TagType) *packer {
	return &packer{
		buffer: util.ToVarint64(uint64(tag)),
	}
}

func (p *packer) string(s string) {
	p.buffer = util.PackBytes(p.buffer, []byte(s))
}

func (p *packer) number(n uint64) {
	p.buffer = append(p.buffer, util.ToVarint64(n)...)
}

func (p *packer) optional(s *string) {
	if nil == s {
		p.buffer = append(p.buffer, 0x00)
		return
	}
	p.buffer = append(p.buffer, 0x01)
	p.string(*s)
}

func (p *packer) optionalNumber(n *uint64) {
	if nil == n {
		p.buffer = append(p.buffer, 0x00)
		return
	}
	p.buffer = append(p.buffer, 0x01)
	p.number(*n)
}

func (p *packer) accountMap(m map[account.Account]uint64) {
	p.number(uint64(len(m)))
	for _, k := range sortedAccounts(m) {
		p.string(k.String())
		p.number(m[k])
	}
}

func (p *packer) royaltyMap(m map[account.Account]uint32) {
	wide := make(map[account.Account]uint64, len(m))
	for k, v := range m {
		wide[k] = uint64(v)
	}
	p.accountMap(wide)
}

func sortedAccounts(m map[account.Account]uint64) []account.Account {
	keys := make([]account.Account, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// step through the fields of a packed record
//
// truncation panics and is recovered by Unpack
type unpacker struct {
	buffer Packed
	n      int
}

func (u *unpacker) bytes() []byte {
	b, count := util.UnpackBytes(u.buffer[u.n:])
	if 0 == count {
		panic(fault.TruncatedRecord)
	}
	u.n += count
	return b
}

func (u *unpacker) string() string {
	return string(u.bytes())
}

func (u *unpacker) account() account.Account {
	a, err := account.New(u.string())
	if nil != err {
		panic(err)
	}
	return a
}

func (u *unpacker) number() uint64 {
	value, count := util.FromVarint64(u.buffer[u.n:])
	if 0 == count {
		panic(fault.TruncatedRecord)
	}
	u.n += count
	return value
}

func (u *unpacker) present() bool {
	flag := u.buffer[u.n]
	u.n += 1
	switch flag {
	case 0x00:
		return false
	case 0x01:
		return true
	default:
		panic(fault.NotPackedRecord)
	}
}

func (u *unpacker) optional() *string {
	if !u.present() {
		return nil
	}
	s := u.string()
	return &s
}

func (u *unpacker) optionalNumber() *uint64 {
	if !u.present() {
		return nil
	}
	n := u.number()
	return &n
}

func (u *unpacker) accountMap() map[account.Account]uint64 {
	count := u.number()
	if count > uint64(len(u.buffer)) {
		panic(fault.TruncatedRecord)
	}
	m := make(map[account.Account]uint64, count)
	for i := uint64(0); i < count; i += 1 {
		k := u.account()
		m[k] = u.number()
	}
	return m
}

func (u *unpacker) royaltyMap() map[account.Account]uint32 {
	wide := u.accountMap()
	m := make(map[account.Account]uint32, len(wide))
	for k, v := range wide {
		if v > 0xffffffff {
			panic(fault.NotPackedRecord)
		}
		m[k] = uint32(v)
	}
	return m
}
