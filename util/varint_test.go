// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nftledger/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{137, []byte{0x89, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xfffffffffffffffe, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		result1, count1 := util.FromVarint64(item.encoded)
		if result1 != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, item.encoded, result1, item.value)
		}

		suffix := []byte{0xff, 0x97, 0x23}
		b := append(append([]byte{}, item.encoded...), suffix...)
		result2, count2 := util.FromVarint64(b)
		if result2 != item.value || count1 != count2 {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, b, result2, item.value)
		}
		if !bytes.Equal(suffix, b[count2:]) {
			t.Errorf("%d: suffix: %x  expected: %x", i, b[count2:], suffix)
		}
	}

	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, result, count)
		}
	}
}

func TestPackBytes(t *testing.T) {
	buffer := util.PackBytes(nil, []byte("alice.near"))
	buffer = util.PackBytes(buffer, []byte{})
	buffer = util.PackBytes(buffer, []byte("x"))

	first, n := util.UnpackBytes(buffer)
	assert.Equal(t, []byte("alice.near"), first, "wrong first item")
	assert.Equal(t, 11, n, "wrong first length")
	buffer = buffer[n:]

	second, n := util.UnpackBytes(buffer)
	assert.Equal(t, []byte{}, second, "wrong second item")
	assert.Equal(t, 1, n, "wrong second length")
	buffer = buffer[n:]

	third, n := util.UnpackBytes(buffer)
	assert.Equal(t, []byte("x"), third, "wrong third item")
	assert.Equal(t, 2, n, "wrong third length")
}

func TestUnpackBytesTruncated(t *testing.T) {
	for i, item := range [][]byte{{}, {0x05, 'a', 'b'}, {0x80}} {
		data, n := util.UnpackBytes(item)
		assert.Nil(t, data, "%d: expected nil data", i)
		assert.Equal(t, 0, n, "%d: expected zero count", i)
	}
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/var/lib/nft/data", util.EnsureAbsolute("/var/lib/nft", "data"), "relative not joined")
	assert.Equal(t, "/tmp/x", util.EnsureAbsolute("/var/lib/nft", "/tmp/./x"), "absolute not cleaned")
}
