// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nftledger/configuration"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/storage"
)

const sampleConfiguration = `
local M = {}

M.data_directory = "."
M.pidfile = "nftledgerd.pid"
M.account = contract_account

M.database = {
    name = "test.leveldb",
}

M.storage = {
    byte_price = "20000000000000000000",
}

M.client_rpc = {
    maximum_connections = 50,
    certificate = "rpc.crt",
    callers = {
        ["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"] = "owner.near",
    },
    listen = {
        "127.0.0.1:2130",
        "[::1]:2130",
    },
}

M.publishing = {
    broadcast = {
        "127.0.0.1:2135",
    },
}

M.logging = {
    size = 2097152,
    count = 5,
    levels = {
        DEFAULT = "info",
        ledger = "debug",
    },
}

return M
`

func writeConfiguration(t *testing.T, text string) (string, string) {
	dir, err := ioutil.TempDir("", "nftledger-configuration")
	if !assert.Nil(t, err, "temp directory") {
		t.FailNow()
	}
	name := filepath.Join(dir, "nftledgerd.conf")
	err = ioutil.WriteFile(name, []byte(text), 0600)
	if !assert.Nil(t, err, "write configuration") {
		t.FailNow()
	}
	return dir, name
}

func TestGetConfiguration(t *testing.T) {
	dir, name := writeConfiguration(t, sampleConfiguration)
	defer os.RemoveAll(dir)

	variables := map[string]string{
		"contract_account": "nft.example.near",
	}
	options, err := configuration.GetConfiguration(name, variables)
	if !assert.Nil(t, err, "get configuration") {
		t.FailNow()
	}

	dir = filepath.Clean(options.DataDirectory)

	assert.Equal(t, "nft.example.near", options.Account, "account")
	assert.Equal(t, filepath.Join(dir, "nftledgerd.pid"), options.PidFile, "pid file")
	assert.Equal(t, filepath.Join(dir, "data"), options.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "data", "test.leveldb"), options.Database.Name, "database name")
	assert.Equal(t, uint64(storage.DefaultRecordOverhead), options.Storage.RecordOverhead, "record overhead")
	assert.Equal(t, uint64(50), options.ClientRPC.MaximumConnections, "connections")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, options.ClientRPC.Listen, "listen")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), options.ClientRPC.Certificate, "certificate")
	assert.Equal(t, []string{"127.0.0.1:2135"}, options.Publishing.Broadcast, "broadcast")
	assert.Equal(t, "", options.Publishing.PrivateKey, "publisher key")
	assert.Equal(t, "", options.ClientRPC.PrivateKey, "rpc key")
	assert.Equal(t, map[string]string{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": "owner.near"}, options.ClientRPC.Callers, "callers")
	assert.Equal(t, 5, options.Logging.Count, "log count")
	assert.Equal(t, "debug", options.Logging.Levels["ledger"], "ledger level")

	price, err := options.BytePrice()
	assert.Nil(t, err, "byte price")
	assert.Equal(t, "20000000000000000000", price.Dec(), "byte price value")

	info, err := os.Stat(options.Logging.Directory)
	assert.Nil(t, err, "log directory")
	assert.True(t, info.IsDir(), "log directory is a directory")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"missing data directory", `return { account = "nft.near" }`},
		{"bad account", `return { data_directory = ".", account = "A!" }`},
		{"bad byte price", `return { data_directory = ".", account = "nft.near", storage = { byte_price = "ten" } }`},
		{"bad caller fingerprint", `return { data_directory = ".", account = "nft.near", client_rpc = { callers = { abc = "owner.near" } } }`},
		{"bad caller account", `return { data_directory = ".", account = "nft.near", client_rpc = { callers = { ["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"] = "A!" } } }`},
		{"database path", `return { data_directory = ".", account = "nft.near", database = { name = "a/b.leveldb" } }`},
		{"lua error", `return {`},
	}

	for _, item := range items {
		dir, name := writeConfiguration(t, item.text)
		_, err := configuration.GetConfiguration(name, nil)
		assert.NotNil(t, err, item.name)
		os.RemoveAll(dir)
	}
}

func TestParseConfigurationFile(t *testing.T) {
	dir, name := writeConfiguration(t, `return { account = "nft.near" }`)
	defer os.RemoveAll(dir)

	var config struct {
		Account string `gluamapper:"account"`
	}
	err := configuration.ParseConfigurationFile(name, &config, nil)
	assert.Nil(t, err, "parse")
	assert.Equal(t, "nft.near", config.Account, "account")

	err = configuration.ParseConfigurationFile(name, config, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "not a pointer")
}

func TestConfigurationNotTable(t *testing.T) {
	dir, name := writeConfiguration(t, `return "text"`)
	defer os.RemoveAll(dir)

	options := configuration.Configuration{}
	err := configuration.ParseConfigurationFile(name, &options, nil)
	assert.Equal(t, fault.ConfigurationNotTable, err, "not a table")
}
