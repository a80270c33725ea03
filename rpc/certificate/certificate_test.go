// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/rpc/certificate"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestGet(t *testing.T) {
	cer, key := fixtures.Certificate(t)

	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
}

func TestGetBadPair(t *testing.T) {
	cer, _ := fixtures.Certificate(t)
	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, "not a key")
	assert.NotNil(t, err, "bad key accepted")
}

func TestGetFiles(t *testing.T) {
	cer, key := fixtures.Certificate(t)

	dir, err := ioutil.TempDir("", "certificate")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	cerFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	_ = ioutil.WriteFile(cerFile, []byte(cer), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(key), 0600)

	_, fin1, err := certificate.GetFiles(logger.New(fixtures.LogCategory), "test", cerFile, keyFile)
	assert.Nil(t, err, "wrong GetFiles")

	_, fin2, _ := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Equal(t, fin2, fin1, "fingerprints differ")

	_, _, err = certificate.GetFiles(logger.New(fixtures.LogCategory), "test", filepath.Join(dir, "missing.crt"), keyFile)
	assert.NotNil(t, err, "missing file accepted")
}
