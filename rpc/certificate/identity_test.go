// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"encoding/hex"
	"io"
	"io/ioutil"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/rpc/certificate"
)

func TestParseIdentities(t *testing.T) {
	fin := strings.Repeat("0f", 32)

	ids, err := certificate.ParseIdentities(map[string]string{fin: "owner.near"})
	assert.Nil(t, err, "parse error")

	var expected [32]byte
	for i := range expected {
		expected[i] = 0x0f
	}
	assert.Equal(t, certificate.Identities{expected: fixtures.OwnerAccount}, ids, "wrong identities")

	ids, err = certificate.ParseIdentities(nil)
	assert.Nil(t, err, "empty error")
	assert.Equal(t, 0, len(ids), "empty has identities")

	_, err = certificate.ParseIdentities(map[string]string{"0f0f": "owner.near"})
	assert.Equal(t, fault.InvalidFingerprint, err, "short fingerprint accepted")

	_, err = certificate.ParseIdentities(map[string]string{strings.Repeat("zz", 32): "owner.near"})
	assert.Equal(t, fault.InvalidFingerprint, err, "non hex fingerprint accepted")

	_, err = certificate.ParseIdentities(map[string]string{fin: "Owner!"})
	assert.NotNil(t, err, "bad account accepted")
}

func keyPair(t *testing.T) tls.Certificate {
	cer, key := fixtures.Certificate(t)
	pair, err := tls.X509KeyPair([]byte(cer), []byte(key))
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	return pair
}

// run a TLS handshake over a pipe with the client presenting pair
func identify(t *testing.T, ids certificate.Identities, pair tls.Certificate) (account.Account, error) {
	cer, key := fixtures.Certificate(t)
	serverConfig, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("server certificate error: %s", err)
	}
	serverConfig.ClientAuth = tls.RequireAnyClientCert
	serverConfig.SessionTicketsDisabled = true

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	go func() {
		defer clientConn.Close()
		client := tls.Client(clientConn, &tls.Config{
			InsecureSkipVerify: true,
			Certificates:       []tls.Certificate{pair},
		})
		if nil != client.Handshake() {
			return
		}
		_, _ = io.Copy(ioutil.Discard, client)
	}()

	return ids.Identify(tls.Server(serverConn, serverConfig))
}

func TestIdentify(t *testing.T) {
	registered := keyPair(t)
	ids := certificate.Identities{
		sha3.Sum256(registered.Certificate[0]): fixtures.OwnerAccount,
	}

	caller, err := identify(t, ids, registered)
	assert.Nil(t, err, "identify error")
	assert.Equal(t, fixtures.OwnerAccount, caller, "wrong caller")

	_, err = identify(t, ids, keyPair(t))
	assert.Equal(t, fault.UnregisteredCertificate, err, "unregistered certificate accepted")

	plain, other := net.Pipe()
	defer other.Close()
	_, err = ids.Identify(plain)
	assert.Equal(t, fault.UnregisteredCertificate, err, "plain connection accepted")
	plain.Close()
}

func TestIdentitiesFromConfiguration(t *testing.T) {
	pair := keyPair(t)
	fin := sha3.Sum256(pair.Certificate[0])

	ids, err := certificate.ParseIdentities(map[string]string{
		hex.EncodeToString(fin[:]): "owner.near",
	})
	assert.Nil(t, err, "parse error")

	caller, err := identify(t, ids, pair)
	assert.Nil(t, err, "identify error")
	assert.Equal(t, fixtures.OwnerAccount, caller, "wrong caller")
}
