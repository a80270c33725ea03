// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"encoding/hex"
	"net"
	"strings"
	"time"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
)

const handshakeTimeout = 30 * time.Second

// Identities - accounts keyed by client certificate fingerprint
type Identities map[[32]byte]account.Account

// ParseIdentities - convert the configured hex fingerprints
func ParseIdentities(callers map[string]string) (Identities, error) {
	ids := make(Identities, len(callers))
	for hexFingerprint, caller := range callers {
		b, err := hex.DecodeString(strings.TrimSpace(hexFingerprint))
		if nil != err || 32 != len(b) {
			return nil, fault.InvalidFingerprint
		}
		a, err := account.New(caller)
		if nil != err {
			return nil, err
		}
		var fin [32]byte
		copy(fin[:], b)
		ids[fin] = a
	}
	return ids, nil
}

// Identify - complete the TLS handshake and return the account
// registered for the client certificate
func (ids Identities) Identify(conn net.Conn) (account.Account, error) {
	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return "", fault.UnregisteredCertificate
	}
	_ = tlsConn.SetDeadline(time.Now().Add(handshakeTimeout))
	if err := tlsConn.Handshake(); nil != err {
		return "", err
	}
	_ = tlsConn.SetDeadline(time.Time{})

	peers := tlsConn.ConnectionState().PeerCertificates
	if 0 == len(peers) {
		return "", fault.UnregisteredCertificate
	}
	a, ok := ids[Fingerprint(peers[0].Raw)]
	if !ok {
		return "", fault.UnregisteredCertificate
	}
	return a, nil
}
