// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/pem"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/rpc/certificate"
	"github.com/bitmark-inc/nftledger/util"
)

// create a self-signed certificate and return its fingerprint
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) ([32]byte, error) {
	var fin [32]byte

	if util.EnsureFileExists(certificateFileName) {
		return fin, fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fin, fault.KeyFileAlreadyExists
	}

	org := "nftledgerd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return fin, err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return fin, err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return fin, err
	}

	if block, _ := pem.Decode(cert); nil != block {
		fin = certificate.Fingerprint(block.Bytes)
	}
	return fin, nil
}
