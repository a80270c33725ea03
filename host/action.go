// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/nftledger/fault"
)

// Action - one step of a scheduled batch
type Action interface {
	String() string
}

// DeployContract - replace the code of the current account
type DeployContract struct {
	Code []byte
}

// FunctionCall - call a method of the current account
//
// the predecessor is the current account
type FunctionCall struct {
	Method string
	Args   []byte
}

func (DeployContract) String() string { return "deploy" }
func (f FunctionCall) String() string { return "call: " + f.Method }

// keys in the code pool
var (
	codeKey   = []byte("CODE")
	digestKey = []byte("DIGEST")
)

// run a batch in order, stopping at the first failure
//
// must hold the host lock
func (h *Host) runActions(actions []Action) error {
	for i, action := range actions {
		h.log.Infof("action[%d]: %s", i, action)

		var err error
		switch a := action.(type) {
		case DeployContract:
			err = h.deploy(a.Code)
		case FunctionCall:
			_, err = h.run(Invocation{
				Method:      a.Method,
				Predecessor: h.current,
				Args:        a.Args,
			})
		default:
			h.log.Criticalf("action[%d]: unsupported action: %T", i, action)
			err = fault.UnknownMethod
		}
		if nil != err {
			h.log.Errorf("action[%d]: %s  error: %s", i, action, err)
			return err
		}
	}
	return nil
}

// store new contract code and its digest
func (h *Host) deploy(code []byte) error {
	if 0 == len(code) {
		return fault.EmptyCode
	}

	trx, err := h.db.Begin()
	if nil != err {
		return err
	}

	digest := sha3.Sum256(code)
	trx.Put(h.db.Pool.Code, codeKey, code)
	trx.Put(h.db.Pool.Code, digestKey, digest[:])

	err = trx.Commit()
	if nil != err {
		return err
	}
	h.log.Infof("deployed code: %d bytes  digest: %x", len(code), digest)
	return nil
}

// CodeDigest - digest of the last deployed code, nil if none
func (h *Host) CodeDigest() []byte {
	return h.db.Pool.Code.Get(digestKey)
}
