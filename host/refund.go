// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
)

// settlement is outside the ledger so refunds are only recorded
type logRefunder struct {
	log *logger.L
}

// NewLogRefunder - a refunder that writes each refund to the log
func NewLogRefunder() Refunder {
	return &logRefunder{
		log: logger.New("refund"),
	}
}

func (r *logRefunder) Refund(to account.Account, amount *uint256.Int) error {
	r.log.Infof("refund: %s to: %s", amount.Dec(), to)
	return nil
}
