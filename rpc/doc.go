// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring ledger services
//
// standard golang RPC services can be used on the client side to
// access these services
//
// the caller of a state changing request is taken from the request
// unless client_rpc.callers is configured; then TLS clients must
// present a certificate whose SHA3-256 fingerprint is registered and
// every request on that connection is made as the registered account
package rpc
