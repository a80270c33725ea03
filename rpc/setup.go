// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/counter"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/rpc/certificate"
	"github.com/bitmark-inc/nftledger/rpc/listeners"
	"github.com/bitmark-inc/nftledger/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	listener listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of client connections currently open
var connectionCountRPC counter.Counter

// Initialise - start the client RPC listener
//
// TLS is used when both certificate and private key files are given
func Initialise(configuration *listeners.RPCConfiguration, version string, services server.Services) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if nil == services.Executor {
		log.Error("no executor")
		return fault.DatabaseIsNotSet
	}

	l, err := newListener(log, configuration, version, services)
	if nil != err {
		return err
	}
	err = l.Serve()
	if nil != err {
		l.Close()
		return err
	}
	globalData.listener = l

	globalData.initialised = true

	return nil
}

func newListener(log *logger.L, configuration *listeners.RPCConfiguration, version string, services server.Services) (listeners.Listener, error) {
	factory := server.NewFactory(log, version, &connectionCountRPC, services)

	if "" == configuration.Certificate || "" == configuration.PrivateKey {
		if 0 != len(configuration.Callers) {
			log.Errorf("%s: callers are configured without a certificate", tlsName)
			return nil, fault.ClientCertificateRequiresTLS
		}
		log.Warnf("%s: no certificate: plain TCP", tlsName)
		log.Warnf("%s: callers are not authenticated", tlsName)
		return listeners.NewRPC(configuration, log, &connectionCountRPC, listeners.Static(factory.Create("")), nil)
	}

	tlsConfig, fingerprint, err := certificate.GetFiles(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", tlsName, fingerprint)

	if 0 == len(configuration.Callers) {
		log.Warnf("%s: callers are not authenticated", tlsName)
		return listeners.NewRPC(configuration, log, &connectionCountRPC, listeners.Static(factory.Create("")), tlsConfig)
	}

	identities, err := certificate.ParseIdentities(configuration.Callers)
	if nil != err {
		log.Errorf("%s: callers error: %s", tlsName, err)
		return nil, err
	}
	log.Infof("%s: %d authenticated callers", tlsName, len(identities))

	// fingerprints are pinned so the chain is not verified
	tlsConfig.ClientAuth = tls.RequireAnyClientCert

	serverFor := func(conn net.Conn) (*rpc.Server, error) {
		caller, err := identities.Identify(conn)
		if nil != err {
			return nil, err
		}
		log.Debugf("%s: %s authenticated as: %s", tlsName, conn.RemoteAddr(), caller)
		return factory.Create(caller), nil
	}
	return listeners.NewRPC(configuration, log, &connectionCountRPC, serverFor, tlsConfig)
}

// Finalise - stop accepting connections
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.listener.Close()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Connections - number of open client connections
func Connections() uint64 {
	return connectionCountRPC.Uint64()
}
