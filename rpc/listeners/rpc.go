// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - accept JSON-RPC connections up to a connection limit
package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/counter"
	"github.com/bitmark-inc/nftledger/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
	minBandwidth       = 1000000 // 1Mbps
)

// Listener - a started set of server sockets
type Listener interface {
	Serve() error
	Close()
}

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`

	// client certificate SHA3-256 fingerprint (hex) to account
	Callers map[string]string `gluamapper:"callers" json:"callers"`
}

// ServerFunc - select the RPC server for an accepted connection
type ServerFunc func(conn net.Conn) (*rpc.Server, error)

// Static - every connection is served by the same server
func Static(server *rpc.Server) ServerFunc {
	return func(net.Conn) (*rpc.Server, error) {
		return server, nil
	}
}

type rpcListener struct {
	sync.Mutex
	log            *logger.L
	listeners      []net.Listener
	count          *counter.Counter
	serverFor      ServerFunc
	maxConnections uint64
	tlsConfig      *tls.Config
	ipType         []string
	addresses      []string
}

// NewRPC - validate the configuration and prepare the listener
//
// a nil tlsConfig gives plain TCP
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	serverFor ServerFunc,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if configuration.Bandwidth <= minBandwidth {
		log.Errorf("invalid %s bandwidth: %.0f bps < 1Mbps", logName, configuration.Bandwidth)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	addresses, ipType, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	return &rpcListener{
		log:            log,
		count:          count,
		serverFor:      serverFor,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		ipType:         ipType,
		addresses:      addresses,
	}, nil
}

// Serve - open every listen address and accept in the background
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.addresses {
		r.log.Infof("starting RPC server: %s", listen)

		var l net.Listener
		var err error
		if nil == r.tlsConfig {
			l, err = net.Listen(r.ipType[i], listen)
		} else {
			l, err = tls.Listen(r.ipType[i], listen, r.tlsConfig)
		}
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		go doServeRPC(l, r.serverFor, r.maxConnections, r.log, r.count)
	}
	return nil
}

// Close - stop accepting new connections
func (r *rpcListener) Close() {
	r.Lock()
	defer r.Unlock()

	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}

func doServeRPC(listen net.Listener, serverFor ServerFunc, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Infof("rpc accept terminated: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				defer count.Decrement()
				defer conn.Close()

				server, err := serverFor(conn)
				if nil != err {
					log.Warnf("rejected: %s  error: %s", conn.RemoteAddr(), err)
					return
				}
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
			}()
		} else {
			count.Decrement()
			log.Warnf("connection limit: %d reached: rejected: %s", maximumConnections, conn.RemoteAddr())
			_ = conn.Close()
		}
	}
	_ = listen.Close()
}

// returns the listen addresses and their network types
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	addresses := make([]string, len(addrs))
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(strings.TrimSpace(listen))
		if nil != err {
			log.Errorf("rpc server listen: %q  error: %s", listen, err)
			return nil, nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			// listen on tcp4 and tcp6
			addresses[i] = "[::]:" + port
			parsed[i] = "tcp"
			continue
		case strings.Contains(host, ":"):
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen: %q  error: %s", listen, err)
			return nil, nil, err
		}
		addresses[i] = net.JoinHostPort(host, port)
	}
	return addresses, parsed, nil
}
