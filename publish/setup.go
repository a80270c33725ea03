// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - send committed event lines to subscribers over a
// ZeroMQ PUB socket
package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/background"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/util"
	"github.com/bitmark-inc/nftledger/zmqutil"
)

// Configuration - publishing section of the configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
	QueueSize  int      `gluamapper:"queue_size" json:"queue_size"`
}

// DefaultQueueSize - lines buffered between the host and the socket
const DefaultQueueSize = 1000

// globals for background process
type publishData struct {
	sync.RWMutex

	log *logger.L

	brdc *broadcaster

	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - bind the broadcast sockets and start the sender
//
// relative key file names are taken from the data directory
func Initialise(configuration *Configuration, dataDirectory string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("publish")
	globalData.log = log
	log.Info("starting…")

	var privateKey []byte
	var publicKey []byte
	if "" != configuration.PrivateKey {
		var err error
		name := util.EnsureAbsolute(dataDirectory, configuration.PrivateKey)
		privateKey, err = zmqutil.ReadPrivateKeyFile(name)
		if nil != err {
			log.Errorf("read private key file: %q  error: %s", name, err)
			return err
		}
		name = util.EnsureAbsolute(dataDirectory, configuration.PublicKey)
		publicKey, err = zmqutil.ReadPublicKeyFile(name)
		if nil != err {
			log.Errorf("read public key file: %q  error: %s", name, err)
			return err
		}
		if err := zmqutil.StartAuthentication(); nil != err {
			log.Errorf("zmq authentication error: %s", err)
			return err
		}
		log.Debugf("public key: %x", publicKey)
	}

	size := configuration.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	brdc, err := newBroadcaster(log, size, privateKey, publicKey, configuration.Broadcast)
	if nil != err {
		return err
	}
	globalData.brdc = brdc

	globalData.initialised = true

	log.Info("start background…")
	globalData.background = background.Start(background.Processes{brdc}, nil)

	return nil
}

// Finalise - stop the sender and close the sockets
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()
	globalData.brdc.close()
	globalData.brdc = nil

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Get - the event sink, nil before Initialise
func Get() host.Sink {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil == globalData.brdc {
		return nil
	}
	return globalData.brdc
}
