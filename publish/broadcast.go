// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"sync/atomic"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/zmqutil"
)

const (
	zapDomain = "nftledger-publish"
	topic     = "event"
)

// the sockets are only touched by Run
type broadcaster struct {
	log     *logger.L
	queue   chan string
	socket4 *zmq.Socket
	socket6 *zmq.Socket
	dropped uint64
}

func newBroadcaster(log *logger.L, size int, privateKey []byte, publicKey []byte, broadcast []string) (*broadcaster, error) {
	brdc := &broadcaster{
		log:   log,
		queue: make(chan string, size),
	}
	if 0 == len(broadcast) {
		log.Info("no broadcast addresses: events are not published")
		return brdc, nil
	}

	var err error
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, zapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return nil, err
	}
	return brdc, nil
}

// Publish - queue the lines of one committed invocation
//
// never blocks the host: lines that do not fit are dropped
func (brdc *broadcaster) Publish(lines []string) {
	for _, line := range lines {
		select {
		case brdc.queue <- line:
		default:
			n := atomic.AddUint64(&brdc.dropped, 1)
			brdc.log.Warnf("queue full: dropped: %d  line: %q", n, line)
		}
	}
}

// Dropped - number of lines lost to a full queue
func (brdc *broadcaster) Dropped() uint64 {
	return atomic.LoadUint64(&brdc.dropped)
}

// Run - send queued lines until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case line := <-brdc.queue:
			brdc.send(line)
		}
	}
	log.Info("stopped")
}

func (brdc *broadcaster) send(line string) {
	for _, socket := range []*zmq.Socket{brdc.socket4, brdc.socket6} {
		if nil == socket {
			continue
		}
		_, err := socket.SendMessage(topic, line)
		if nil != err {
			brdc.log.Errorf("send error: %s", err)
		}
	}
	brdc.log.Debugf("sent: %q", line)
}

func (brdc *broadcaster) close() {
	if nil != brdc.socket4 {
		_ = brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		_ = brdc.socket6.Close()
	}
}
