// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/counter"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/rpc/certificate"
	"github.com/bitmark-inc/nftledger/rpc/listeners"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newServer(t *testing.T) *rpc.Server {
	s := rpc.NewServer()
	if err := s.Register(Add{}); nil != err {
		t.Fatalf("register with error: %s", err)
	}
	return s
}

func configuration(listen ...string) *listeners.RPCConfiguration {
	return &listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             listen,
	}
}

func localAddress() string {
	return fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
}

func TestServePlain(t *testing.T) {
	listen := localAddress()
	count := counter.Counter(0)

	l, err := listeners.NewRPC(configuration(listen), logger.New(fixtures.LogCategory), &count, listeners.Static(newServer(t)), nil)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	c, err := net.Dial("tcp", listen)
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	client := jsonrpc.NewClient(c)
	defer client.Close()

	var reply int
	err = client.Call("Add.Add", &AddArg{A: 2, B: 5}, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, 7, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "connection not counted")
}

func TestServeTLS(t *testing.T) {
	listen := localAddress()
	count := counter.Counter(0)

	cer, key := fixtures.Certificate(t)
	tlsConfig, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "certificate error")

	l, err := listeners.NewRPC(configuration(listen), logger.New(fixtures.LogCategory), &count, listeners.Static(newServer(t)), tlsConfig)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	client := jsonrpc.NewClient(c)
	defer client.Close()

	var reply int
	err = client.Call("Add.Add", &AddArg{A: 20, B: 22}, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, 42, reply, "wrong result")
}

func TestServeRejected(t *testing.T) {
	listen := localAddress()
	count := counter.Counter(0)

	reject := func(net.Conn) (*rpc.Server, error) {
		return nil, fault.UnregisteredCertificate
	}
	l, err := listeners.NewRPC(configuration(listen), logger.New(fixtures.LogCategory), &count, reject, nil)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	conn, err := net.Dial("tcp", listen)
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	buffer := make([]byte, 1)
	_, err = conn.Read(buffer)
	assert.NotNil(t, err, "rejected connection served")

	for i := 0; i < 50 && 0 != count.Uint64(); i += 1 {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, uint64(0), count.Uint64(), "rejected connection still counted")
}

func TestConnectionLimit(t *testing.T) {
	listen := localAddress()
	count := counter.Counter(0)

	c := configuration(listen)
	c.MaximumConnections = 1

	l, err := listeners.NewRPC(c, logger.New(fixtures.LogCategory), &count, listeners.Static(newServer(t)), nil)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Nil(t, l.Serve(), "wrong Serve")
	defer l.Close()

	first, err := net.Dial("tcp", listen)
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	client := jsonrpc.NewClient(first)
	defer client.Close()
	var reply int
	assert.Nil(t, client.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply), "first call")

	// the second connection is closed by the server
	second, err := net.Dial("tcp", listen)
	if nil != err {
		t.Fatalf("dial with error: %s", err)
	}
	_ = second.SetReadDeadline(time.Now().Add(5 * time.Second))
	buffer := make([]byte, 1)
	_, err = second.Read(buffer)
	assert.NotNil(t, err, "second connection served")
	_ = second.Close()
}

func TestNewRPCErrors(t *testing.T) {
	count := counter.Counter(0)
	log := logger.New(fixtures.LogCategory)

	c := configuration(localAddress())
	c.MaximumConnections = 0
	_, err := listeners.NewRPC(c, log, &count, listeners.Static(rpc.NewServer()), nil)
	assert.Equal(t, fault.MissingParameters, err, "zero connections")

	c = configuration(localAddress())
	c.Bandwidth = 100
	_, err = listeners.NewRPC(c, log, &count, listeners.Static(rpc.NewServer()), nil)
	assert.Equal(t, fault.MissingParameters, err, "low bandwidth")

	_, err = listeners.NewRPC(configuration(), log, &count, listeners.Static(rpc.NewServer()), nil)
	assert.Equal(t, fault.MissingParameters, err, "no listen")

	for _, bad := range []string{"1", "localhost:2130", "[1:2:3]:2130"} {
		_, err = listeners.NewRPC(configuration(bad), log, &count, listeners.Static(rpc.NewServer()), nil)
		assert.Equal(t, fault.InvalidIpAddress, err, "accepted: %q", bad)
	}

	for _, good := range []string{"*:2130", "[::1]:2130", "0.0.0.0:2130"} {
		_, err = listeners.NewRPC(configuration(good), log, &count, listeners.Static(rpc.NewServer()), nil)
		assert.Nil(t, err, "rejected: %q", good)
	}
}
