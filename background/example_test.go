// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/nftledger/background"
)

type announcer struct {
	done chan struct{}
}

func (a *announcer) Run(args interface{}, shutdown <-chan struct{}) {
	fmt.Printf("publishing to: %s\n", args)
	close(a.done)
	<-shutdown
	fmt.Printf("stopped\n")
}

func Example() {
	a := &announcer{
		done: make(chan struct{}),
	}

	p := background.Start(background.Processes{a}, "tcp://127.0.0.1:2135")
	<-a.done
	p.Stop()

	// Output:
	// publishing to: tcp://127.0.0.1:2135
	// stopped
}
