// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/rpc/nft"
)

// SetMinting - enable or disable minting
func (client *Client) SetMinting(enabled bool) (*nft.StatusReply, error) {

	args := nft.StatusArguments{
		Caller:  client.caller,
		Enabled: enabled,
	}

	client.printJson("Status Request", args)

	var reply nft.StatusReply
	if err := client.client.Call("Ledger.SetStatusMinter", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetMinting - current minting status
func (client *Client) GetMinting() (*nft.StatusReply, error) {
	var reply nft.StatusReply
	if err := client.client.Call("Ledger.GetStatusMinter", &nft.EmptyArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetOwner - hand the contract to another account
func (client *Client) SetOwner(newOwner account.Account) (*nft.OwnerReply, error) {

	args := nft.OwnerArguments{
		Caller:     client.caller,
		NewAccount: &newOwner,
	}

	client.printJson("Owner Request", args)

	var reply nft.OwnerReply
	if err := client.client.Call("Ledger.SetOwnerAccount", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetIcon - replace the contract metadata icon
func (client *Client) SetIcon(icon string) (*nft.EmptyReply, error) {

	args := nft.IconArguments{
		Caller: client.caller,
		Icon:   &icon,
	}

	client.printJson("Icon Request", args)

	var reply nft.EmptyReply
	if err := client.client.Call("Ledger.UpdateMetadataIcon", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Upgrade - deploy new code and migrate the state
func (client *Client) Upgrade(code []byte) (*nft.UpgradeReply, error) {

	args := nft.UpgradeArguments{
		Caller: client.caller,
		Code:   code,
	}

	var reply nft.UpgradeReply
	if err := client.client.Call("Ledger.Upgrade", &args, &reply); nil != err {
		return nil, err
	}

	client.printJson("Upgrade Reply", reply)

	return &reply, nil
}
