// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nft - the Ledger RPC service
//
// every call is turned into a contract invocation; calls that change
// state name the calling account, which must match the account bound
// to an authenticated connection
package nft

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/ledger"
	"github.com/bitmark-inc/nftledger/mode"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100

	// MaximumTokensCount - largest page of a list call
	MaximumTokensCount = 100
)

// Executor - runs contract invocations
type Executor interface {
	Execute(inv host.Invocation) (*host.Outcome, error)
	View(method string, args []byte) (interface{}, []string, error)
}

// Ledger - type for the RPC
type Ledger struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Executor Executor
	Caller   account.Account // authenticated account, "" if none
}

// New - create the RPC service
func New(log *logger.L, executor Executor) *Ledger {
	return &Ledger{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Executor: executor,
	}
}

// EmptyArguments - for calls without parameters
type EmptyArguments struct{}

// EmptyReply - for calls without a result
type EmptyReply struct {
	Logs []string `json:"logs,omitempty"`
}

// run a state changing method
func (l *Ledger) execute(method string, caller account.Account, deposit string, args interface{}) (*host.Outcome, error) {
	if "" != l.Caller {
		if "" == caller {
			caller = l.Caller
		} else if caller != l.Caller {
			l.Log.Warnf("%s: caller: %s  authenticated: %s", method, caller, l.Caller)
			return nil, fault.CallerMismatch
		}
	}
	if err := caller.Validate(); nil != err {
		return nil, err
	}

	amount := uint256.NewInt(0)
	if "" != deposit {
		var err error
		amount, err = uint256.FromDecimal(deposit)
		if nil != err {
			return nil, fault.InvalidAmount
		}
	}

	buffer, err := json.Marshal(args)
	if nil != err {
		return nil, err
	}

	l.Log.Infof("%s: caller: %s  deposit: %s", method, caller, amount.Dec())
	return l.Executor.Execute(host.Invocation{
		Method:      method,
		Predecessor: caller,
		Deposit:     amount,
		Args:        buffer,
	})
}

// run a read only method
func (l *Ledger) view(method string, args interface{}) (interface{}, []string, error) {
	buffer, err := json.Marshal(args)
	if nil != err {
		return nil, nil, err
	}
	l.Log.Debugf("%s: %s", method, buffer)
	return l.Executor.View(method, buffer)
}

// Initialise
// ----------

// InitialiseArguments - arguments for RPC
//
// a nil metadata selects the default contract metadata
type InitialiseArguments struct {
	Caller   account.Account          `json:"caller"`
	OwnerId  *account.Account         `json:"owner_id"`
	Metadata *record.ContractMetadata `json:"metadata"`
}

// Initialise - create the root state
func (l *Ledger) Initialise(arguments *InitialiseArguments, reply *EmptyReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.OwnerId {
		return fault.MissingParameters
	}

	method := ledger.MethodNew
	args := map[string]interface{}{
		"owner_id": arguments.OwnerId,
	}
	if nil == arguments.Metadata {
		method = ledger.MethodNewDefaultMeta
	} else {
		args["metadata"] = arguments.Metadata
	}

	outcome, err := l.execute(method, arguments.Caller, "", args)
	if nil != err {
		return err
	}
	reply.Logs = outcome.Logs
	return nil
}

// Mint
// ----

// MintArguments - arguments for RPC
type MintArguments struct {
	Caller             account.Account            `json:"caller"`
	Deposit            string                     `json:"deposit"` // decimal, smallest unit
	ReceiverId         *account.Account           `json:"receiver_id"`
	Metadata           *record.TokenMetadata      `json:"metadata"`
	PerpetualRoyalties map[account.Account]uint32 `json:"perpetual_royalties"`
}

// MintReply - result of mint RPC
type MintReply struct {
	TokenId record.TokenId `json:"token_id"`
	Refund  string         `json:"refund"`
	Logs    []string       `json:"logs"`
}

// Mint - create a token
func (l *Ledger) Mint(arguments *MintArguments, reply *MintReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.ReceiverId || nil == arguments.Metadata {
		return fault.MissingParameters
	}

	args := map[string]interface{}{
		"receiver_id": arguments.ReceiverId,
		"metadata":    arguments.Metadata,
	}
	if 0 != len(arguments.PerpetualRoyalties) {
		args["perpetual_royalties"] = arguments.PerpetualRoyalties
	}

	outcome, err := l.execute(ledger.MethodMint, arguments.Caller, arguments.Deposit, args)
	if nil != err {
		return err
	}

	tokenId, ok := outcome.Value.(record.TokenId)
	if !ok {
		l.Log.Errorf("mint: unexpected result: %T", outcome.Value)
		return fault.TokenNotFound
	}
	reply.TokenId = tokenId
	reply.Refund = "0"
	if nil != outcome.Refund {
		reply.Refund = outcome.Refund.Dec()
	}
	reply.Logs = outcome.Logs
	return nil
}

// Minting status
// --------------

// StatusArguments - arguments for RPC
type StatusArguments struct {
	Caller  account.Account `json:"caller"`
	Enabled bool            `json:"enabled"`
}

// StatusReply - result of minting status RPC
type StatusReply struct {
	Enabled bool `json:"enabled"`
}

// SetStatusMinter - enable or disable minting
func (l *Ledger) SetStatusMinter(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}
	outcome, err := l.execute(ledger.MethodSetStatusMinter, arguments.Caller, "", map[string]interface{}{
		"new_status": arguments.Enabled,
	})
	if nil != err {
		return err
	}
	reply.Enabled, _ = outcome.Value.(bool)
	return nil
}

// GetStatusMinter - the current minting status
func (l *Ledger) GetStatusMinter(arguments *EmptyArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	value, _, err := l.view(ledger.MethodGetStatusMinter, nil)
	if nil != err {
		return err
	}
	reply.Enabled, _ = value.(bool)
	return nil
}

// Contract owner
// --------------

// OwnerArguments - arguments for RPC
type OwnerArguments struct {
	Caller     account.Account  `json:"caller"`
	NewAccount *account.Account `json:"new_account"`
}

// OwnerReply - result of owner RPC
type OwnerReply struct {
	OwnerId account.Account `json:"owner_id"`
}

// SetOwnerAccount - hand the contract to another account
func (l *Ledger) SetOwnerAccount(arguments *OwnerArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.NewAccount {
		return fault.MissingParameters
	}
	outcome, err := l.execute(ledger.MethodSetOwnerAccount, arguments.Caller, "", map[string]interface{}{
		"new_account": arguments.NewAccount,
	})
	if nil != err {
		return err
	}
	reply.OwnerId, _ = outcome.Value.(account.Account)
	return nil
}

// GetOwnerId - the contract owner
func (l *Ledger) GetOwnerId(arguments *EmptyArguments, reply *OwnerReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	value, _, err := l.view(ledger.MethodGetOwnerId, nil)
	if nil != err {
		return err
	}
	reply.OwnerId, _ = value.(account.Account)
	return nil
}

// Icon
// ----

// IconArguments - arguments for RPC
type IconArguments struct {
	Caller account.Account `json:"caller"`
	Icon   *string         `json:"icon"`
}

// UpdateMetadataIcon - replace the icon of the contract metadata
func (l *Ledger) UpdateMetadataIcon(arguments *IconArguments, reply *EmptyReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Icon {
		return fault.MissingParameters
	}
	outcome, err := l.execute(ledger.MethodUpdateMetadataIcon, arguments.Caller, "", map[string]interface{}{
		"icon": arguments.Icon,
	})
	if nil != err {
		return err
	}
	reply.Logs = outcome.Logs
	return nil
}

// Upgrade
// -------

// UpgradeArguments - arguments for RPC
type UpgradeArguments struct {
	Caller account.Account `json:"caller"`
	Code   []byte          `json:"code"` // base64 in JSON
}

// UpgradeReply - result of upgrade RPC
//
// the upgrade itself is accepted even if deploy or migrate fail
type UpgradeReply struct {
	Migrated bool   `json:"migrated"`
	Error    string `json:"error,omitempty"`
}

// Upgrade - deploy new code and migrate the state
func (l *Ledger) Upgrade(arguments *UpgradeArguments, reply *UpgradeReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}
	if err := arguments.Caller.Validate(); nil != err {
		return err
	}

	// the code is passed through unencoded
	outcome, err := l.Executor.Execute(host.Invocation{
		Method:      ledger.MethodUpgrade,
		Predecessor: arguments.Caller,
		Args:        arguments.Code,
	})
	if nil != err {
		return err
	}
	if nil != outcome.ActionErr {
		l.Log.Warnf("upgrade: actions failed: %s", outcome.ActionErr)
		reply.Error = outcome.ActionErr.Error()
		return nil
	}
	reply.Migrated = true
	mode.Set(mode.Normal)
	return nil
}
