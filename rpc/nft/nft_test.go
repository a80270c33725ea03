// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nft_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/nftledger/account"
	"github.com/bitmark-inc/nftledger/fault"
	"github.com/bitmark-inc/nftledger/fixtures"
	"github.com/bitmark-inc/nftledger/host"
	"github.com/bitmark-inc/nftledger/ledger"
	"github.com/bitmark-inc/nftledger/record"
	"github.com/bitmark-inc/nftledger/rpc/mocks"
	"github.com/bitmark-inc/nftledger/rpc/nft"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestMint(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	var invocation host.Invocation
	e.EXPECT().Execute(gomock.Any()).DoAndReturn(
		func(inv host.Invocation) (*host.Outcome, error) {
			invocation = inv
			return &host.Outcome{
				Value:  record.TokenId("7"),
				Logs:   []string{"a", "b"},
				Refund: uint256.NewInt(25),
			}, nil
		}).Times(1)

	title := "seven"
	receiver := fixtures.BobAccount
	var reply nft.MintReply
	err := l.Mint(&nft.MintArguments{
		Caller:             fixtures.AliceAccount,
		Deposit:            "10000000000000000000000",
		ReceiverId:         &receiver,
		Metadata:           &record.TokenMetadata{Title: &title},
		PerpetualRoyalties: map[account.Account]uint32{fixtures.AliceAccount: 500},
	}, &reply)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, record.TokenId("7"), reply.TokenId, "wrong token id")
	assert.Equal(t, "25", reply.Refund, "wrong refund")
	assert.Equal(t, []string{"a", "b"}, reply.Logs, "wrong logs")

	assert.Equal(t, ledger.MethodMint, invocation.Method, "wrong method")
	assert.Equal(t, fixtures.AliceAccount, invocation.Predecessor, "wrong caller")
	assert.Equal(t, "10000000000000000000000", invocation.Deposit.Dec(), "wrong deposit")

	var args struct {
		ReceiverId         account.Account            `json:"receiver_id"`
		Metadata           record.TokenMetadata       `json:"metadata"`
		PerpetualRoyalties map[account.Account]uint32 `json:"perpetual_royalties"`
	}
	assert.Nil(t, json.Unmarshal(invocation.Args, &args), "args not JSON")
	assert.Equal(t, fixtures.BobAccount, args.ReceiverId, "wrong receiver")
	assert.Equal(t, "seven", *args.Metadata.Title, "wrong title")
	assert.Equal(t, uint32(500), args.PerpetualRoyalties[fixtures.AliceAccount], "wrong royalty")
}

func TestMintRejectedBeforeExecute(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	title := "x"
	receiver := fixtures.BobAccount
	metadata := &record.TokenMetadata{Title: &title}

	var reply nft.MintReply
	err := l.Mint(&nft.MintArguments{Caller: fixtures.AliceAccount, Deposit: "-5", ReceiverId: &receiver, Metadata: metadata}, &reply)
	assert.Equal(t, fault.InvalidAmount, err, "negative deposit")

	err = l.Mint(&nft.MintArguments{Caller: "Not Valid", Deposit: "5", ReceiverId: &receiver, Metadata: metadata}, &reply)
	assert.Equal(t, fault.InvalidAccount, err, "invalid caller")

	err = l.Mint(&nft.MintArguments{Caller: fixtures.AliceAccount, Deposit: "5", Metadata: metadata}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "missing receiver")
}

func TestMintError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	e.EXPECT().Execute(gomock.Any()).Return(nil, fault.MintingDisabled).Times(1)

	title := "x"
	receiver := fixtures.BobAccount
	var reply nft.MintReply
	err := l.Mint(&nft.MintArguments{
		Caller:     fixtures.AliceAccount,
		ReceiverId: &receiver,
		Metadata:   &record.TokenMetadata{Title: &title},
	}, &reply)
	assert.Equal(t, fault.MintingDisabled, err, "wrong error")
}

func TestUpgrade(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	code := []byte{0x00, 0x61, 0x73, 0x6d}
	gomock.InOrder(
		e.EXPECT().Execute(host.Invocation{
			Method:      ledger.MethodUpgrade,
			Predecessor: fixtures.OwnerAccount,
			Args:        code,
		}).Return(&host.Outcome{}, nil),
		e.EXPECT().Execute(gomock.Any()).Return(&host.Outcome{ActionErr: fault.CorruptOrWrongSchema}, nil),
	)

	var reply nft.UpgradeReply
	err := l.Upgrade(&nft.UpgradeArguments{Caller: fixtures.OwnerAccount, Code: code}, &reply)
	assert.Nil(t, err, "upgrade error")
	assert.True(t, reply.Migrated, "not migrated")

	reply = nft.UpgradeReply{}
	err = l.Upgrade(&nft.UpgradeArguments{Caller: fixtures.OwnerAccount, Code: code}, &reply)
	assert.Nil(t, err, "upgrade error")
	assert.False(t, reply.Migrated, "migrated after failure")
	assert.Equal(t, fault.CorruptOrWrongSchema.Error(), reply.Error, "wrong action error")
}

func TestViews(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	e.EXPECT().View(ledger.MethodGetStatusMinter, []byte("null")).Return(true, []string{"true"}, nil)
	e.EXPECT().View(ledger.MethodGetOwnerId, []byte("null")).Return(fixtures.OwnerAccount, []string{"owner.near"}, nil)
	e.EXPECT().View(ledger.MethodSupplyForCreator, []byte(`{"account_id":"alice.near"}`)).Return("3", nil, nil)
	e.EXPECT().View(ledger.MethodToken, []byte(`{"token_id":"9"}`)).Return(nil, nil, nil)

	var status nft.StatusReply
	assert.Nil(t, l.GetStatusMinter(&nft.EmptyArguments{}, &status), "status error")
	assert.True(t, status.Enabled, "wrong status")

	var owner nft.OwnerReply
	assert.Nil(t, l.GetOwnerId(&nft.EmptyArguments{}, &owner), "owner error")
	assert.Equal(t, fixtures.OwnerAccount, owner.OwnerId, "wrong owner")

	var supply nft.SupplyReply
	assert.Nil(t, l.SupplyForCreator(&nft.SupplyArguments{Account: fixtures.AliceAccount}, &supply), "supply error")
	assert.Equal(t, "3", supply.Supply, "wrong supply")

	var token nft.TokenReply
	assert.Nil(t, l.Token(&nft.TokenArguments{TokenId: "9"}, &token), "token error")
	assert.Nil(t, token.Token, "absent token returned")
}

func TestTokensCount(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)

	var reply nft.TokensReply
	for _, count := range []int{0, -1, nft.MaximumTokensCount + 1} {
		err := l.TokensForOwner(&nft.TokensArguments{Account: fixtures.BobAccount, Count: count}, &reply)
		assert.Equal(t, fault.InvalidCount, err, "count: %d accepted", count)
	}
}

func TestAuthenticatedCaller(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockExecutor(ctl)
	l := nft.New(logger.New(fixtures.LogCategory), e)
	l.Caller = fixtures.OwnerAccount

	callers := []account.Account{}
	e.EXPECT().Execute(gomock.Any()).DoAndReturn(
		func(inv host.Invocation) (*host.Outcome, error) {
			callers = append(callers, inv.Predecessor)
			return &host.Outcome{Value: true}, nil
		}).Times(2)

	var reply nft.StatusReply
	err := l.SetStatusMinter(&nft.StatusArguments{Caller: fixtures.OwnerAccount, Enabled: true}, &reply)
	assert.Nil(t, err, "named caller error")

	err = l.SetStatusMinter(&nft.StatusArguments{Enabled: true}, &reply)
	assert.Nil(t, err, "implicit caller error")

	err = l.SetStatusMinter(&nft.StatusArguments{Caller: fixtures.MalloryAccount, Enabled: true}, &reply)
	assert.Equal(t, fault.CallerMismatch, err, "other caller accepted")

	assert.Equal(t, []account.Account{fixtures.OwnerAccount, fixtures.OwnerAccount}, callers, "wrong callers")
}
