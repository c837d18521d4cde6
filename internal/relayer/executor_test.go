package relayer_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/mocks"
	"github.com/campuschain/access-layer/internal/relayer"
)

const (
	testPrimary   = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
	testDelegated = "0x00000000219ab540356cbb839cbe05303d7705fa"
	testTxHash    = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
)

var testContest = domain.EntityRef{Kind: domain.EntityKindContest, ID: "c1"}

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func sponsorReadyActor() *domain.Actor {
	delegated := testDelegated
	return &domain.Actor{
		PrimaryAddress:   testPrimary,
		DelegatedAddress: &delegated,
		SponsorReady:     true,
	}
}

func testCall() relayer.Call {
	return relayer.Call{
		To:   common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Data: []byte{0x01, 0x02},
	}
}

func testConfig() relayer.Config {
	return relayer.Config{
		GraceDelay:      3 * time.Second,
		PollInterval:    time.Second,
		MaxPollAttempts: 3,
	}
}

func successReceipt() *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}
}

func TestExecuteRequiresSponsorReadyAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	e := relayer.NewExecutor(client, eth, clock, testConfig())

	// no delegated address at all
	_, err := e.Execute(context.Background(), &domain.Actor{PrimaryAddress: testPrimary},
		testContest, domain.ActionVote, testCall())
	assert.ErrorIs(t, err, domain.ErrAccountNotReady)

	// delegated address resolved but not yet accepted by the relayer
	delegated := testDelegated
	_, err = e.Execute(context.Background(), &domain.Actor{
		PrimaryAddress:   testPrimary,
		DelegatedAddress: &delegated,
	}, testContest, domain.ActionVote, testCall())
	assert.ErrorIs(t, err, domain.ErrAccountNotReady)
}

func TestExecuteSettlesAndRunsHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	client.EXPECT().
		SubmitTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *relayer.SubmitRequest) (*relayer.SubmitResponse, error) {
			assert.Equal(t, testDelegated, req.From)
			return &relayer.SubmitResponse{TxHash: testTxHash, Status: "accepted"}, nil
		})
	eth.EXPECT().
		TransactionReceipt(gomock.Any(), common.HexToHash(testTxHash)).
		Return(successReceipt(), nil)

	var mu sync.Mutex
	var hookedEntity domain.EntityRef
	var hookedKind domain.ActionKind
	hook := func(_ *domain.Actor, entity domain.EntityRef, kind domain.ActionKind, _ string) {
		mu.Lock()
		defer mu.Unlock()
		hookedEntity = entity
		hookedKind = kind
	}

	e := relayer.NewExecutor(client, eth, clock, testConfig(), hook)

	handle, err := e.Execute(context.Background(), sponsorReadyActor(),
		testContest, domain.ActionVote, testCall())
	require.NoError(t, err)
	assert.Equal(t, testTxHash, handle.TxHash)

	require.Eventually(t, func() bool {
		return handle.State() == relayer.StateSettled
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, testContest, hookedEntity)
	assert.Equal(t, domain.ActionVote, hookedKind)

	got, ok := e.Handle(handle.ID)
	require.True(t, ok)
	assert.Equal(t, relayer.StateSettled, got.State())
}

func TestExecuteRevertedTransactionFailsWithoutRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	// exactly one submission, even though the transaction reverts
	client.EXPECT().
		SubmitTransaction(gomock.Any(), gomock.Any()).
		Return(&relayer.SubmitResponse{TxHash: testTxHash, Status: "accepted"}, nil).
		Times(1)
	eth.EXPECT().
		TransactionReceipt(gomock.Any(), common.HexToHash(testTxHash)).
		Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

	settled := false
	hook := func(*domain.Actor, domain.EntityRef, domain.ActionKind, string) { settled = true }

	e := relayer.NewExecutor(client, eth, clock, testConfig(), hook)

	handle, err := e.Execute(context.Background(), sponsorReadyActor(),
		testContest, domain.ActionVote, testCall())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return handle.State() == relayer.StateFailed
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, handle.Err(), domain.ErrTransactionRejected)
	assert.False(t, settled)
}

func TestExecuteGivesUpAfterPollBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	client.EXPECT().
		SubmitTransaction(gomock.Any(), gomock.Any()).
		Return(&relayer.SubmitResponse{TxHash: testTxHash, Status: "accepted"}, nil)
	eth.EXPECT().
		TransactionReceipt(gomock.Any(), common.HexToHash(testTxHash)).
		Return(nil, ethereumNotFound{}).
		Times(3)

	e := relayer.NewExecutor(client, eth, clock, testConfig())

	handle, err := e.Execute(context.Background(), sponsorReadyActor(),
		testContest, domain.ActionVote, testCall())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return handle.State() == relayer.StateFailed
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, handle.Err(), domain.ErrTransactionRejected)
}

type ethereumNotFound struct{}

func (ethereumNotFound) Error() string { return "not found" }

func TestExecuteInFlightGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	release := make(chan struct{})
	// hold the first confirmation in its grace delay
	clock.EXPECT().Sleep(gomock.Any()).DoAndReturn(func(time.Duration) { <-release }).Times(1)
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	client.EXPECT().
		SubmitTransaction(gomock.Any(), gomock.Any()).
		Return(&relayer.SubmitResponse{TxHash: testTxHash, Status: "accepted"}, nil).
		Times(2)
	eth.EXPECT().
		TransactionReceipt(gomock.Any(), common.HexToHash(testTxHash)).
		Return(successReceipt(), nil).
		AnyTimes()

	e := relayer.NewExecutor(client, eth, clock, testConfig())
	actor := sponsorReadyActor()

	first, err := e.Execute(context.Background(), actor, testContest, domain.ActionVote, testCall())
	require.NoError(t, err)

	// same pair while in flight
	_, err = e.Execute(context.Background(), actor, testContest, domain.ActionVote, testCall())
	assert.ErrorIs(t, err, domain.ErrActionInFlight)

	// a different entity is not blocked
	other := domain.EntityRef{Kind: domain.EntityKindContest, ID: "c2"}
	second, err := e.Execute(context.Background(), actor, other, domain.ActionVote, testCall())
	require.NoError(t, err)

	close(release)
	require.Eventually(t, func() bool {
		return first.State() == relayer.StateSettled && second.State() == relayer.StateSettled
	}, 2*time.Second, 10*time.Millisecond)
}

func TestExecuteSubmitRejectionClearsGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRelayerClient(ctrl)
	eth := mocks.NewMockEthClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	gomock.InOrder(
		client.EXPECT().
			SubmitTransaction(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrTransactionRejected),
		client.EXPECT().
			SubmitTransaction(gomock.Any(), gomock.Any()).
			Return(&relayer.SubmitResponse{TxHash: testTxHash, Status: "accepted"}, nil),
	)
	eth.EXPECT().
		TransactionReceipt(gomock.Any(), common.HexToHash(testTxHash)).
		Return(successReceipt(), nil)

	e := relayer.NewExecutor(client, eth, clock, testConfig())
	actor := sponsorReadyActor()

	_, err := e.Execute(context.Background(), actor, testContest, domain.ActionVote, testCall())
	assert.ErrorIs(t, err, domain.ErrTransactionRejected)

	// the rejected submission does not leave the pair locked
	handle, err := e.Execute(context.Background(), actor, testContest, domain.ActionVote, testCall())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return handle.State() == relayer.StateSettled
	}, 2*time.Second, 10*time.Millisecond)
}
