package identity

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuschain/access-layer/internal/domain"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/mocks"
)

const testPrimary = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

var testConfig = Config{
	FactoryAddress: "0x4e59b44847b379578588920cA78FbF26c0B4956C",
	AccountSalt:    "0x0000000000000000000000000000000000000000000000000000000000c0ffee",
	InitCodeHash:   "0x5fe7f977e71dba2ea1a68e21057beebb9be2ac30c6410aa38d4f3fbe41dcffd2",
	InitTimeout:    5 * time.Second,
}

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestDelegatedAddressIsDeterministic(t *testing.T) {
	r1, err := NewResolver(testConfig, nil, nil)
	require.NoError(t, err)
	r2, err := NewResolver(testConfig, nil, nil)
	require.NoError(t, err)

	a := r1.DelegatedAddress(testPrimary)
	b := r2.DelegatedAddress(testPrimary)
	assert.Equal(t, a, b)
	assert.True(t, domain.IsValidAddress(a))
	assert.NotEqual(t, domain.NormalizeAddress(testPrimary), a)

	// different owners get different accounts
	other := r1.DelegatedAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa")
	assert.NotEqual(t, a, other)
}

func TestResolveRejectsInvalidAddress(t *testing.T) {
	r, err := NewResolver(testConfig, nil, nil)
	require.NoError(t, err)

	for _, address := range []string{"", "not-an-address", "0x1234"} {
		_, err := r.Resolve(context.Background(), address)
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated, address)
	}
}

func TestResolveWithoutInitializerNeverSponsorReady(t *testing.T) {
	r, err := NewResolver(testConfig, nil, nil)
	require.NoError(t, err)

	actor, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	require.NotNil(t, actor.DelegatedAddress)
	assert.False(t, actor.SponsorReady)
	assert.False(t, actor.CanSponsor())
}

func TestResolveBecomesReadyAfterInitialization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initializer := mocks.NewMockAccountInitializer(ctrl)
	initializer.EXPECT().
		EnsureReady(gomock.Any(), domain.NormalizeAddress(testPrimary), gomock.Any()).
		Return(nil)

	r, err := NewResolver(testConfig, initializer, nil)
	require.NoError(t, err)

	actor, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	assert.False(t, actor.SponsorReady)

	require.Eventually(t, func() bool {
		actor, err := r.Resolve(context.Background(), testPrimary)
		return err == nil && actor.SponsorReady
	}, 2*time.Second, 10*time.Millisecond)
}

func TestResolveStaysNotReadyWhenInitializationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	initializer := mocks.NewMockAccountInitializer(ctrl)
	initializer.EXPECT().
		EnsureReady(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			defer close(done)
			return errors.New("sponsorship service unavailable")
		})

	r, err := NewResolver(testConfig, initializer, nil)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)

	<-done
	actor, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	assert.False(t, actor.SponsorReady)
}

func TestResolveRestoresReadinessFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := domain.NormalizeAddress(testPrimary)
	store := mocks.NewMockStateStore(ctrl)
	store.EXPECT().GetValue(gomock.Any(), "sponsor_ready:"+primary).Return("true", nil)

	// a restored account never re-initializes, so no initializer expectation
	initializer := mocks.NewMockAccountInitializer(ctrl)

	r, err := NewResolver(testConfig, initializer, store)
	require.NoError(t, err)

	actor, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	assert.True(t, actor.SponsorReady)
	assert.True(t, actor.CanSponsor())
}

func TestResolveCachesPerPrimaryAddress(t *testing.T) {
	r, err := NewResolver(testConfig, nil, nil)
	require.NoError(t, err)

	first, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), testPrimary)
	require.NoError(t, err)
	assert.Equal(t, *first.DelegatedAddress, *second.DelegatedAddress)
}
