package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/mocks"
	"github.com/campuschain/access-layer/internal/ratelimit"
)

const testActor = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func okStatus() *redis.StatusCmd {
	cmd := redis.NewStatusCmd(context.Background())
	cmd.SetVal("PONG")
	return cmd
}

func errStatus(err error) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(context.Background())
	cmd.SetErr(err)
	return cmd
}

func newTestLimiter(t *testing.T, ctrl *gomock.Controller, distributed *mocks.MockRedisRateLimiter, ping *redis.StatusCmd) ratelimit.Limiter {
	t.Helper()

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	rc := mocks.NewMockRedisClient(ctrl)
	rc.EXPECT().Ping(gomock.Any()).Return(ping).AnyTimes()
	rc.EXPECT().NewRateLimiter().Return(distributed)
	rc.EXPECT().Close().Return(nil).AnyTimes()

	l, err := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: 6, Burst: 2}, rc, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestAllowWithinLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	distributed.EXPECT().
		Allow(gomock.Any(), "campus:access:limiter:"+testActor, gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1, Remaining: 1}, nil)

	l := newTestLimiter(t, ctrl, distributed, okStatus())

	res, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllowExceededReturnsRetryAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	distributed.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&redis_rate.Result{Allowed: 0, RetryAfter: 7 * time.Second}, nil)

	l := newTestLimiter(t, ctrl, distributed, okStatus())

	res, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 7*time.Second, res.RetryAfter)
}

func TestAllowUsesPerMinuteWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	distributed.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, limit redis_rate.Limit) (*redis_rate.Result, error) {
			assert.Equal(t, 6, limit.Rate)
			assert.Equal(t, 2, limit.Burst)
			assert.Equal(t, time.Minute, limit.Period)
			return &redis_rate.Result{Allowed: 1}, nil
		})

	l := newTestLimiter(t, ctrl, distributed, okStatus())

	_, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
}

func TestRedisErrorFallsBackToLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	distributed.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	l := newTestLimiter(t, ctrl, distributed, okStatus())

	// first call hits the Redis error and falls back to the local bucket,
	// which has burst capacity available
	res, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// Redis is now marked unavailable; subsequent calls stay local and the
	// burst of 2 runs out on the third
	res, err = l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 10*time.Second, res.RetryAfter)
}

func TestRedisDownAtStartupUsesLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)

	l := newTestLimiter(t, ctrl, distributed, errStatus(errors.New("dial refused")))

	res, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLocalBucketsArePerActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)

	l := newTestLimiter(t, ctrl, distributed, errStatus(errors.New("dial refused")))

	for range 2 {
		res, err := l.Allow(context.Background(), testActor)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := l.Allow(context.Background(), testActor)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// a different actor has its own bucket
	res, err = l.Allow(context.Background(), "0x00000000219ab540356cbb839cbe05303d7705fa")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllowAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	l := newTestLimiter(t, ctrl, distributed, okStatus())

	require.NoError(t, l.Close())

	_, err := l.Allow(context.Background(), testActor)
	assert.Error(t, err)
}

func TestNewLimiterRejectsZeroRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rc := mocks.NewMockRedisClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	_, err := ratelimit.NewLimiter(ratelimit.Config{}, rc, clock)
	assert.Error(t, err)
}
