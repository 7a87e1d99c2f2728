package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"stayscraper/internal/fetcher"
	"stayscraper/internal/sites/airbnb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	var slept []time.Duration
	p := Policy{
		MaxAttempts: 3,
		MinDelay:    time.Second,
		MaxDelay:    3 * time.Second,
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}

	calls := 0
	v, err := Retry(context.Background(), p, func(_ context.Context, attempt int) (int, error) {
		calls++
		if attempt < 3 {
			return 0, errors.New("flaky")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
	require.Len(t, slept, 2)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 3*time.Second)
	}
}

func TestRetryExhausted(t *testing.T) {
	sentinel := errors.New("down")
	calls := 0
	_, err := Retry(context.Background(), Policy{MaxAttempts: 2, Sleep: noSleep}, func(context.Context, int) (string, error) {
		calls++
		return "", sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Equal(t, 2, calls)
}

func TestRetryPermanentStops(t *testing.T) {
	sentinel := errors.New("broken extractor")
	calls := 0
	_, err := Retry(context.Background(), Policy{MaxAttempts: 5, Sleep: noSleep}, func(context.Context, int) (int, error) {
		calls++
		return 0, Permanent(sentinel)
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
	assert.Nil(t, Permanent(nil))
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, Policy{MaxAttempts: 3}, func(context.Context, int) (int, error) {
		calls++
		cancel()
		return 0, errors.New("failed")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{invalidInput("URL é obrigatória", nil), http.StatusBadRequest},
		{airbnb.ErrInvalidURL, http.StatusBadRequest},
		{airbnb.ErrInvalidStep, http.StatusBadRequest},
		{fetcher.ErrTimeout, http.StatusGatewayTimeout},
		{navigationError(context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("Navigation timeout of 100000 ms exceeded"), http.StatusGatewayTimeout},
		{ErrBlockedContent, http.StatusInternalServerError},
		{errors.New("browser crashed"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), "%v", tc.err)
	}
}

func TestNavigationErrorTagsDeadline(t *testing.T) {
	err := navigationError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrNavigationTimeout)

	plain := errors.New("net::ERR_NAME_NOT_RESOLVED")
	assert.Same(t, plain, navigationError(plain))
}

func TestFailureEnvelopeHasEmptyData(t *testing.T) {
	res := Failure(2, errors.New("boom"))

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":{}`)
	assert.Equal(t, "boom", res.Error)
}
