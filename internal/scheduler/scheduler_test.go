package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("*/5 * * * *", &countingRefresher{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler("every tuesday", &countingRefresher{}, nil)
	assert.Error(t, s.Start())
}

func TestRefreshCatalog(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler("@hourly", r, nil)

	s.refreshCatalog()
	assert.Equal(t, int32(1), r.calls.Load())

	r.err = errors.New("source down")
	s.refreshCatalog()
	assert.Equal(t, int32(2), r.calls.Load())
}
