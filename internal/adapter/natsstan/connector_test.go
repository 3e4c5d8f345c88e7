package natsstan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(d *fakeDialer, retry RetryPolicy) *Connector {
	return &Connector{
		ClusterID: "test-cluster",
		ClientID:  "test",
		Retry:     retry,
		Logger:    zap.NewNop(),
		Dial:      d.dial,
	}
}

func TestConnectorRetriesUntilSuccess(t *testing.T) {
	d := &fakeDialer{failFirst: 3}
	c := newTestConnector(d, RetryPolicy{MaxAttempts: 0, Delay: time.Millisecond})

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, conn)
	require.Equal(t, 4, d.dialCount())
}

func TestConnectorBoundedBudgetGivesUp(t *testing.T) {
	d := &fakeDialer{failFirst: 100}
	c := newTestConnector(d, RetryPolicy{MaxAttempts: 2, Delay: time.Millisecond})

	_, err := c.Connect(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 attempts")
	require.Equal(t, 2, d.dialCount())
}

func TestConnectorStopsOnCancel(t *testing.T) {
	d := &fakeDialer{failFirst: 100}
	c := newTestConnector(d, RetryPolicy{MaxAttempts: 0, Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Connect(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, d.dialCount())
}
