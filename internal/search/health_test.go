package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealthGreen(t *testing.T) {
	mgr := testManager(t, &fakeTransport{
		status: 200,
		body:   `{"status":"green","cluster_name":"ems-search","number_of_nodes":3}`,
	})

	h := mgr.CheckHealth(context.Background())

	assert.Equal(t, "green", h.Status)
	assert.Equal(t, "ems-search", h.ClusterName)
	assert.Equal(t, 3, h.Nodes)
}

func TestCheckHealthDisabled(t *testing.T) {
	mgr := NewManager(Config{Enabled: false}, testLogger())

	h := mgr.CheckHealth(context.Background())
	assert.Equal(t, StatusUnavailable, h.Status)
}

func TestCheckHealthTransportError(t *testing.T) {
	mgr := testManager(t, &fakeTransport{err: errors.New("connection refused")})

	h := mgr.CheckHealth(context.Background())
	assert.Equal(t, StatusUnavailable, h.Status)
}

func TestCheckHealthErrorStatus(t *testing.T) {
	mgr := testManager(t, &fakeTransport{status: 503, body: `{}`})

	h := mgr.CheckHealth(context.Background())
	assert.Equal(t, StatusUnavailable, h.Status)
}

func TestWaitUntilReadyYellow(t *testing.T) {
	mgr := testManager(t, &fakeTransport{
		status: 200,
		body:   `{"status":"yellow","cluster_name":"ems-search","number_of_nodes":1}`,
	})

	assert.True(t, mgr.WaitUntilReady(context.Background(), 3, time.Millisecond, time.Millisecond))
}

func TestWaitUntilReadyExhaustsRetries(t *testing.T) {
	rt := &fakeTransport{status: 200, body: `{"status":"red","cluster_name":"ems-search","number_of_nodes":1}`}
	mgr := testManager(t, rt)

	assert.False(t, mgr.WaitUntilReady(context.Background(), 3, time.Millisecond, time.Millisecond))
	assert.Equal(t, 3, rt.calls)
}

func TestWaitUntilReadyDisabled(t *testing.T) {
	mgr := NewManager(Config{Enabled: false}, testLogger())
	assert.False(t, mgr.WaitUntilReady(context.Background(), 3, time.Millisecond, time.Millisecond))
}

func TestWaitUntilReadyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := testManager(t, &fakeTransport{err: errors.New("connection refused")})
	assert.False(t, mgr.WaitUntilReady(ctx, 5, time.Hour, time.Hour))
}
