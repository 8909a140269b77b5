package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stella-M-560/currency-bot-api/pkg/cache"
	"github.com/Stella-M-560/currency-bot-api/pkg/config"
	xhttp "github.com/Stella-M-560/currency-bot-api/pkg/http"
	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
)

type closeTracker struct {
	cache.Noop
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestRunContextShutsDownAndClosesCache(t *testing.T) {
	cfg := config.Default()
	srv := xhttp.NewServer(nil, applogger.Nop(),
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetricsPath(""),
		xhttp.WithTimeouts(time.Second, time.Second, time.Second),
	)
	store := &closeTracker{}
	app := New(cfg, srv, store, applogger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, store.closed)
	assert.Same(t, srv, app.Server())
}
