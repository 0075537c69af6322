package shutdown

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestShutdown_HooksRunInReverseOrder(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)

	var order []string
	m.RegisterHook("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.RegisterHook("second", func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("flush failed")
	})
	m.RegisterHook("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	m.Shutdown()

	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestWait_ContextCancelled(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)

	ran := make(chan struct{})
	m.RegisterHook("flag", func(ctx context.Context) error {
		close(ran)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Wait(ctx)

	select {
	case <-ran:
	default:
		t.Fatal("hook did not run")
	}
}

func TestServe_DrainsServer(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), time.Second)

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	require.NoError(t, m.Serve("test", srv))

	m.Shutdown()

	// A drained server refuses to serve again
	assert.ErrorIs(t, srv.ListenAndServe(), http.ErrServerClosed)
}
