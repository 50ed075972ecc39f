package livereload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoop_Drain(t *testing.T) {
	assert := require.New(t)

	loop := NewLoop()
	var order []string

	loop.AfterFunc(20*time.Millisecond, func() {
		order = append(order, "timer")
		loop.Post(func() {
			order = append(order, "posted by timer")
		})
	})
	loop.Post(func() {
		order = append(order, "first")
	})
	loop.Post(func() {
		order = append(order, "second")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(loop.Drain(ctx))
	assert.Equal([]string{"first", "second", "timer", "posted by timer"}, order)
}

func TestLoop_Run(t *testing.T) {
	assert := require.New(t)

	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())

	errC := make(chan error, 1)
	go func() {
		errC <- loop.Run(ctx)
	}()

	ran := make(chan struct{})
	loop.AfterFunc(time.Millisecond, func() {
		close(ran)
	})

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("callback did not run")
	}

	cancel()
	assert.Equal(context.Canceled, <-errC)
}

func TestLoop_Drain_Cancelled(t *testing.T) {
	assert := require.New(t)

	loop := NewLoop()
	loop.AfterFunc(time.Hour, func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Equal(context.DeadlineExceeded, loop.Drain(ctx))
}
