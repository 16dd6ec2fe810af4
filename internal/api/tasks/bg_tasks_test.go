package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesQueuedTasks(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() { ran.Add(1) })
	}
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.EqualValues(t, 5, ran.Load())
	assert.True(t, bgTasks.IsEmpty())
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	var ran atomic.Int32
	bgTasks.Add(func() { panic("boom") })
	bgTasks.Add(func() { ran.Add(1) })
	require.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.EqualValues(t, 1, ran.Load())
}

func TestAddDropsWhenQueueFull(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 1)
	// no workers started, so the single buffer slot is all the capacity
	bgTasks.Add(func() {})
	returned := make(chan struct{})
	go func() {
		bgTasks.Add(func() {})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Add blocked on a full queue")
	}
	assert.False(t, bgTasks.IsEmpty())
}

func TestShutdownHonoursContext(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	release := make(chan struct{})
	bgTasks.Add(func() { <-release })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := bgTasks.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}
