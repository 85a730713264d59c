package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsJobImmediatelyOnStart(t *testing.T) {
	ran := make(chan struct{}, 1)

	s := NewScheduler()
	s.Register("probe", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestSchedulerStopWaitsForRunningJob(t *testing.T) {
	started := make(chan struct{})
	finished := false

	s := NewScheduler()
	s.Register("slow", time.Hour, func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished = true
		return nil
	})
	s.Start()

	<-started
	s.Stop()

	assert.True(t, finished)
}
