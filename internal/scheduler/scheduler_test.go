package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRunJob_RecordsSummary(t *testing.T) {
	sched := NewScheduler(quietLogger())
	sched.Register(Job{
		Name:  "snapshot",
		Every: time.Hour,
		Run: func(ctx context.Context) (string, error) {
			return "snapshots=3", nil
		},
	})

	err := sched.RunJob(context.Background(), "snapshot")
	assert.NoError(t, err)

	status := sched.Statuses()["snapshot"]
	assert.Equal(t, "snapshots=3", status.LastSummary)
	assert.Empty(t, status.LastError)
	assert.False(t, status.LastRun.IsZero())
}

func TestRunJob_RecordsError(t *testing.T) {
	sched := NewScheduler(quietLogger())
	sched.Register(Job{
		Name:  "refresh",
		Every: time.Hour,
		Run: func(ctx context.Context) (string, error) {
			return "", errors.New("provider unreachable")
		},
	})

	err := sched.RunJob(context.Background(), "refresh")
	assert.NoError(t, err)

	status := sched.Statuses()["refresh"]
	assert.Equal(t, "provider unreachable", status.LastError)
}

func TestRunJob_UnknownJob(t *testing.T) {
	sched := NewScheduler(quietLogger())
	err := sched.RunJob(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStartStop_RunsJobImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	sched := NewScheduler(quietLogger())
	sched.Register(Job{
		Name:  "snapshot",
		Every: time.Hour,
		Run: func(ctx context.Context) (string, error) {
			select {
			case ran <- struct{}{}:
			default:
			}
			return "ok", nil
		},
	})

	sched.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	sched.Stop()

	assert.Equal(t, "ok", sched.Statuses()["snapshot"].LastSummary)
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	sched := NewScheduler(quietLogger())
	sched.Register(Job{Name: "snapshot", Every: time.Hour, Run: func(ctx context.Context) (string, error) {
		return "", nil
	}})

	statuses := sched.Statuses()
	statuses["snapshot"] = Status{LastSummary: "mutated"}

	assert.Empty(t, sched.Statuses()["snapshot"].LastSummary)
}
