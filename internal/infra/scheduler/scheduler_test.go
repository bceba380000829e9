package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingSender struct {
	calls       atomic.Int32
	err         error
	hadDeadline atomic.Bool
}

func (c *countingSender) SendReminder(ctx context.Context) error {
	c.calls.Add(1)
	_, ok := ctx.Deadline()
	c.hadDeadline.Store(ok)
	return c.err
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestStart_RegistersEverySpec(t *testing.T) {
	s := NewReminderScheduler(&countingSender{}, quietLogger(), []string{"0 10 * * *", "0 16 * * *"})
	require.NoError(t, s.Start())
	defer s.Stop()

	entries := s.cronEngine.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, time.UTC, e.Next.Location())
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := NewReminderScheduler(&countingSender{}, quietLogger(), []string{"0 10 * * *", "not a schedule"})
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a schedule")
}

func TestFire_UsesBoundedContext(t *testing.T) {
	sender := &countingSender{}
	s := NewReminderScheduler(sender, quietLogger(), nil)

	s.fire()

	assert.Equal(t, int32(1), sender.calls.Load())
	assert.True(t, sender.hadDeadline.Load())
}

func TestFire_ErrorIsLoggedNotPropagated(t *testing.T) {
	sender := &countingSender{err: errors.New("telegram down")}
	s := NewReminderScheduler(sender, quietLogger(), nil)

	assert.NotPanics(t, s.fire)
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestScheduledFiring(t *testing.T) {
	sender := &countingSender{}
	s := NewReminderScheduler(sender, quietLogger(), []string{"@every 1s"})
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return sender.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}
