package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"orgchart/config"
	"orgchart/internal/dto"
	"orgchart/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingRebuilder struct {
	calls   atomic.Int32
	trigger atomic.Value
	err     error
}

func (r *countingRebuilder) Rebuild(_ context.Context, trigger string) (*dto.OrgchartStatsDto, error) {
	r.calls.Add(1)
	r.trigger.Store(trigger)
	return &dto.OrgchartStatsDto{}, r.err
}

func newTestCron(t *testing.T, spec string, rebuilder Rebuilder) *Cron {
	t.Helper()
	conf := &config.Configuration{Orgchart: config.Orgchart{RefreshSpec: spec}}
	return NewCron(zaptest.NewLogger(t), conf, rebuilder)
}

func TestCron_SchedulesRefresh(t *testing.T) {
	rebuilder := &countingRebuilder{}
	c := newTestCron(t, config.DefaultRefreshSpec, rebuilder)

	require.NoError(t, c.Run())
	defer c.Stop(context.Background())

	entries := c.server.Entries()
	require.Len(t, entries, 1)
	assert.WithinDuration(t, time.Now(), entries[0].Next, 15*time.Minute)
}

func TestCron_EmptySpecDisablesRefresh(t *testing.T) {
	c := newTestCron(t, "", &countingRebuilder{})

	require.NoError(t, c.Run())
	defer c.Stop(context.Background())

	assert.Empty(t, c.server.Entries())
}

func TestCron_InvalidSpec(t *testing.T) {
	c := newTestCron(t, "every tuesday", &countingRebuilder{})

	err := c.Run()
	assert.ErrorContains(t, err, "every tuesday")
}

func TestCron_RefreshUsesCronTrigger(t *testing.T) {
	rebuilder := &countingRebuilder{err: errors.New("mongo down")}
	c := newTestCron(t, "", rebuilder)

	c.refreshOrgchart()

	assert.EqualValues(t, 1, rebuilder.calls.Load())
	assert.Equal(t, service.TriggerCron, rebuilder.trigger.Load())
}
