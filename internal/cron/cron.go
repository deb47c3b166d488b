package cron

import (
	"context"
	"fmt"
	"time"

	"orgchart/config"
	"orgchart/internal/dto"
	"orgchart/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(
	NewCron,
	wire.Bind(new(Rebuilder), new(*service.OrgchartService)),
)

// Rebuilder 由排程觸發的組織圖重建
type Rebuilder interface {
	Rebuild(ctx context.Context, trigger string) (*dto.OrgchartStatsDto, error)
}

type Cron struct {
	logger     *zap.Logger
	conf       *config.Configuration
	server     *cron.Cron
	orgchart   Rebuilder
	jobTimeout time.Duration
}

// NewCron .
func NewCron(logger *zap.Logger, conf *config.Configuration, orgchart Rebuilder) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		// 上一次重建未結束時略過本次
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger:     logger,
		conf:       conf,
		server:     server,
		orgchart:   orgchart,
		jobTimeout: 5 * time.Minute,
	}
}

func (c *Cron) Run() error {
	if spec := c.conf.Orgchart.RefreshSpec; spec != "" {
		if _, err := c.server.AddFunc(spec, c.refreshOrgchart); err != nil {
			return fmt.Errorf("orgchart refresh spec %q: %w", spec, err)
		}
		c.logger.Info("orgchart refresh scheduled", zap.String("spec", spec))
	} else {
		c.logger.Info("orgchart refresh disabled")
	}

	c.server.Start()
	return nil
}

func (c *Cron) refreshOrgchart() {
	ctx, cancel := context.WithTimeout(context.Background(), c.jobTimeout)
	defer cancel()

	// 失敗時保留目前的樹，錯誤已由 service 記錄
	if _, err := c.orgchart.Rebuild(ctx, service.TriggerCron); err != nil {
		c.logger.Warn("scheduled orgchart rebuild failed", zap.Error(err))
	}
}

func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
