package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"orgchart/config"
	"orgchart/internal/core"
	fluentdModel "orgchart/internal/database/fluentd/model"
	mongoModel "orgchart/internal/database/mongodb/model"
	"orgchart/internal/dto"
	"orgchart/internal/orgchart"
	cErr "orgchart/internal/pkg/error"
	"orgchart/internal/telemetry"

	"go.uber.org/zap"
)

// ProfileSource 提供原始名冊（MongoDB）
type ProfileSource interface {
	ListAll(ctx context.Context) ([]*mongoModel.Profile, error)
}

// RosterCache 保存最近一次成功載入的正規化名冊（Redis）
type RosterCache interface {
	Save(ctx context.Context, source core.RosterSource, dinos []orgchart.Dino) error
	Load(ctx context.Context) ([]orgchart.Dino, error)
}

// BuildLogger 送出重建紀錄（Fluentd）
type BuildLogger interface {
	LogBuild(ctx context.Context, build fluentdModel.BuildLog) error
}

// 重建觸發來源
const (
	TriggerStartup = "startup"
	TriggerCron    = "cron"
	TriggerAPI     = "api"
	TriggerCLI     = "cli"
)

type builtTree struct {
	tree    *orgchart.Tree
	source  core.RosterSource
	builtAt time.Time
}

// OrgchartService holds the current org chart and rebuilds it from the
// profile store. Queries read an immutable tree through an atomic pointer, so
// they never block on a rebuild in progress.
type OrgchartService struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	conf       *config.Configuration
	profiles   ProfileSource
	cache      RosterCache
	buildLog   BuildLogger
	health     *HealthService
	normalizer *orgchart.Normalizer

	current   atomic.Pointer[builtTree]
	rebuildMu sync.Mutex
}

func NewOrgchartService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	profiles ProfileSource,
	cache RosterCache,
	buildLog BuildLogger,
	health *HealthService,
) *OrgchartService {
	s := &OrgchartService{
		logger:     logger,
		trace:      trace,
		metric:     metric,
		conf:       conf,
		profiles:   profiles,
		cache:      cache,
		buildLog:   buildLog,
		health:     health,
		normalizer: orgchart.NewNormalizer(logger.Named("normalizer")),
	}
	// 第一次建樹前以空樹回應查詢
	s.current.Store(&builtTree{tree: orgchart.NewTree(logger, nil)})
	return s
}

// Rebuild 重新載入名冊並替換目前的樹
func (s *OrgchartService) Rebuild(ctx context.Context, trigger string) (_ *dto.OrgchartStatsDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartRebuild))
	defer func() { end(returnedError) }()

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	profiles, dinos, source, err := s.loadRoster(ctx)
	meta := core.TraceRebuildMeta{Source: string(source), Profiles: profiles}
	if err != nil {
		meta.Error = err.Error()
		s.trace.ApplyTraceAttributes(span, meta)
		s.metric.ObserveBuild(source, "error", 0, 0, time.Since(start))
		s.postBuildLog(ctx, trigger, meta, time.Since(start))
		s.logger.Error("orgchart rebuild failed", zap.String("trigger", trigger), zap.Error(err))
		if s.health != nil {
			s.health.MarkBuildFailed(err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cErr.GatewayTimeout(err.Error()).Wrap(err)
		}
		return nil, cErr.ServiceUnavailable(err.Error()).Wrap(err)
	}

	tree := orgchart.NewTree(s.logger.Named("builder"), dinos)
	duration := time.Since(start)
	built := &builtTree{tree: tree, source: source, builtAt: time.Now().UTC()}
	s.current.Store(built)

	stats := tree.Stats()
	meta.RosterSize, meta.Nodes, meta.Roots, meta.Excluded = stats.RosterSize, stats.Nodes, stats.Roots, stats.Excluded
	meta.DurationMs = float64(duration.Microseconds()) / 1000
	s.trace.ApplyTraceAttributes(span, meta)
	s.metric.ObserveBuild(source, "ok", stats.Nodes, stats.Excluded, duration)
	s.postBuildLog(ctx, trigger, meta, duration)
	if s.health != nil {
		s.health.MarkBuilt(string(source), stats.Nodes, built.builtAt)
	}

	s.logger.Info("orgchart rebuilt",
		zap.String("trigger", trigger),
		zap.String("source", string(source)),
		zap.Int("profiles", profiles),
		zap.Int("nodes", stats.Nodes),
		zap.Int("roots", stats.Roots),
		zap.Int("excluded", stats.Excluded),
		zap.Duration("duration", duration),
	)
	return statsDto(built), nil
}

// loadRoster 先讀 MongoDB；失敗且允許時改讀 Redis 快照
func (s *OrgchartService) loadRoster(ctx context.Context) (int, []orgchart.Dino, core.RosterSource, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err == nil {
		raw := make([]map[string]any, len(profiles))
		for i, p := range profiles {
			raw[i] = p.Raw()
		}
		dinos := s.normalizer.NormalizeAll(raw)
		s.saveSnapshot(ctx, dinos)
		return len(profiles), dinos, core.RosterSourceMongo, nil
	}

	if !s.conf.Orgchart.FallbackToCache || s.cache == nil {
		return 0, nil, core.RosterSourceMongo, fmt.Errorf("load profiles: %w", err)
	}
	s.logger.Warn("load profiles failed, falling back to roster snapshot", zap.Error(err))
	dinos, cacheErr := s.cache.Load(ctx)
	if cacheErr != nil {
		return 0, nil, core.RosterSourceCache, errors.Join(
			fmt.Errorf("load profiles: %w", err),
			fmt.Errorf("load roster snapshot: %w", cacheErr),
		)
	}
	return len(dinos), dinos, core.RosterSourceCache, nil
}

func (s *OrgchartService) saveSnapshot(ctx context.Context, dinos []orgchart.Dino) {
	if s.cache == nil {
		return
	}
	// 空名冊不覆寫既有快照
	if len(dinos) == 0 {
		s.logger.Warn("profile store returned an empty roster, snapshot kept")
		return
	}
	if err := s.cache.Save(ctx, core.RosterSourceMongo, dinos); err != nil {
		s.logger.Warn("save roster snapshot failed", zap.Error(err))
	}
}

func (s *OrgchartService) postBuildLog(ctx context.Context, trigger string, meta core.TraceRebuildMeta, duration time.Duration) {
	if s.buildLog == nil {
		return
	}
	err := s.buildLog.LogBuild(ctx, fluentdModel.BuildLog{
		Source:     meta.Source,
		Trigger:    trigger,
		Profiles:   meta.Profiles,
		RosterSize: meta.RosterSize,
		Nodes:      meta.Nodes,
		Roots:      meta.Roots,
		Excluded:   meta.Excluded,
		DurationMs: float64(duration.Microseconds()) / 1000,
		Error:      meta.Error,
	})
	if err != nil {
		s.logger.Warn("post build log failed", zap.Error(err))
	}
}

// Install 直接以已正規化的名冊建樹（離線 CLI 使用）
func (s *OrgchartService) Install(dinos []orgchart.Dino, source core.RosterSource) *dto.OrgchartStatsDto {
	built := &builtTree{
		tree:    orgchart.NewTree(s.logger.Named("builder"), dinos),
		source:  source,
		builtAt: time.Now().UTC(),
	}
	s.current.Store(built)
	return statsDto(built)
}

// Normalizer 供離線 CLI 轉換原始 profile
func (s *OrgchartService) Normalizer() *orgchart.Normalizer {
	return s.normalizer
}

func (s *OrgchartService) Stats() *dto.OrgchartStatsDto {
	return statsDto(s.current.Load())
}

func statsDto(built *builtTree) *dto.OrgchartStatsDto {
	stats := built.tree.Stats()
	out := &dto.OrgchartStatsDto{
		RosterSize: stats.RosterSize,
		Nodes:      stats.Nodes,
		Roots:      stats.Roots,
		Excluded:   stats.Excluded,
		Source:     string(built.source),
	}
	if !built.builtAt.IsZero() {
		builtAt := built.builtAt
		out.BuiltAt = &builtAt
	}
	return out
}

func (s *OrgchartService) tree() *orgchart.Tree {
	return s.current.Load().tree
}

func (s *OrgchartService) FullOrgchart(ctx context.Context) (_ []orgchart.Herd, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartQuery))
	defer func() { end(returnedError) }()

	chart, err := s.tree().FullOrgchart()
	s.trace.ApplyTraceAttributes(span, core.TraceQueryMeta{View: "full", Count: len(chart)})
	if err != nil {
		return nil, queryError(err)
	}
	return chart, nil
}

func (s *OrgchartService) Related(ctx context.Context, userID string) (_ *orgchart.Related, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartQuery))
	defer func() { end(returnedError) }()

	related, err := s.tree().Related(userID)
	s.trace.ApplyTraceAttributes(span, core.TraceQueryMeta{View: "related", UserID: userID, Count: len(related.Directs)})
	if err != nil {
		return nil, queryError(err)
	}
	return &related, nil
}

func (s *OrgchartService) Directs(ctx context.Context, userID string) (_ []orgchart.Data, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartQuery))
	defer func() { end(returnedError) }()

	directs, err := s.tree().Directs(userID)
	s.trace.ApplyTraceAttributes(span, core.TraceQueryMeta{View: "directs", UserID: userID, Count: len(directs)})
	if err != nil {
		return nil, queryError(err)
	}
	return directs, nil
}

func (s *OrgchartService) Expanded(ctx context.Context, userID string) (_ []orgchart.Herd, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartQuery))
	defer func() { end(returnedError) }()

	expanded, err := s.tree().Expanded(userID)
	s.trace.ApplyTraceAttributes(span, core.TraceQueryMeta{View: "expanded", UserID: userID, Count: len(expanded)})
	if err != nil {
		return nil, queryError(err)
	}
	return expanded, nil
}

func (s *OrgchartService) Trace(ctx context.Context, userID string) (_ *orgchart.TraceResult, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgchartQuery))
	defer func() { end(returnedError) }()

	trace, err := s.tree().Trace(userID)
	s.trace.ApplyTraceAttributes(span, core.TraceQueryMeta{View: "trace", UserID: userID})
	if err != nil {
		return nil, queryError(err)
	}
	return &trace, nil
}

// queryError 將核心錯誤轉為 API 錯誤；查無 userId 為 404
func queryError(err error) error {
	var unknown *orgchart.UnknownUserError
	if errors.As(err, &unknown) {
		return cErr.NotFound(unknown.Error()).Wrap(err)
	}
	return cErr.InternalServer(err.Error()).Wrap(err)
}
