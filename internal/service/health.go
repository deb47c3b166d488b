package service

import (
	"sync/atomic"
	"time"
)

// Readiness 最近一次建樹的狀態
type Readiness struct {
	Ready     bool       `json:"ready"`
	Source    string     `json:"source,omitempty"`
	Nodes     int        `json:"nodes"`
	BuiltAt   *time.Time `json:"builtAt"`
	LastError string     `json:"lastError,omitempty"`
}

// HealthService 第一次建樹成功後才 ready；關機時由 App 關閉
type HealthService struct {
	live   atomic.Bool
	ready  atomic.Bool
	detail atomic.Pointer[Readiness]
}

func NewHealthService() *HealthService {
	s := &HealthService{}
	s.live.Store(true)
	s.detail.Store(&Readiness{})
	return s
}

// MarkBuilt 建樹成功
func (s *HealthService) MarkBuilt(source string, nodes int, builtAt time.Time) {
	s.detail.Store(&Readiness{Source: source, Nodes: nodes, BuiltAt: &builtAt})
	s.ready.Store(true)
}

// MarkBuildFailed 重建失敗時仍以舊樹服務，ready 不變，只記下錯誤
func (s *HealthService) MarkBuildFailed(err error) {
	next := *s.detail.Load()
	next.LastError = err.Error()
	s.detail.Store(&next)
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

func (s *HealthService) Readiness() Readiness {
	detail := *s.detail.Load()
	detail.Ready = s.ready.Load()
	return detail
}
