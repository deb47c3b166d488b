package repository

import (
	"context"
	"errors"
	"time"

	"orgchart/config"
	"orgchart/internal/core"
	client "orgchart/internal/database/client"
	"orgchart/internal/orgchart"
	"orgchart/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

const snapshotVersion = 1

var ErrSnapshotMissing = errors.New("roster snapshot not found")

// RosterCacheRepository 以壓縮快照保存最近一次成功載入的名冊
type RosterCacheRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
	codec  core.SnapshotCodec
	ttl    time.Duration
	key    string
}

func NewRosterCacheRepository(trace *telemetry.Trace, client *client.RedisClient, conf *config.Configuration) *RosterCacheRepository {
	codec := core.SnapshotCodec(conf.Orgchart.CacheCodec)
	if codec == "" {
		codec = core.SnapshotCodecBrotli
	}
	return &RosterCacheRepository{
		trace:  trace,
		client: client.Client(),
		codec:  codec,
		ttl:    time.Duration(conf.Orgchart.CacheTTLSeconds) * time.Second,
		key:    core.RedisKeyRosterSnapshot.WithPrefix(conf.Redis.KeyPrefix),
	}
}

// Save 覆寫快照；ttl 為 0 代表不過期
func (repository *RosterCacheRepository) Save(contextValue context.Context, source core.RosterSource, dinos []orgchart.Dino) (returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	payload, encodeError := encodeSnapshot(repository.codec, snapshot{
		Version: snapshotVersion,
		Source:  string(source),
		Dinos:   dinos,
	})
	if encodeError != nil {
		return encodeError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceSnapshotMeta{
		Op:         "save",
		Key:        repository.key,
		Codec:      string(repository.codec),
		Records:    len(dinos),
		Bytes:      len(payload),
		TTLSeconds: int64(repository.ttl.Seconds()),
	})
	return repository.client.Set(contextValue, repository.key, payload, repository.ttl).Err()
}

// Load 讀回快照；不存在時回傳 ErrSnapshotMissing
func (repository *RosterCacheRepository) Load(contextValue context.Context) (_ []orgchart.Dino, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	payload, getError := repository.client.Get(contextValue, repository.key).Bytes()
	if errors.Is(getError, redis.Nil) {
		return nil, ErrSnapshotMissing
	}
	if getError != nil {
		return nil, getError
	}

	snap, codec, decodeError := decodeSnapshot(payload)
	if decodeError != nil {
		return nil, decodeError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceSnapshotMeta{
		Op:      "load",
		Key:     repository.key,
		Codec:   string(codec),
		Records: len(snap.Dinos),
		Bytes:   len(payload),
	})
	return snap.Dinos, nil
}
