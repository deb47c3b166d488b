package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string

// WithPrefix 以 ":" 串接前綴，prefix 為空時用 RedisKeyServerName
func (k RedisKey) WithPrefix(prefix string) string {
	if prefix == "" {
		prefix = string(RedisKeyServerName)
	}
	return prefix + ":" + string(k)
}
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBOrgchart MongoDatabaseName = "orgchart"
)

// MongoDB collections
const (
	// 目錄服務匯出的原始 profile（CIS 格式）
	MongoCollectionProfiles MongoCollection = "profiles"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName     RedisKey = "orgchart"
	RedisKeyRosterSnapshot RedisKey = "roster:snapshot" // 正規化後名冊的壓縮快照，前面接 REDIS__KEY_PREFIX
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdBuild    FluentdSubTag = "orgchart_build_log"
)

// RosterSource 建樹時名冊的來源
type RosterSource string

const (
	RosterSourceMongo RosterSource = "mongo"
	RosterSourceCache RosterSource = "cache"
	RosterSourceFile  RosterSource = "file"
)

// SnapshotCodec 名冊快照壓縮格式
type SnapshotCodec string

const (
	SnapshotCodecBrotli SnapshotCodec = "brotli"
	SnapshotCodecZstd   SnapshotCodec = "zstd"
)
