package config

// Orgchart 組織圖建樹與快取設定
type Orgchart struct {
	// 六欄位 cron（含秒），空字串代表停用排程
	RefreshSpec string `mapstructure:"REFRESH_SPEC" json:"refreshSpec" yaml:"refreshSpec"`
	// Redis 名冊快照存活秒數，0 代表不過期
	CacheTTLSeconds int64 `mapstructure:"CACHE_TTL_SECONDS" json:"cacheTtlSeconds" yaml:"cacheTtlSeconds"`
	// brotli / zstd
	CacheCodec string `mapstructure:"CACHE_CODEC" json:"cacheCodec" yaml:"cacheCodec"`
	// MongoDB 讀取失敗時改用 Redis 快照
	FallbackToCache bool `mapstructure:"FALLBACK_TO_CACHE" json:"fallbackToCache" yaml:"fallbackToCache"`
}

const DefaultRefreshSpec = "0 */15 * * * *"
