package core

// gin context keys
const (
	ContextTraceKey        = "telemetry_trace_ctx"
	ContextRequestIDKey    = "request_id"
	ContextRequestStartKey = "request_start"
)

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanOrgchartRebuild    TraceSpanName = "orgchart_rebuild"
	SpanOrgchartQuery      TraceSpanName = "orgchart_query"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricHttpSuccessTotal    MetricName = "success_total"
	MetricHttpFailTotal       MetricName = "fail_total"
	MetricTreeBuildDuration   MetricName = "tree_build_duration_seconds"
	MetricTreeNodes           MetricName = "tree_nodes"
	MetricTreeExcluded        MetricName = "tree_excluded_records"
	MetricTreeRebuildTotal    MetricName = "tree_rebuild_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelSource   MetricLabelName = "source"
)

// 進站請求；Headers 已去除敏感欄位
type LoggerRequestMeta struct {
	Method    string            `trace:"request.method"`
	Route     string            `trace:"http.route"`
	Path      string            `trace:"request.path"`
	Query     string            `trace:"request.query,omitempty"`
	UserID    string            `trace:"orgchart.user_id,omitempty"`
	UserAgent string            `trace:"user_agent.original"`
	ClientIP  string            `trace:"client.address"`
	Headers   map[string]string `trace:"http.request.header"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}
type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	RequestID         string `trace:"http.request.id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

// 組織圖重建
type TraceRebuildMeta struct {
	Source     string  `trace:"orgchart.source"`
	Profiles   int     `trace:"orgchart.profiles"`
	RosterSize int     `trace:"orgchart.roster_size"`
	Nodes      int     `trace:"orgchart.nodes"`
	Roots      int     `trace:"orgchart.roots"`
	Excluded   int     `trace:"orgchart.excluded"`
	DurationMs float64 `trace:"orgchart.build_ms"`
	Error      string  `trace:"error.message,omitempty"`
}

// 組織圖查詢
type TraceQueryMeta struct {
	View   string `trace:"orgchart.view"`
	UserID string `trace:"orgchart.user_id,omitempty"`
	Count  int    `trace:"result.count,omitempty"`
}

// Redis 名冊快照
type TraceSnapshotMeta struct {
	Op         string `trace:"snapshot.op"` // "save" / "load"
	Key        string `trace:"snapshot.key"`
	Codec      string `trace:"snapshot.codec"`
	Records    int    `trace:"snapshot.records"`
	Bytes      int    `trace:"snapshot.bytes"`
	TTLSeconds int64  `trace:"snapshot.ttl_sec,omitempty"`
}

// Mongo profile 存取
type TraceProfileRepoMeta struct {
	Op            string `trace:"op"`
	UserID        string `trace:"profile.user_id,omitempty"`
	Count         int    `trace:"result.count,omitempty"`
	MatchedCount  int64  `trace:"mongo.matched_count,omitempty"`
	UpsertedCount int64  `trace:"mongo.upserted_count,omitempty"`
	DeletedCount  int64  `trace:"mongo.deleted_count,omitempty"`
}
