package model

// ResponseLog 回應摘要；Body 為截斷後的 data
type ResponseLog struct {
	RequestID   string `bson:"request_id" json:"request_id"`
	ProjectName string `bson:"project_name,omitempty" json:"project_name,omitempty"`
	Route       string `bson:"route,omitempty" json:"route,omitempty"`
	Code        int    `bson:"code" json:"code"`
	StatusCode  int    `bson:"status_code" json:"status_code"`
	Bytes       int    `bson:"bytes,omitempty" json:"bytes,omitempty"`
	DurationMs  int64  `bson:"duration_ms" json:"duration_ms"`
	Body        string `bson:"body,omitempty" json:"body,omitempty"`
	Error       string `bson:"error,omitempty" json:"error,omitempty"`
	Version     string `bson:"version,omitempty" json:"version,omitempty"`
	ResponseTS  string `bson:"response_ts" json:"response_ts"`
	LoggedAt    string `bson:"logged_at" json:"logged_at"`
}
