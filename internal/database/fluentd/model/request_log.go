package model

// RequestLog 進站請求
type RequestLog struct {
	RequestID   string `bson:"request_id" json:"request_id"`
	Method      string `bson:"method" json:"method"`
	Route       string `bson:"route,omitempty" json:"route,omitempty"`
	Path        string `bson:"path" json:"path"`
	UserID      string `bson:"user_id,omitempty" json:"user_id,omitempty"` // 被查詢的員工
	ProjectName string `bson:"project_name,omitempty" json:"project_name,omitempty"`
	IPHash      string `bson:"ip_hash,omitempty" json:"ip_hash,omitempty"`
	UserAgent   string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Version     string `bson:"version,omitempty" json:"version,omitempty"`
	RequestTS   string `bson:"request_ts" json:"request_ts"`
	LoggedAt    string `bson:"logged_at" json:"logged_at"`
}
