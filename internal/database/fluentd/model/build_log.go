package model

// BuildLog 每次組織圖重建送出一筆
type BuildLog struct {
	ProjectName string  `bson:"project_name,omitempty" json:"project_name,omitempty"`
	Source      string  `bson:"source" json:"source"`
	Trigger     string  `bson:"trigger" json:"trigger"`
	Profiles    int     `bson:"profiles" json:"profiles"`
	RosterSize  int     `bson:"roster_size" json:"roster_size"`
	Nodes       int     `bson:"nodes" json:"nodes"`
	Roots       int     `bson:"roots" json:"roots"`
	Excluded    int     `bson:"excluded" json:"excluded"`
	DurationMs  float64 `bson:"duration_ms" json:"duration_ms"`
	Error       string  `bson:"error,omitempty" json:"error,omitempty"`
	Version     string  `bson:"version" json:"version"`
	LoggedAt    string  `bson:"logged_at" json:"logged_at"`
}
