package dto

import (
	"time"

	"orgchart/internal/pkg/request"
)

// 路徑參數 :userId
type UserIDUri struct {
	UserID string `uri:"userId" json:"userId" binding:"required,max=256"`
}

func (UserIDUri) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"UserID.required": "userId is required",
		"UserID.max":      "userId must be at most 256 characters",
	}
}

// 目前組織圖的建樹摘要
type OrgchartStatsDto struct {
	RosterSize int        `json:"rosterSize"`
	Nodes      int        `json:"nodes"`
	Roots      int        `json:"roots"`
	Excluded   int        `json:"excluded"`
	Source     string     `json:"source,omitempty"`
	BuiltAt    *time.Time `json:"builtAt"` // 尚未建樹時為 null
}

// CLI 匯入檔案
type ImportFileDto struct {
	Path string `validate:"required,file"`
}

// CLI 刪除單筆 profile
type RemoveProfileDto struct {
	UserID string `validate:"required,max=256"`
}

// CLI 離線查詢
type ChartQueryDto struct {
	Path   string `validate:"required,file"`
	View   string `validate:"oneof=full related directs expanded trace"`
	UserID string `validate:"required_unless=View full"`
}
