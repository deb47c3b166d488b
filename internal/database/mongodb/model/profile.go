package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Profile 是目錄服務匯出的原始 profile，欄位結構不固定，全部保留在 Document
type Profile struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	Document  bson.M             `json:"-" bson:",inline"`
}

// Raw 回傳不含 mongo 管理欄位的原始 profile
func (p *Profile) Raw() map[string]any {
	raw := make(map[string]any, len(p.Document))
	for k, v := range p.Document {
		raw[k] = v
	}
	return raw
}

const (
	ProfileFieldUserID     = "user_id.value"
	ProfileFieldEmployeeID = "access_information.hris.values.EmployeeID"
	ProfileFieldManagerID  = "access_information.hris.values.WorkersManagersEmployeeID"
)

var ProfileIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: ProfileFieldUserID, Value: 1}},
		Options: options.Index().SetName("uniq_user_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: ProfileFieldEmployeeID, Value: 1}},
		Options: options.Index().SetName("idx_hris_employee_id"),
	},
	{
		Keys:    bson.D{{Key: ProfileFieldManagerID, Value: 1}},
		Options: options.Index().SetName("idx_hris_manager_id"),
	},
}
