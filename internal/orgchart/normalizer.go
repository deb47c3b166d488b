package orgchart

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrMissingUserID 原始 profile 缺少 user_id，無法成為樹中的節點
var ErrMissingUserID = errors.New("orgchart: profile has no user_id")

// Normalizer converts raw directory profiles into Dino records. Display
// fields never fail the conversion: a missing or malformed field becomes
// null (or "" for first_name and picture) and is logged.
type Normalizer struct {
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize 將一筆原始 profile 轉為 Dino
func (n *Normalizer) Normalize(profile map[string]any) (Dino, error) {
	userID, ok := ProfileUserID(profile)
	if !ok {
		return Dino{}, ErrMissingUserID
	}

	dino := Dino{
		UserID:     userID,
		EmployeeID: n.hrisValue(profile, userID, "EmployeeID"),
		ManagerID:  n.hrisValue(profile, userID, "WorkersManagersEmployeeID"),
	}
	dino.Data = Data{
		UserID:    userID,
		FirstName: n.requiredField(profile, userID, "first_name"),
		LastName:  n.staffField(profile, userID, "last_name"),
		Picture:   n.requiredField(profile, userID, "picture"),
		Title:     n.staffField(profile, userID, "business_title"),
		FunTitle:  n.staffField(profile, userID, "fun_title"),
		Location:  n.staffField(profile, userID, "location_preference"),
	}
	return dino, nil
}

// NormalizeAll 轉換整份名冊，略過沒有 user_id 的資料
func (n *Normalizer) NormalizeAll(profiles []map[string]any) []Dino {
	dinos := make([]Dino, 0, len(profiles))
	for i, profile := range profiles {
		dino, err := n.Normalize(profile)
		if err != nil {
			n.logger.Warn("skip profile", zap.Int("position", i), zap.Error(err))
			continue
		}
		dinos = append(dinos, dino)
	}
	return dinos
}

func (n *Normalizer) staffField(profile map[string]any, userID, field string) *string {
	value, err := stringValue(profile, field, "value")
	if err != nil {
		n.logger.Error("malformed field", zap.String("field", field), zap.String("userId", userID), zap.Error(err))
		return nil
	}
	return value
}

func (n *Normalizer) requiredField(profile map[string]any, userID, field string) string {
	value := n.staffField(profile, userID, field)
	if value == nil {
		n.logger.Error("missing field", zap.String("field", field), zap.String("userId", userID))
		return ""
	}
	return *value
}

// hrisValue 讀取 access_information.hris.values.<key>，數字型別轉為整數字串
func (n *Normalizer) hrisValue(profile map[string]any, userID, key string) string {
	raw, ok := lookup(profile, "access_information", "hris", "values", key)
	if !ok || raw == nil {
		n.logger.Debug("missing hris value", zap.String("key", key), zap.String("userId", userID))
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		n.logger.Error("malformed hris value",
			zap.String("key", key),
			zap.String("userId", userID),
			zap.String("type", fmt.Sprintf("%T", raw)),
		)
		return ""
	}
}

// ProfileUserID 取出原始 profile 的 user_id.value
func ProfileUserID(profile map[string]any) (string, bool) {
	userID, err := stringValue(profile, "user_id", "value")
	if err != nil || userID == nil || *userID == "" {
		return "", false
	}
	return *userID, true
}

func stringValue(profile map[string]any, path ...string) (*string, error) {
	raw, ok := lookup(profile, path...)
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", raw)
	}
	return &s, nil
}

// lookup 沿著 path 取值，支援 JSON 解出的 map 與 mongo 的 bson.M / bson.D
func lookup(doc any, path ...string) (any, bool) {
	current := doc
	for _, key := range path {
		switch m := current.(type) {
		case map[string]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			current = v
		case primitive.M:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			current = v
		case primitive.D:
			found := false
			for _, e := range m {
				if e.Key == key {
					current, found = e.Value, true
					break
				}
			}
			if !found {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return current, true
}
