package orgchart

import "strings"

// Data 是對外輸出的精簡員工資料（前端直接使用的欄位）
type Data struct {
	UserID    string  `json:"user_id" bson:"user_id"`
	FirstName string  `json:"first_name" bson:"first_name"`
	LastName  *string `json:"last_name" bson:"last_name"`
	Picture   string  `json:"picture" bson:"picture"`
	Title     *string `json:"title" bson:"title"`
	FunTitle  *string `json:"fun_title" bson:"fun_title"`
	Location  *string `json:"location" bson:"location"`
}

// Dino is a normalized employee record. EmployeeID and ManagerID carry the
// reporting edges; UserID is the public key every query is addressed by.
type Dino struct {
	UserID     string `json:"userId" bson:"userId"`
	EmployeeID string `json:"employeeId" bson:"employeeId"`
	ManagerID  string `json:"managerId,omitempty" bson:"managerId,omitempty"`
	Data       Data   `json:"data" bson:"data"`
}

// compareDinos 依 (first_name, last_name) 排序；last_name 為 null 時視為空字串
func compareDinos(a, b *Dino) int {
	if c := strings.Compare(a.Data.FirstName, b.Data.FirstName); c != 0 {
		return c
	}
	return strings.Compare(deref(a.Data.LastName), deref(b.Data.LastName))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
