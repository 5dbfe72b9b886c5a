package model

// StudentMapping 学员映射表 — 对应 student_mappings
// 领取座位时由身份信息创建；UserID 仅在领取人已登录时存在
type StudentMapping struct {
	MappingID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mapping_id"`
	UserID       *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	StudentName  string  `gorm:"type:varchar(100);not null"                     json:"student_name"`
	ContactPhone string  `gorm:"type:varchar(30);not null;default:''"           json:"contact_phone"`
	BaseModel
}

// TableName 指定表名
func (StudentMapping) TableName() string { return "student_mappings" }
