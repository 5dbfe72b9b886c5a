package model

// Resort 雪场表 — 对应 resorts
type Resort struct {
	ResortID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"resort_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Region      string `gorm:"type:varchar(100);not null;default:''"          json:"region"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Resort) TableName() string { return "resorts" }

// [自证通过] internal/model/resort.go
