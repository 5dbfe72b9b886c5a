package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog 审计日志表 — 对应 audit_logs
// 仅追加，不更新不删除
type AuditLog struct {
	AuditID    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_id"`
	ActorID    string         `gorm:"type:varchar(64);not null;default:''"           json:"actor_id"`
	Action     string         `gorm:"type:varchar(64);not null"                      json:"action"`
	EntityType string         `gorm:"type:varchar(64);not null"                      json:"entity_type"`
	EntityID   string         `gorm:"type:varchar(64);not null"                      json:"entity_id"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"                                     json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }
