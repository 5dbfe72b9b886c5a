package model

// RecordShare 记录分享表 — 对应 record_shares
// 将一条课程分析以只读方式分享给另一名教练
type RecordShare struct {
	ShareID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"share_id"`
	AnalysisID string `gorm:"type:uuid;not null"                             json:"analysis_id"`
	SharedWith string `gorm:"type:uuid;not null"                             json:"shared_with"`
	BaseModel
}

// TableName 指定表名
func (RecordShare) TableName() string { return "record_shares" }
