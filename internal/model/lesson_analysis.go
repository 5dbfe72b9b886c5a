package model

// LessonAnalysis 课程分析表 — 对应 lesson_analyses
// 教练针对已确认座位撰写的课后分析与评分（1-5）
type LessonAnalysis struct {
	AnalysisID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"analysis_id"`
	SeatID     string `gorm:"type:uuid;not null"                             json:"seat_id"`
	CoachID    string `gorm:"type:uuid;not null"                             json:"coach_id"`
	Content    string `gorm:"type:text;not null"                             json:"content"`
	Rating     int    `gorm:"not null"                                       json:"rating"`
	SoftDeleteModel
}

// TableName 指定表名
func (LessonAnalysis) TableName() string { return "lesson_analyses" }
