package model

import "time"

// 课程项目
const (
	DisciplineSki       = "ski"
	DisciplineSnowboard = "snowboard"
)

// Lesson 课程表 — 对应 lessons
// 课程由教练创建，归属某个雪场；座位数在创建时固定，随课程一并生成 order_seats
type Lesson struct {
	LessonID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	InstructorID string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	ResortID     string    `gorm:"type:uuid;not null"                             json:"resort_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Discipline   string    `gorm:"type:varchar(20);not null"                      json:"discipline"`
	ScheduledAt  time.Time `gorm:"not null"                                       json:"scheduled_at"`
	DurationMin  int       `gorm:"not null;default:120"                           json:"duration_min"`
	SeatCount    int       `gorm:"not null"                                       json:"seat_count"`
	SoftDeleteModel

	Resort *Resort `gorm:"foreignKey:ResortID"     json:"resort,omitempty"`
	Seats  []OrderSeat `gorm:"foreignKey:LessonID" json:"seats,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }
