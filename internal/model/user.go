package model

// 用户角色
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User 用户表 — 对应 users
// 教练（instructor）既可开课也可撰写课程分析；学员（student）通过邀请码绑定座位
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Phone        string `gorm:"type:varchar(30);not null"                      json:"phone"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
