package admin

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex:uq_admin_username"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Admin) TableName() string {
	return "admin_users"
}
