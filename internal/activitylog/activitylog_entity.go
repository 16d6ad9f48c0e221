package activitylog

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is append-only: entries are never updated or deleted.
type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminID     string    `gorm:"type:varchar(64);not null;index"` // referensi saja, bukan FK
	Action      string    `gorm:"type:varchar(64);not null"`
	Details     *string   `gorm:"type:text"`
	SubmitterIP *string   `gorm:"type:varchar(64)"`
	UserAgent   *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

const (
	ActionLogin            = "login"
	ActionUpdateAttendance = "update_attendance"
	ActionDeleteAttendance = "delete_attendance"
	ActionClearAll         = "clear_all_attendance"
	ActionExport           = "export_attendance"
)
