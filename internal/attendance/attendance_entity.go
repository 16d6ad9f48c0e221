package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;type:varchar(150);not null;index:idx_attendance_name_school_created,priority:1"`
	Class        string    `gorm:"column:class;type:varchar(50);not null"`
	Phone        string    `gorm:"column:phone;type:varchar(20);not null;uniqueIndex:uq_attendance_phone"`
	SocialHandle string    `gorm:"column:social_handle;type:varchar(30);not null;uniqueIndex:uq_attendance_social_handle"`
	School       string    `gorm:"column:school;type:varchar(150);not null;index:idx_attendance_name_school_created,priority:2"`
	City         string    `gorm:"column:city;type:varchar(100);not null"`
	Province     string    `gorm:"column:province;type:varchar(100);not null"`
	Branch       string    `gorm:"column:branch;type:varchar(100);not null;index:idx_attendance_branch"`
	SubmitterIP  *string   `gorm:"column:submitter_ip;type:varchar(64)"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_attendance_created_at;index:idx_attendance_name_school_created,priority:3"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}

// AttendancePatch holds the fields an update may change. Nil means keep.
type AttendancePatch struct {
	Name         *string
	Class        *string
	Phone        *string
	SocialHandle *string
	School       *string
	City         *string
	Province     *string
	Branch       *string
}

func (p AttendancePatch) IsEmpty() bool {
	return len(p.columns()) == 0
}

// Apply merges p into a; id, submitter ip and createdAt are never touched.
func (p AttendancePatch) Apply(a *Attendance) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.Name, p.Name)
	set(&a.Class, p.Class)
	set(&a.Phone, p.Phone)
	set(&a.SocialHandle, p.SocialHandle)
	set(&a.School, p.School)
	set(&a.City, p.City)
	set(&a.Province, p.Province)
	set(&a.Branch, p.Branch)
}

func (p AttendancePatch) columns() map[string]any {
	cols := make(map[string]any)
	add := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	add("name", p.Name)
	add("class", p.Class)
	add("phone", p.Phone)
	add("social_handle", p.SocialHandle)
	add("school", p.School)
	add("city", p.City)
	add("province", p.Province)
	add("branch", p.Branch)
	return cols
}

// ListFilter: Page is 1-indexed.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
	Branch string
}

func (f ListFilter) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Summary is the raw material for statistics.
type Summary struct {
	Total    int64
	ByBranch map[string]int64
	// CreatedAt of every record created at or after the requested instant.
	Recent []time.Time
}
