package attendance

import "time"

type CreateAttendanceRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=150,personname"`
	Class        string `json:"class" binding:"required,notblank,max=50"`
	Phone        string `json:"phone" binding:"required,idphone"`
	SocialHandle string `json:"socialHandle" binding:"required,socialhandle"`
	School       string `json:"school" binding:"required,notblank,max=150"`
	City         string `json:"city" binding:"required,notblank,max=100"`
	Province     string `json:"province" binding:"required,notblank,max=100"`
	Branch       string `json:"branch" binding:"required,notblank,max=100"`
}

// UpdateAttendanceRequest: field yang tidak dikirim (nil) tidak diubah.
type UpdateAttendanceRequest struct {
	Name         *string `json:"name" binding:"omitnil,min=2,max=150,personname"`
	Class        *string `json:"class" binding:"omitnil,notblank,max=50"`
	Phone        *string `json:"phone" binding:"omitnil,idphone"`
	SocialHandle *string `json:"socialHandle" binding:"omitnil,socialhandle"`
	School       *string `json:"school" binding:"omitnil,notblank,max=150"`
	City         *string `json:"city" binding:"omitnil,notblank,max=100"`
	Province     *string `json:"province" binding:"omitnil,notblank,max=100"`
	Branch       *string `json:"branch" binding:"omitnil,notblank,max=100"`
}

func (r UpdateAttendanceRequest) patch() AttendancePatch {
	return AttendancePatch{
		Name:         r.Name,
		Class:        r.Class,
		Phone:        r.Phone,
		SocialHandle: r.SocialHandle,
		School:       r.School,
		City:         r.City,
		Province:     r.Province,
		Branch:       r.Branch,
	}
}

type ListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"max=100"`
	Branch string `form:"branch" binding:"max=100"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

const (
	CheckTypePhone        = "phone"
	CheckTypeSocialHandle = "socialHandle"
	CheckTypeInstagram    = "instagram" // alias lama dari form publik
	CheckTypeNameSchool   = "nameSchool"
)

type CheckDuplicateRequest struct {
	Type      string `form:"type" binding:"required"`
	Value     string `form:"value"`
	Name      string `form:"name"`
	School    string `form:"school"`
	ExcludeID string `form:"excludeId"`
}

type CheckDuplicateResponse struct {
	IsDuplicate bool `json:"isDuplicate"`
}

type ExportQuery struct {
	Branch string `form:"branch" binding:"max=100"`
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Class        string    `json:"class"`
	Phone        string    `json:"phone"`
	SocialHandle string    `json:"socialHandle"`
	School       string    `json:"school"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	Branch       string    `json:"branch"`
	SubmitterIP  *string   `json:"submitterIp,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type DailyStatResponse struct {
	Date    string `json:"date"`    // label hari singkat sesuai bahasa request
	IsoDate string `json:"isoDate"` // YYYY-MM-DD di timezone laporan
	Count   int64  `json:"count"`
}

type StatsResponse struct {
	Total          int64               `json:"total"`
	Today          int64               `json:"today"`
	ThisWeek       int64               `json:"thisWeek"`
	ActiveBranches int                 `json:"activeBranches"`
	ByBranch       map[string]int64    `json:"byBranch"`
	DailyStats     []DailyStatResponse `json:"dailyStats"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Class:        a.Class,
		Phone:        a.Phone,
		SocialHandle: a.SocialHandle,
		School:       a.School,
		City:         a.City,
		Province:     a.Province,
		Branch:       a.Branch,
		SubmitterIP:  a.SubmitterIP,
		CreatedAt:    a.CreatedAt,
	}
}
