package activitylog

import "time"

type AppendInput struct {
	AdminID     string
	Action      string
	Details     *string
	SubmitterIP *string
	UserAgent   *string
}

type ActivityLogResponse struct {
	ID          string    `json:"id"`
	AdminID     string    `json:"adminId"`
	Action      string    `json:"action"`
	Details     *string   `json:"details,omitempty"`
	SubmitterIP *string   `json:"submitterIp,omitempty"`
	UserAgent   *string   `json:"userAgent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RecentQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

func mapToResponse(l ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:          l.ID.String(),
		AdminID:     l.AdminID,
		Action:      l.Action,
		Details:     l.Details,
		SubmitterIP: l.SubmitterIP,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
}
