package leave

import "time"

type CreateLeaveRequest struct {
	Type      string `form:"type" binding:"required,oneof=sakit cuti"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	Reason    string `form:"reason" binding:"required,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type ListLeavesQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Type    string `form:"type" binding:"omitempty,oneof=sakit cuti"`
	Year    int    `form:"year"`
	UserID  string `form:"user_id" binding:"omitempty,uuid"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type ProofResponse struct {
	ID         string  `json:"id"`
	Filename   string  `json:"filename"`
	MimeType   string  `json:"mime_type,omitempty"`
	Size       int64   `json:"size"`
	IsVerified bool    `json:"is_verified"`
	URL        *string `json:"url,omitempty"`
}

type LeaveResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	DurationDays int             `json:"duration_days"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"created_at"`
	Proofs       []ProofResponse `json:"proofs,omitempty"`
}

type QuotaSnapshot struct {
	Year       int `json:"year"`
	TotalQuota int `json:"total_quota"`
	UsedQuota  int `json:"used_quota"`
	Remaining  int `json:"remaining"`
}

// SummaryResponse aggregates a user's leave picture for one year.
type SummaryResponse struct {
	Year       int             `json:"year"`
	Quota      QuotaSnapshot   `json:"quota"`
	ByStatus   map[string]int  `json:"by_status"`
	ByType     map[string]int  `json:"by_type"`
	ByDuration map[string]int  `json:"by_duration"`
	Upcoming   []LeaveResponse `json:"upcoming"`
}
