package attendance

import "time"

type RecordClockRequest struct {
	ClockType string `json:"clock_type" binding:"required,oneof=in out"`
	Method    string `json:"method" binding:"omitempty,oneof=manual qr_code"`
	Location  string `json:"location" binding:"omitempty,max=255"`
}

type AttendanceResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClockType string    `json:"clock_type"`
	Method    string    `json:"method"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkDuration is derived from today's clock-in and clock-out pair.
type WorkDuration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

type TodayResponse struct {
	Date         string               `json:"date"`
	Records      []AttendanceResponse `json:"records"`
	ClockedIn    bool                 `json:"clocked_in"`
	ClockedOut   bool                 `json:"clocked_out"`
	WorkDuration WorkDuration         `json:"work_duration"`
}

type ListQuery struct {
	Days      int    `form:"days"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Date      string `form:"date"`
	ClockType string `form:"clock_type" binding:"omitempty,oneof=in out"`
	Method    string `form:"method" binding:"omitempty,oneof=manual qr_code"`
	SortBy    string `form:"sort_by"`
	SortDir   string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

type CreateTaskLogRequest struct {
	Date        string `form:"date" binding:"required"`
	Description string `form:"description" binding:"required,max=2000"`
}

type UpdateTaskLogRequest struct {
	Description *string `form:"description" binding:"omitempty,max=2000"`
	RemovePhoto bool    `form:"remove_photo"`
}

type TaskLogResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	HasPhoto    bool    `json:"has_photo"`
}
