package holiday

type CreateHolidayRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Date        string  `json:"date" binding:"required"`
	Description *string `json:"description"`
	IsRecurring bool    `json:"is_recurring"`
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	IsRecurring *bool   `json:"is_recurring"`
}

type ListHolidaysQuery struct {
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Year        int    `form:"year"`
	IsRecurring *bool  `form:"is_recurring"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
}

// AffectedSchedule describes one user schedule that collides with a
// holiday's weekday.
type AffectedSchedule struct {
	UserID        string `json:"user_id"`
	WorkingHourID string `json:"working_hour_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type AffectedWorkingHours struct {
	Date      string             `json:"date"`
	DayOfWeek string             `json:"day_of_week"`
	UserCount int                `json:"user_count"`
	Users     []AffectedSchedule `json:"users"`
}

type HolidayDetailResponse struct {
	Holiday              HolidayResponse       `json:"holiday"`
	AffectedWorkingHours *AffectedWorkingHours `json:"affected_working_hours,omitempty"`
}

type ProcessConflictsRequest struct {
	HolidayID string `json:"holiday_id" binding:"required,uuid"`
	Action    string `json:"action" binding:"required,oneof=skip delete"`
}

type ProcessConflictsResult struct {
	Action    string `json:"action"`
	Conflicts int    `json:"conflicts"`
	Removed   int    `json:"removed"`
}
