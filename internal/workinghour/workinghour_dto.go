package workinghour

type ScheduleInput struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type AssignWorkingHoursRequest struct {
	UserIDs       []string        `json:"user_ids" binding:"required,min=1,dive,uuid"`
	Schedules     []ScheduleInput `json:"schedules" binding:"required,min=1,dive"`
	CheckHolidays bool            `json:"check_holidays"`
}

type UpdateUserScheduleRequest struct {
	Schedules  []ScheduleInput `json:"schedules" binding:"required,min=1,dive"`
	ReplaceAll bool            `json:"replace_all"`
}

type WorkingHourResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	DayOfWeek       string `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// WeekScheduleResponse lists monday through sunday; days without an entry
// carry a nil schedule.
type WeekScheduleResponse struct {
	UserID   string                          `json:"user_id"`
	Schedule map[string]*WorkingHourResponse `json:"schedule"`
}

type HolidayConflict struct {
	Date        string `json:"date"`
	DayOfWeek   string `json:"day_of_week"`
	HolidayName string `json:"holiday_name"`
}

type AssignResultResponse struct {
	AssignedUsers    int                   `json:"assigned_users"`
	AssignedEntries  int                   `json:"assigned_entries"`
	HolidayConflicts []HolidayConflict     `json:"holiday_conflicts,omitempty"`
	Entries          []WorkingHourResponse `json:"entries"`
}
