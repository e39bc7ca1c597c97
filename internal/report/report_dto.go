package report

type ReportQuery struct {
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

const (
	DayStatusWork    = "work"
	DayStatusPresent = "present"
	DayStatusAbsent  = "absent"
	DayStatusLeave   = "leave"
	DayStatusHoliday = "holiday"
	DayStatusOff     = "off"

	DeltaOvertime  = "overtime"
	DeltaUndertime = "undertime"
	DeltaExact     = "exact"
)

type DayReport struct {
	Date             string  `json:"date"`
	DayOfWeek        string  `json:"day_of_week"`
	Status           string  `json:"status"`
	HolidayName      string  `json:"holiday_name,omitempty"`
	LeaveType        string  `json:"leave_type,omitempty"`
	ScheduledMinutes int     `json:"scheduled_minutes"`
	WorkedMinutes    int     `json:"worked_minutes"`
	ClockIn          *string `json:"clock_in,omitempty"`
	ClockOut         *string `json:"clock_out,omitempty"`
	Delta            string  `json:"delta,omitempty"`
	DeltaMinutes     int     `json:"delta_minutes"`
}

type ReportSummary struct {
	WorkDays         int `json:"work_days"`
	PresentDays      int `json:"present_days"`
	AbsentDays       int `json:"absent_days"`
	LeaveDays        int `json:"leave_days"`
	HolidayCount     int `json:"holiday_count"`
	ScheduledMinutes int `json:"scheduled_minutes"`
	WorkedMinutes    int `json:"worked_minutes"`
	OvertimeMinutes  int `json:"overtime_minutes"`
	UndertimeMinutes int `json:"undertime_minutes"`
	AvgWorkedMinutes int `json:"avg_worked_minutes"`
}

type QuotaSnapshot struct {
	Year       int `json:"year"`
	TotalQuota int `json:"total_quota"`
	UsedQuota  int `json:"used_quota"`
	Remaining  int `json:"remaining"`
}

type ReportResponse struct {
	UserID    string        `json:"user_id"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []DayReport   `json:"days"`
	Summary   ReportSummary `json:"summary"`
	Quota     QuotaSnapshot `json:"quota"`
}
