package workinghour

import (
	"time"

	"github.com/google/uuid"
)

const timeLayout = "15:04"

var validDays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// WeekDays is the canonical week ordering used for schedule views.
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type WorkingHour struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_working_hours_user_day"`
	DayOfWeek string    `gorm:"column:day_of_week;type:varchar(10);not null;uniqueIndex:idx_working_hours_user_day"`
	StartTime string    `gorm:"column:start_time;type:time;not null"`
	EndTime   string    `gorm:"column:end_time;type:time;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (WorkingHour) TableName() string {
	return "working_hours"
}

// DurationMinutes returns the scheduled length of the shift. Shifts where
// end_time is not after start_time wrap past midnight.
func (w WorkingHour) DurationMinutes() int {
	start, err := time.Parse(timeLayout, w.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse(timeLayout, w.EndTime)
	if err != nil {
		return 0
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return int(end.Sub(start).Minutes())
}
