package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Date        time.Time `gorm:"column:date;type:date;not null;index"`
	Description *string   `gorm:"column:description;type:text"`
	IsRecurring bool      `gorm:"column:is_recurring;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// Matches reports whether this holiday falls on the given date. Recurring
// holidays match on month and day regardless of year.
func (h Holiday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() &&
		h.Date.Month() == date.Month() &&
		h.Date.Day() == date.Day()
}
