package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClockTypeIn  = "in"
	ClockTypeOut = "out"

	MethodManual = "manual"
	MethodQRCode = "qr_code"

	// DefaultLocation is recorded when a clock event carries no location.
	DefaultLocation = "Remote"
)

// Attendance is one clock event. A working day is a pair of rows, one
// per clock_type, never a single mutated row.
type Attendance struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_attendances_user_created"`
	ClockType string    `gorm:"column:clock_type;type:varchar(3);not null"`
	Method    string    `gorm:"column:method;type:varchar(10);not null;default:manual"`
	Location  string    `gorm:"column:location;type:varchar(255);not null;default:Remote"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_attendances_user_created"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type TaskLog struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Date        time.Time `gorm:"column:date;type:date;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	PhotoPath   *string   `gorm:"column:photo_path;type:varchar(500)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (TaskLog) TableName() string {
	return "task_logs"
}
