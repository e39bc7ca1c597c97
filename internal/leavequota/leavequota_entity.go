package leavequota

import (
	"time"

	"github.com/google/uuid"
)

type LeaveQuota struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_leave_quotas_user_year"`
	Year       int       `gorm:"column:year;not null;uniqueIndex:idx_leave_quotas_user_year"`
	TotalQuota int       `gorm:"column:total_quota;not null;default:0"`
	UsedQuota  int       `gorm:"column:used_quota;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (LeaveQuota) TableName() string {
	return "leave_quotas"
}

func (q LeaveQuota) Remaining() int {
	return q.TotalQuota - q.UsedQuota
}
