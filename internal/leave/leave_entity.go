package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSakit = "sakit"
	TypeCuti  = "cuti"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// MaxProofs caps attachments per request.
	MaxProofs = 5
)

// LeaveRequest rows are append-only except for the status column, which
// walks pending -> approved/rejected. Rejected is terminal.
type LeaveRequest struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string    `gorm:"column:type;type:varchar(10);not null"`
	Status    string    `gorm:"column:status;type:varchar(10);not null;default:pending"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Reason    string    `gorm:"column:reason;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Proofs []LeaveRequestProof `gorm:"foreignKey:LeaveRequestID;constraint:OnDelete:CASCADE"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// DurationDays counts calendar days inclusive of both endpoints.
func (lr LeaveRequest) DurationDays() int {
	return int(lr.EndDate.Sub(lr.StartDate).Hours()/24) + 1
}

type LeaveRequestProof struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID  `gorm:"column:leave_request_id;type:uuid;not null;index"`
	Path           string     `gorm:"column:path;type:varchar(500);not null"`
	Filename       string     `gorm:"column:filename;type:varchar(255);not null"`
	MimeType       string     `gorm:"column:mime_type;type:varchar(100)"`
	Size           int64      `gorm:"column:size"`
	IsVerified     bool       `gorm:"column:is_verified;not null;default:false"`
	VerifiedBy     *uuid.UUID `gorm:"column:verified_by;type:uuid"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (LeaveRequestProof) TableName() string {
	return "leave_request_proofs"
}
