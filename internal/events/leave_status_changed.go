package events

import "time"

const LeaveStatusChangedTopic = "absensi.leave.status.v1"

type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID string    `json:"leave_request_id"`
	UserID         string    `json:"user_id"`
	LeaveType      string    `json:"leave_type"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	DurationDays   int       `json:"duration_days"`
	OccurredAt     time.Time `json:"occurred_at"`
}
