package models

import (
	"time"
)

// UserDashboard keeps denormalized contact-request counters per user,
// updated in step with contact-request creation and status changes.
type UserDashboard struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	UserID           uint `gorm:"not null;unique" json:"user_id"`
	RequestsSent     int  `gorm:"default:0" json:"requests_sent"`
	RequestsReceived int  `gorm:"default:0" json:"requests_received"`
	PendingRequests  int  `gorm:"default:0" json:"pending_requests"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}
