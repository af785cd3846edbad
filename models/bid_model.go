package models

import (
	"time"
)

const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
	BidStatusClosed   = "closed"
)

type Bid struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TutorID   uint   `gorm:"not null;uniqueIndex:idx_tutor_job" json:"tutor"`
	JobPostID uint   `gorm:"not null;uniqueIndex:idx_tutor_job" json:"job_post"`
	Amount    uint   `gorm:"default:0" json:"amount"`
	Message   string `gorm:"type:text" json:"message"`
	Status    string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Tutor   TeacherProfile `gorm:"foreignKey:TutorID" json:"-"`
	JobPost JobPost        `gorm:"foreignKey:JobPostID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
