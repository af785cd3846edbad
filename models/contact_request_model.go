package models

import (
	"time"
)

const (
	ContactStatusPending   = "pending"
	ContactStatusAccepted  = "accepted"
	ContactStatusRejected  = "rejected"
	ContactStatusContacted = "contacted"
)

type ContactRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"not null" json:"student"`
	TeacherID uint   `gorm:"not null" json:"teacher"`
	Message   string `gorm:"type:text" json:"message"`
	Status    string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Student User           `gorm:"foreignKey:StudentID" json:"-"`
	Teacher TeacherProfile `gorm:"foreignKey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
