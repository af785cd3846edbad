package models

import (
	"time"
)

type TeacherReview struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ContactRequestID uint   `gorm:"not null;unique" json:"contact_request"`
	StudentID        uint   `gorm:"not null" json:"student"`
	TeacherID        uint   `gorm:"not null" json:"teacher"`
	Rating           int    `gorm:"not null" json:"rating"`
	Comment          string `gorm:"type:text" json:"comment"`

	ContactRequest ContactRequest `gorm:"foreignKey:ContactRequestID" json:"-"`
	Student        User           `gorm:"foreignKey:StudentID" json:"-"`
	Teacher        TeacherProfile `gorm:"foreignKey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
