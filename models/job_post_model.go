package models

import (
	"time"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobPost struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PostedByID uint   `gorm:"not null" json:"posted_by"`
	Title      string `gorm:"size:255;not null" json:"title"`
	Details    string `gorm:"type:text" json:"details"`
	Salary     uint   `gorm:"default:0" json:"salary"`
	GradeID    uint   `gorm:"not null" json:"grade"`
	MediumID   uint   `gorm:"not null" json:"medium"`
	Status     string `gorm:"size:20;not null;default:'open'" json:"status"`

	Subjects       []*Subject            `gorm:"many2many:job_post_subjects" json:"subject_list,omitempty"`
	Availabilities []JobPostAvailability `gorm:"foreignKey:JobPostID" json:"availability,omitempty"`

	PostedBy User   `gorm:"foreignKey:PostedByID" json:"-"`
	Grade    Grade  `gorm:"foreignKey:GradeID" json:"-"`
	Medium   Medium `gorm:"foreignKey:MediumID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobPostAvailability is the time window a poster wants tuition in,
// mirroring the tutor-side slot shape.
type JobPostAvailability struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	JobPostID  uint   `gorm:"not null" json:"job_post"`
	DaysOfWeek string `gorm:"size:3;not null" json:"days_of_week"`
	StartTime  string `gorm:"size:5;not null" json:"start_time"`
	EndTime    string `gorm:"size:5;not null" json:"end_time"`

	JobPost JobPost `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE" json:"-"`
}
