package models

import (
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderAny    = "any"
)

const (
	TeachingOnline        = "online"
	TeachingInPerson      = "in_person"
	TeachingBatchOnline   = "batch_online"
	TeachingBatchInPerson = "batch_in_person"
	TeachingBoth          = "both"
)

type TeacherProfile struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"not null;unique" json:"user_id"`
	Verified bool    `gorm:"default:false" json:"verified"`
	Bio      *string `gorm:"type:text" json:"bio"`
	Phone    *string `gorm:"size:20" json:"-"`

	MinSalary         uint    `gorm:"default:0" json:"min_salary"`
	ExperienceYears   uint    `gorm:"default:0" json:"experience_years"`
	Gender            string  `gorm:"size:20" json:"gender"`
	TeachingMode      string  `gorm:"size:20" json:"teaching_mode"`
	PreferredDistance uint    `gorm:"default:0" json:"preferred_distance"`
	AvgRating         float32 `gorm:"default:0" json:"avg_rating"`

	Subjects []*Subject `gorm:"many2many:teacher_subjects" json:"subject_list,omitempty"`
	Grades   []*Grade   `gorm:"many2many:teacher_grades" json:"grade_list,omitempty"`
	Mediums  []*Medium  `gorm:"many2many:teacher_mediums" json:"medium_list,omitempty"`

	Availabilities []Availability `gorm:"foreignKey:TutorID" json:"availability,omitempty"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderAny:
		return true
	}
	return false
}

func ValidTeachingMode(m string) bool {
	switch m {
	case TeachingOnline, TeachingInPerson, TeachingBatchOnline, TeachingBatchInPerson, TeachingBoth:
		return true
	}
	return false
}
