package models

import (
	"time"
)

var DayChoices = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Availability is one weekly slot a tutor advertises. Times are stored as
// zero-padded "HH:MM" strings, so lexicographic order equals temporal order.
type Availability struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TutorID    uint   `gorm:"not null;uniqueIndex:idx_tutor_day_slot" json:"tutor"`
	DaysOfWeek string `gorm:"size:3;not null;uniqueIndex:idx_tutor_day_slot" json:"days_of_week"`
	StartTime  string `gorm:"size:5;not null;uniqueIndex:idx_tutor_day_slot" json:"start_time"`
	EndTime    string `gorm:"size:5;not null;uniqueIndex:idx_tutor_day_slot" json:"end_time"`

	Tutor TeacherProfile `gorm:"foreignKey:TutorID;constraint:OnDelete:CASCADE" json:"-"`
}

func ValidDay(day string) bool {
	for _, d := range DayChoices {
		if d == day {
			return true
		}
	}
	return false
}

func ValidClock(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}
