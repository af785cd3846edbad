package services

import (
	"github.com/etuition/tutoria/models"
	"gorm.io/gorm"
)

// findAvailableTutors returns the distinct tutors having at least one slot
// on the given day that fully contains the desired [start, end) window.
// Times are "HH:MM" strings. An empty or inverted window yields no tutors.
func findAvailableTutors(db *gorm.DB, dayOfWeek, desiredStart, desiredEnd string) ([]models.TeacherProfile, error) {
	if desiredStart >= desiredEnd {
		return nil, nil
	}

	var slots []models.Availability
	err := db.Preload("Tutor").
		Where("days_of_week = ? AND start_time <= ? AND end_time >= ?", dayOfWeek, desiredStart, desiredEnd).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var tutors []models.TeacherProfile
	for _, slot := range slots {
		if seen[slot.TutorID] {
			continue
		}
		seen[slot.TutorID] = true
		tutors = append(tutors, slot.Tutor)
	}
	return tutors, nil
}

// AvailableTutorIDs is the subquery form of findAvailableTutors, for
// composing with further teacher filters. Callers validate the window
// first; an inverted range here would still match containing slots.
func AvailableTutorIDs(db *gorm.DB, dayOfWeek, desiredStart, desiredEnd string) *gorm.DB {
	return db.Model(&models.Availability{}).
		Distinct("tutor_id").
		Where("days_of_week = ? AND start_time <= ? AND end_time >= ?", dayOfWeek, desiredStart, desiredEnd)
}

type AvailabilityGroup struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Days      []string `json:"days"`
}

// GroupAvailability collapses a tutor's slots into one entry per shared
// time frame, listing the days that frame repeats on. Input order is kept.
func GroupAvailability(slots []models.Availability) []AvailabilityGroup {
	groups := make([]AvailabilityGroup, 0)
	index := make(map[string]int)
	for _, slot := range slots {
		key := slot.StartTime + "-" + slot.EndTime
		if i, ok := index[key]; ok {
			groups[i].Days = append(groups[i].Days, slot.DaysOfWeek)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, AvailabilityGroup{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Days:      []string{slot.DaysOfWeek},
		})
	}
	return groups
}
