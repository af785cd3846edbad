package models

import (
	"strings"
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;not null;unique" json:"username"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Email     string `gorm:"size:255;not null;unique" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	IsTeacher bool   `gorm:"default:false" json:"is_teacher"`
	IsAdmin   bool   `gorm:"default:false" json:"-"`
	Banned    bool   `gorm:"default:false" json:"banned"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
