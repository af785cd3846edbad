package models

// Reference/lookup entities: Medium is the language of instruction, Grade
// the academic level, Subject a taught topic scoped to a grade.

type Medium struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;unique" json:"name"`
}

type Grade struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:50;not null;unique" json:"name"`
	Sequence uint      `gorm:"not null;unique" json:"sequence"`
	Mediums  []*Medium `gorm:"many2many:grade_mediums" json:"mediums,omitempty"`
}

type Subject struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null;unique" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	SubjectCode *string `gorm:"size:20;unique" json:"subject_code"`
	GradeID     *uint   `json:"grade"`

	Grade *Grade `gorm:"foreignKey:GradeID" json:"-"`
}
