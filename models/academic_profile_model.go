package models

type AcademicProfile struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TeacherID      uint   `gorm:"not null" json:"teacher"`
	Institution    string `gorm:"size:255;not null" json:"institution"`
	Degree         string `gorm:"size:100;not null" json:"degree"`
	GraduationYear uint   `gorm:"not null" json:"graduation_year"`
	Results        string `gorm:"type:text" json:"results"`

	CertificateURL      *string `gorm:"size:512" json:"certificates"`
	CertificatePublicID *string `gorm:"size:255" json:"-"`

	Validated bool `gorm:"default:false" json:"validated"`

	Teacher TeacherProfile `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
}
