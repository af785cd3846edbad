package models

type Qualification struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	TeacherID    uint    `gorm:"not null" json:"teacher"`
	Organization string  `gorm:"size:255" json:"organization"`
	Skill        string  `gorm:"size:100;not null" json:"skill"`
	Year         *uint   `json:"year"`
	Results      *string `gorm:"type:text" json:"results"`

	CertificateURL      *string `gorm:"size:512" json:"certificates"`
	CertificatePublicID *string `gorm:"size:255" json:"-"`

	Validated bool `gorm:"default:false" json:"validated"`

	Teacher TeacherProfile `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
}
