package models

type Gender struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	Activatable
}

// DefaultGenderNames lists the genders seeded at startup.
var DefaultGenderNames = []string{"Masculino", "Femenino", "Otro"}
