package model

// User represents a registered traveller. The username is the primary key.
type User struct {
	Username     string `json:"username" gorm:"primaryKey;size:25"`
	PasswordHash string `json:"-" gorm:"column:password_hash;size:255;not null"` // Never expose in JSON
	FirstName    string `json:"first_name" gorm:"size:255;not null"`
	LastName     string `json:"last_name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"size:255;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"not null;default:false"`

	// Relations
	Lists []List `json:"-" gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
