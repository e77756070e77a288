package model

// List is a destination packing list owned by a user.
type List struct {
	ID              int    `json:"id" gorm:"primaryKey"`
	Username        string `json:"username" gorm:"size:25;not null;index"`
	SearchedAddress string `json:"searched_address" gorm:"not null"`
	ArrivalDate     Date   `json:"arrival_date" gorm:"type:date;not null"`
	DepartureDate   Date   `json:"departure_date" gorm:"type:date;not null"`

	// Relations
	Items []ListItem `json:"-" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
