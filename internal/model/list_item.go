package model

// ListItem is one entry on a packing list.
type ListItem struct {
	ID       int    `json:"id" gorm:"primaryKey"`
	ListID   int    `json:"list_id" gorm:"not null;index"`
	Category string `json:"category" gorm:"size:100;not null"`
	Item     string `json:"item" gorm:"size:255;not null"`
	Qty      int    `json:"qty" gorm:"not null;check:qty > 0"`
}
