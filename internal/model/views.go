package model

// UserDetail is a user together with the lists they own.
type UserDetail struct {
	User
	Lists []List `json:"lists"`
}

// ListDetail is a list together with its items.
type ListDetail struct {
	List
	Items []ListItem `json:"list_items"`
}
